// Package resumescore grades resume text on structure, evidence and focus.
package resumescore

import (
	"regexp"
	"strings"

	"portfolio-backend/engine/lexicon"
)

const (
	minScore = 24
	maxScore = 96
)

// Signals are the raw counts the score is computed from.
type Signals struct {
	Bullets     int `json:"bullets"`
	ActionLines int `json:"actionLines"`
	MetricLines int `json:"metricLines"`
	Sections    int `json:"sections"`
	AIKeywords  int `json:"aiKeywords"`
	Words       int `json:"words"`
}

// Result is the graded resume. Feedback lists strengths first.
type Result struct {
	Score    int      `json:"score"`
	Feedback []string `json:"feedback"`
	Signals  Signals  `json:"signals"`
}

var (
	bulletPattern    = regexp.MustCompile(`^(?:[-*•–·]|\d+[.)])`)
	actionPattern    = regexp.MustCompile(`\b(built|developed|implemented|designed|created|deployed|engineered|optimized|trained|led|launched|improved|reduced|increased|automated|architected|delivered|managed|migrated|scaled|shipped|analyzed|integrated|mentored|published)\b`)
	metricPattern    = regexp.MustCompile(`\d+(?:\.\d+)?\s*%|\b\d+(?:\.\d+)?x\b|[$€£]\s?\d|\b\d+(?:\.\d+)?\s*(?:k|m|ms|users|customers|requests|qps|rps)\b|\b(?:accuracy|latency|throughput|f1|precision|recall|revenue|uptime|roi)\b`)
	aiKeywordPattern = regexp.MustCompile(`machine learning|artificial intelligence|deep learning|\bai\b|\bml\b|tensorflow|pytorch|\bnlp\b|\bllms?\b|scikit-learn|computer vision|\btransformers?\b|neural networks?`)
)

type section struct {
	name string
	re   *regexp.Regexp
}

var sections = []section{
	{name: "summary", re: regexp.MustCompile(`\b(summary|profile|objective)\b`)},
	{name: "experience", re: regexp.MustCompile(`\bexperience\b`)},
	{name: "projects", re: regexp.MustCompile(`\bprojects?\b`)},
	{name: "education", re: regexp.MustCompile(`\beducation\b`)},
	{name: "skills", re: regexp.MustCompile(`\bskills?\b`)},
	{name: "certifications", re: regexp.MustCompile(`\bcertifications?\b`)},
}

// maxHeaderWords bounds how long a line may be and still count as a header.
const maxHeaderWords = 4

// Score grades text. It never fails; empty text gets the floor score.
func Score(text string) Result {
	s := collectSignals(text)
	return Result{
		Score:    score(s),
		Feedback: feedback(s),
		Signals:  s,
	}
}

func collectSignals(text string) Signals {
	normalized := lexicon.Normalize(text)
	var s Signals
	seen := map[string]bool{}

	for _, raw := range strings.Split(normalized, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if bulletPattern.MatchString(line) {
			s.Bullets++
		}
		if actionPattern.MatchString(line) {
			s.ActionLines++
		}
		if metricPattern.MatchString(line) {
			s.MetricLines++
		}
		if len(strings.Fields(line)) <= maxHeaderWords {
			for _, sec := range sections {
				if !seen[sec.name] && sec.re.MatchString(line) {
					seen[sec.name] = true
					s.Sections++
				}
			}
		}
	}

	s.AIKeywords = len(aiKeywordPattern.FindAllStringIndex(normalized, -1))
	s.Words = len(strings.Fields(normalized))
	return s
}

func score(s Signals) int {
	v := 20 +
		min(24, 4*s.ActionLines+3*s.MetricLines) +
		min(18, 3*s.Sections+min(6, s.Bullets)) +
		min(18, 4*s.AIKeywords) +
		depthBonus(s.Words) -
		penalties(s)
	return min(maxScore, max(minScore, v))
}

func depthBonus(words int) int {
	switch {
	case words < 80:
		return 4
	case words < 160:
		return 10
	case words < 420:
		return 16
	default:
		return 12
	}
}

func penalties(s Signals) int {
	p := 0
	if s.Words < 70 {
		p += 10
	}
	if s.ActionLines < 2 {
		p += 8
	}
	if s.MetricLines == 0 {
		p += 10
	}
	if s.Sections < 3 {
		p += 7
	}
	if s.AIKeywords > 12 && s.MetricLines < 2 {
		p += 6
	}
	return p
}
