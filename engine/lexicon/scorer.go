package lexicon

import (
	"math"
	"regexp"
	"strings"
)

// Tally is the outcome of one lexicon pass over a text.
type Tally struct {
	// Empty is set when the input was blank; nothing else is populated.
	Empty bool

	totals [categoryCount]float64

	Questions    int
	Exclamations int
	Tokens       int
	// Hits counts every lexicon match, negated ones included.
	Hits int

	Quantified      bool
	Accolade        bool
	SelfDiminishing bool
	StrongNegative  bool
	EndsWithPeriod  bool

	// Signals holds match tags in first-seen order, without duplicates.
	Signals []string
	seen    map[string]struct{}
}

// Total returns the accumulated score for a category.
func (t Tally) Total(c Category) float64 {
	if c < 0 || c >= categoryCount {
		return 0
	}
	return t.totals[c]
}

// Emotional returns motivated + stressed + curious.
func (t Tally) Emotional() float64 {
	return t.totals[Motivated] + t.totals[Stressed] + t.totals[Curious]
}

// TopSignals returns at most n signals, earliest first.
func (t Tally) TopSignals(n int) []string {
	if n <= 0 || len(t.Signals) == 0 {
		return []string{}
	}
	if len(t.Signals) < n {
		n = len(t.Signals)
	}
	out := make([]string, n)
	copy(out, t.Signals[:n])
	return out
}

func (t *Tally) add(c Category, v float64) {
	t.totals[c] += v
}

func (t *Tally) signal(tag string) {
	if t.seen == nil {
		t.seen = make(map[string]struct{})
	}
	if _, ok := t.seen[tag]; ok {
		return
	}
	t.seen[tag] = struct{}{}
	t.Signals = append(t.Signals, tag)
}

var (
	quantifiedCountPattern = regexp.MustCompile(`\b\d+\+?\s*(projects?|models?|apps?|applications?|systems?|products?|hackathons?|users|clients|deployments?|repos?|repositories|features)\b`)
	quantifiedVerbPattern  = regexp.MustCompile(`\b(completed|built|shipped|deployed|launched|delivered|trained)\s+\d+\b`)
	accoladePattern        = regexp.MustCompile(`\b(hackathons?|winner|won|awards?|awarded|finalist|champion|cracked|got\s+(an?\s+)?(offer|job|internship)|selected\s+for)\b`)
	selfDiminishingPattern = regexp.MustCompile(`\b(nothing special|just only|only just|no big deal|not a big deal|nothing much)\b`)
	strongNegativePattern  = regexp.MustCompile(`\b(i am|i'?m|it is|it'?s|this is)\s+(the\s+)?(worst|terrible|awful|hopeless)\b`)
)

const (
	quantifiedBonus      = 1.2
	accoladeAchievement  = 1.0
	accoladeMotivation   = 0.6
	questionWeight       = 0.6
	exclamationWeight    = 0.35
	punctuationCap       = 3
	strongNegativeBump   = 2.5
	strongNegativeMargin = 1.2
)

// Score runs the token scan and the phrase heuristics over text.
func Score(text string) Tally {
	if strings.TrimSpace(text) == "" {
		return Tally{Empty: true, Signals: []string{}}
	}

	lowered := Normalize(text)
	tokens := Tokenize(lowered)
	t := Tally{
		Tokens:         len(tokens),
		Questions:      strings.Count(text, "?"),
		Exclamations:   strings.Count(text, "!"),
		EndsWithPeriod: strings.HasSuffix(strings.TrimSpace(text), "."),
	}

	for i, token := range tokens {
		negated, factor := precedingContext(tokens, i)
		for _, entry := range lexiconTable {
			term, weight, ok := entry.terms.lookup(token)
			if !ok {
				continue
			}
			t.Hits++
			weight *= factor
			if negated {
				switch entry.category {
				case Motivated:
					t.add(Stressed, negatedMotivatedToStressed*weight)
				case Stressed:
					t.add(Motivated, negatedStressedToMotivated*weight)
				}
				t.signal("negated-" + term)
				continue
			}
			t.add(entry.category, weight)
			t.signal(entry.prefix + term)
		}
	}

	applyPhraseHeuristics(&t, lowered)
	if t.Signals == nil {
		t.Signals = []string{}
	}
	return t
}

// precedingContext inspects the two tokens before position i.
func precedingContext(tokens []string, i int) (negated bool, factor float64) {
	factor = 1
	for back := 1; back <= 2 && i-back >= 0; back++ {
		prev := tokens[i-back]
		if _, ok := negations[prev]; ok {
			negated = true
		}
		if _, ok := intensifiers[prev]; ok {
			factor *= intensifierFactor
		}
		if _, ok := softeners[prev]; ok {
			factor *= softenerFactor
		}
	}
	return negated, factor
}

func applyPhraseHeuristics(t *Tally, lowered string) {
	if quantifiedCountPattern.MatchString(lowered) || quantifiedVerbPattern.MatchString(lowered) {
		t.Quantified = true
		t.add(Achievement, quantifiedBonus)
		t.signal("quantified")
	}
	if accoladePattern.MatchString(lowered) {
		t.Accolade = true
		t.add(Achievement, accoladeAchievement)
		t.add(Motivated, accoladeMotivation)
		t.signal("accolade")
	}
	if selfDiminishingPattern.MatchString(lowered) {
		t.SelfDiminishing = true
	}

	if t.Questions > 0 {
		t.add(Curious, questionWeight*float64(min(punctuationCap, t.Questions)))
	}
	if t.Exclamations > 0 {
		boost := exclamationWeight * float64(min(punctuationCap, t.Exclamations))
		if t.totals[Motivated] > 0 {
			t.add(Motivated, boost)
		}
		if t.totals[Stressed] > 0 {
			t.add(Stressed, boost)
		}
	}

	if strongNegativePattern.MatchString(lowered) {
		t.StrongNegative = true
		t.totals[Stressed] = math.Max(t.totals[Stressed]+strongNegativeBump,
			math.Max(strongNegativeMargin*t.totals[Motivated], strongNegativeMargin*t.totals[Curious]))
		t.signal("strong-negative")
	}
}
