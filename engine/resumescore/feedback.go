package resumescore

const (
	maxStrengths    = 2
	maxImprovements = 3
)

type feedbackRule struct {
	when    func(s Signals) bool
	message string
}

var strengthRules = []feedbackRule{
	{
		when:    func(s Signals) bool { return s.ActionLines >= 3 },
		message: "Strong action-oriented bullets: most lines lead with what you built or shipped.",
	},
	{
		when:    func(s Signals) bool { return s.MetricLines >= 2 },
		message: "Good use of measurable outcomes; the numbers make the impact concrete.",
	},
	{
		when:    func(s Signals) bool { return s.Sections >= 4 },
		message: "Clear section structure that recruiters and ATS parsers can scan quickly.",
	},
	{
		when:    func(s Signals) bool { return s.AIKeywords >= 3 },
		message: "AI/ML identity is clearly visible across the resume.",
	},
}

var improvementRules = []feedbackRule{
	{
		when:    func(s Signals) bool { return s.MetricLines < 2 },
		message: "Add measurable metrics (latency, accuracy, % growth) to at least three bullets.",
	},
	{
		when:    func(s Signals) bool { return s.ActionLines < 3 },
		message: "Start more bullets with strong action verbs (built, deployed, optimized) followed by the outcome.",
	},
	{
		when:    func(s Signals) bool { return s.Sections < 4 },
		message: "Add clear section headers such as Summary, Experience, Projects, Education and Skills.",
	},
	{
		when:    func(s Signals) bool { return s.AIKeywords < 3 },
		message: "Name the AI/ML tools and techniques you used (PyTorch, LLMs, NLP) so your focus is obvious.",
	},
	{
		when:    func(s Signals) bool { return s.Words < 160 },
		message: "Expand on scope, stack and results; the resume currently reads thin.",
	},
}

const fallbackFeedback = "Solid baseline. Tailor the summary and top bullets to each target role."

func feedback(s Signals) []string {
	out := pick(strengthRules, s, maxStrengths)
	out = append(out, pick(improvementRules, s, maxImprovements)...)
	if len(out) == 0 {
		return []string{fallbackFeedback}
	}
	return out
}

func pick(rules []feedbackRule, s Signals, limit int) []string {
	var out []string
	for _, r := range rules {
		if len(out) == limit {
			break
		}
		if r.when(s) {
			out = append(out, r.message)
		}
	}
	return out
}
