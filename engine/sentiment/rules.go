package sentiment

// features is the flattened view of a lexicon tally the rule tables read.
type features struct {
	motivated   float64
	stressed    float64
	curious     float64
	achievement float64
	strategic   float64
	uncertainty float64
	technical   float64

	questions    int
	exclamations int
	tokens       int
	hits         int

	quantified      bool
	accolade        bool
	selfDiminishing bool
	endsWithPeriod  bool
}

func (f features) emotional() float64 {
	return f.motivated + f.stressed + f.curious
}

// topTwo returns the largest and second largest of the three emotional totals.
func (f features) topTwo() (float64, float64) {
	a, b, c := f.motivated, f.stressed, f.curious
	if a < b {
		a, b = b, a
	}
	if b < c {
		b, c = c, b
	}
	if a < b {
		a, b = b, a
	}
	return a, b
}

// accomplished reports clear evidence of delivered work.
func (f features) accomplished() bool {
	return f.achievement >= 1.5 || f.quantified || f.accolade
}

type labelRule struct {
	name  string
	match func(f features) bool
	label func(f features) Label
}

func fixedLabel(l Label) func(features) Label {
	return func(features) Label { return l }
}

// labelRules is evaluated top to bottom; the first match wins.
var labelRules = []labelRule{
	{
		name:  "low-signal",
		match: func(f features) bool { return f.emotional() < 1.6 },
		label: fixedLabel(Neutral),
	},
	{
		name: "stressed-dominant",
		match: func(f features) bool {
			return f.stressed >= f.motivated*1.15 && f.stressed >= f.curious*1.1 && f.stressed >= 1.8
		},
		label: fixedLabel(Stressed),
	},
	{
		name: "motivated-dominant",
		match: func(f features) bool {
			return f.motivated >= f.stressed*1.05 && f.motivated >= f.curious && f.motivated >= 1.7
		},
		label: fixedLabel(Motivated),
	},
	{
		name: "curious-dominant",
		match: func(f features) bool {
			return f.curious >= max(f.motivated, f.stressed) && f.curious >= 1.5
		},
		label: fixedLabel(Curious),
	},
	{
		name: "too-close",
		match: func(f features) bool {
			top, second := f.topTwo()
			return top-second < 0.7
		},
		label: fixedLabel(Neutral),
	},
	{
		name:  "largest",
		match: func(features) bool { return true },
		label: largestLabel,
	},
}

func largestLabel(f features) Label {
	switch {
	case f.motivated >= f.stressed && f.motivated >= f.curious:
		return Motivated
	case f.stressed >= f.curious:
		return Stressed
	default:
		return Curious
	}
}

func decideLabel(f features) Label {
	for _, rule := range labelRules {
		if rule.match(f) {
			return rule.label(f)
		}
	}
	return Neutral
}

type toneRule struct {
	match func(f features, label Label) bool
	tone  Tone
}

var toneRules = []toneRule{
	{match: func(_ features, l Label) bool { return l == Stressed }, tone: TonePressure},
	{match: func(f features, l Label) bool { return f.questions > 0 || l == Curious }, tone: ToneExploratory},
	{match: func(f features, _ Label) bool { return f.achievement > 0 }, tone: ToneAchievement},
	{match: func(f features, _ Label) bool { return f.strategic > 0 }, tone: ToneStrategic},
}

func decideTone(f features, label Label) Tone {
	for _, rule := range toneRules {
		if rule.match(f, label) {
			return rule.tone
		}
	}
	return ToneInformational
}

func decideIntensity(f features) Intensity {
	total := f.emotional()
	switch {
	case total >= 5.4:
		return IntensityHigh
	case total >= 2.2:
		return IntensityModerate
	default:
		return IntensityLow
	}
}

type reviewContext struct {
	features
	label Label
	tone  Tone
}

type reviewRule struct {
	match  func(c reviewContext) bool
	review string
}

// reviewRules is evaluated top to bottom; the first match wins.
var reviewRules = []reviewRule{
	{
		match: func(c reviewContext) bool {
			return c.selfDiminishing && c.accomplished() && c.quantified
		},
		review: `Modest framing, strong evidence: the numbers you cite are not "nothing special". Lead with them.`,
	},
	{
		match: func(c reviewContext) bool {
			return c.selfDiminishing && c.accomplished() && c.accolade
		},
		review: `Modest framing, strong evidence: a recognized win deserves better than "nothing special". Name it first.`,
	},
	{
		match: func(c reviewContext) bool {
			return c.selfDiminishing && c.accomplished()
		},
		review: "Modest framing, strong evidence: the work you describe is real. Drop the self-minimizing phrase and state the result plainly.",
	},
	{
		match:  func(c reviewContext) bool { return c.selfDiminishing },
		review: "The wording downplays your effort. Swap the self-minimizing phrase for one concrete result.",
	},
	{
		match:  func(c reviewContext) bool { return c.label == Stressed },
		review: "Pressure signals dominate. Naming the specific blocker usually makes the next step clearer.",
	},
	{
		match:  func(c reviewContext) bool { return c.label == Curious },
		review: "Exploratory and inquisitive. This reads as someone actively learning and asking the right questions.",
	},
	{
		match:  func(c reviewContext) bool { return c.label == Motivated && c.tone == ToneAchievement },
		review: "Confident and outcome-focused. The achievements are stated directly and read as credible.",
	},
	{
		match:  func(c reviewContext) bool { return c.label == Motivated },
		review: "Positive, forward-looking energy with clear motivation.",
	},
	{
		match:  func(c reviewContext) bool { return c.label == Neutral && c.tone == ToneAchievement },
		review: "Calm, factual account of accomplishments. One line on why it mattered would add warmth.",
	},
	{
		match:  func(c reviewContext) bool { return c.label == Neutral && c.tone == ToneStrategic },
		review: "Measured and plan-oriented. The intent is clear even without strong emotional cues.",
	},
	{
		match:  func(c reviewContext) bool { return c.label == Neutral && c.tone == ToneExploratory },
		review: "Neutral phrasing around an open question. Adding context would sharpen the intent.",
	},
}

const defaultReview = "Mostly informational with few emotional signals."

func decideReview(c reviewContext) string {
	for _, rule := range reviewRules {
		if rule.match(c) {
			return rule.review
		}
	}
	return defaultReview
}
