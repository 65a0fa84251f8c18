// Package lexicon scores free-form text against fixed weighted word lists.
//
// The tables in this file are read-only after package initialization and are
// shared by every call; Score allocates its own working state, so it is safe
// for concurrent use.
package lexicon

// Category identifies one of the scored word lists.
type Category int

const (
	Motivated Category = iota
	Stressed
	Curious
	Achievement
	Strategic
	Uncertainty
	Technical

	categoryCount
)

var categoryNames = [categoryCount]string{
	Motivated:   "motivated",
	Stressed:    "stressed",
	Curious:     "curious",
	Achievement: "achievement",
	Strategic:   "strategic",
	Uncertainty: "uncertainty",
	Technical:   "technical",
}

// String returns the lower-case category name.
func (c Category) String() string {
	if c < 0 || c >= categoryCount {
		return "unknown"
	}
	return categoryNames[c]
}

// Lexicon maps a normalized term to its positive weight.
type Lexicon map[string]float64

// lookup matches the token exactly, then by its crude stem.
func (l Lexicon) lookup(token string) (string, float64, bool) {
	if w, ok := l[token]; ok {
		return token, w, true
	}
	if s := stem(token); s != token {
		if w, ok := l[s]; ok {
			return s, w, true
		}
	}
	return "", 0, false
}

type lexiconEntry struct {
	category Category
	prefix   string
	terms    Lexicon
}

// lexiconTable fixes the scan order, which in turn fixes signal order.
var lexiconTable = []lexiconEntry{
	{category: Motivated, prefix: "+", terms: motivatedTerms},
	{category: Stressed, prefix: "-", terms: stressedTerms},
	{category: Curious, prefix: "?", terms: curiousTerms},
	{category: Achievement, prefix: "achv:", terms: achievementTerms},
	{category: Strategic, prefix: "plan:", terms: strategicTerms},
	{category: Uncertainty, prefix: "unsure:", terms: uncertaintyTerms},
	{category: Technical, prefix: "tech:", terms: technicalTerms},
}

var motivatedTerms = Lexicon{
	"build":      1.0,
	"win":        1.1,
	"excited":    1.4,
	"love":       1.2,
	"ship":       1.0,
	"ready":      0.9,
	"great":      1.0,
	"awesome":    1.2,
	"confident":  1.3,
	"progress":   1.0,
	"improve":    0.9,
	"success":    1.2,
	"successful": 1.2,
	"motivated":  1.5,
	"happy":      1.1,
	"proud":      1.3,
	"thrilled":   1.5,
	"eager":      1.2,
	"determined": 1.3,
	"passionate": 1.3,
	"energized":  1.3,
	"inspired":   1.2,
	"achieve":    1.0,
	"grow":       0.8,
	"enjoy":      1.0,
}

var stressedTerms = Lexicon{
	"stuck":       1.3,
	"tired":       1.1,
	"overwhelmed": 1.6,
	"anxious":     1.5,
	"frustrated":  1.5,
	"worried":     1.3,
	"stress":      1.4,
	"stressed":    1.5,
	"bad":         0.9,
	"worst":       1.6,
	"terrible":    1.5,
	"awful":       1.5,
	"hate":        1.4,
	"fail":        1.2,
	"failing":     1.4,
	"failure":     1.4,
	"hopeless":    1.7,
	"angry":       1.3,
	"upset":       1.3,
	"exhausted":   1.4,
	"burnout":     1.6,
	"confused":    1.0,
	"sad":         1.2,
	"lost":        1.0,
	"panic":       1.6,
	"pressure":    1.1,
	"deadline":    0.8,
}

var curiousTerms = Lexicon{
	"how":         0.8,
	"why":         0.9,
	"what":        0.6,
	"learn":       1.1,
	"explore":     1.2,
	"exploring":   1.2,
	"wonder":      1.2,
	"curious":     1.5,
	"discover":    1.2,
	"understand":  0.9,
	"research":    1.0,
	"question":    0.8,
	"investigate": 1.1,
	"experiment":  1.0,
	"interested":  1.1,
	"intrigued":   1.3,
}

var achievementTerms = Lexicon{
	"built":       1.2,
	"developed":   1.1,
	"implemented": 1.1,
	"designed":    1.0,
	"created":     1.0,
	"deployed":    1.3,
	"engineered":  1.2,
	"optimized":   1.2,
	"trained":     1.0,
	"launched":    1.3,
	"shipped":     1.3,
	"led":         1.1,
	"delivered":   1.2,
	"won":         1.4,
	"completed":   1.0,
	"achieved":    1.2,
	"published":   1.2,
	"cracked":     1.3,
	"solved":      1.0,
}

var strategicTerms = Lexicon{
	"plan":         0.9,
	"strategy":     1.2,
	"roadmap":      1.2,
	"goal":         0.9,
	"scale":        1.0,
	"architecture": 1.1,
	"prioritize":   1.1,
	"milestone":    1.0,
	"vision":       1.0,
	"optimize":     0.9,
	"framework":    0.8,
	"pipeline":     0.8,
	"system":       0.7,
	"iterate":      0.8,
}

var uncertaintyTerms = Lexicon{
	"maybe":     1.0,
	"might":     0.8,
	"perhaps":   1.0,
	"unsure":    1.3,
	"guess":     1.0,
	"probably":  0.7,
	"possibly":  0.8,
	"think":     0.5,
	"hopefully": 0.9,
	"doubt":     1.2,
	"unclear":   1.1,
	"somehow":   0.8,
}

var technicalTerms = Lexicon{
	"ai":         1.0,
	"ml":         1.0,
	"llm":        1.0,
	"nlp":        1.0,
	"engineer":   1.0,
	"developer":  0.9,
	"backend":    0.8,
	"frontend":   0.8,
	"fullstack":  0.9,
	"python":     0.8,
	"golang":     0.8,
	"model":      0.7,
	"data":       0.6,
	"algorithm":  0.9,
	"api":        0.7,
	"cloud":      0.7,
	"docker":     0.8,
	"kubernetes": 0.9,
	"pytorch":    0.9,
	"tensorflow": 0.9,
	"database":   0.7,
	"blockchain": 0.8,
}

var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "dont": {}, "didnt": {}, "doesnt": {},
	"isnt": {}, "wasnt": {}, "arent": {}, "cant": {}, "cannot": {}, "wont": {},
	"nothing": {}, "without": {}, "hardly": {}, "nor": {}, "aint": {},
}

var intensifiers = map[string]struct{}{
	"very": {}, "really": {}, "so": {}, "extremely": {}, "super": {},
	"incredibly": {}, "totally": {}, "absolutely": {}, "truly": {},
	"highly": {}, "deeply": {}, "completely": {},
}

var softeners = map[string]struct{}{
	"slightly": {}, "somewhat": {}, "little": {}, "bit": {}, "kinda": {},
	"barely": {}, "mildly": {}, "fairly": {},
}

const (
	intensifierFactor = 1.35
	softenerFactor    = 0.75

	negatedMotivatedToStressed = 0.7
	negatedStressedToMotivated = 0.5
)
