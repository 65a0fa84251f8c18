// Package sentiment classifies free-form text into an emotional label and
// tone using the weighted lexicon tallies from package lexicon.
package sentiment

// Label is the dominant emotional category of a text.
type Label string

const (
	Motivated Label = "Motivated"
	Curious   Label = "Curious"
	Neutral   Label = "Neutral"
	Stressed  Label = "Stressed"
)

// Tone describes how a text is framed rather than what it feels.
type Tone string

const (
	TonePressure      Tone = "Pressure/Strain"
	ToneExploratory   Tone = "Exploratory"
	ToneAchievement   Tone = "Declarative/Achievement-Oriented"
	ToneStrategic     Tone = "Strategic/Planning"
	ToneInformational Tone = "Declarative/Informational"
)

// Intensity buckets the total emotional weight of a text.
type Intensity string

const (
	IntensityLow      Intensity = "Low"
	IntensityModerate Intensity = "Moderate"
	IntensityHigh     Intensity = "High"
)

// Result is the classifier output. It is built fresh per call.
type Result struct {
	Label                     Label     `json:"label"`
	Confidence                int       `json:"confidence"`
	Score                     int       `json:"score"`
	ToneType                  Tone      `json:"toneType"`
	EmotionalIntensity        Intensity `json:"emotionalIntensity"`
	ProfessionalAssertiveness int       `json:"professionalAssertiveness"`
	Review                    string    `json:"review"`
	Signals                   []string  `json:"signals"`
}

// MaxSignals bounds Result.Signals.
const MaxSignals = 7
