package sentiment

import (
	"math"

	"portfolio-backend/engine/lexicon"
)

const emptyReview = "No text to analyze yet."

// Analyze scores text with the lexicon and classifies the tally.
func Analyze(text string) Result {
	return Classify(lexicon.Score(text))
}

// Classify turns a lexicon tally into a Result. An empty tally yields the
// zero-valued Neutral result.
func Classify(t lexicon.Tally) Result {
	if t.Empty {
		return Result{
			Label:              Neutral,
			ToneType:           ToneInformational,
			EmotionalIntensity: IntensityLow,
			Review:             emptyReview,
			Signals:            []string{},
		}
	}

	f := featuresOf(t)
	label := decideLabel(f)
	tone := decideTone(f, label)
	return Result{
		Label:                     label,
		Confidence:                confidence(f, label),
		Score:                     score(f),
		ToneType:                  tone,
		EmotionalIntensity:        decideIntensity(f),
		ProfessionalAssertiveness: assertiveness(f, label, tone),
		Review:                    decideReview(reviewContext{features: f, label: label, tone: tone}),
		Signals:                   t.TopSignals(MaxSignals),
	}
}

func featuresOf(t lexicon.Tally) features {
	return features{
		motivated:       t.Total(lexicon.Motivated),
		stressed:        t.Total(lexicon.Stressed),
		curious:         t.Total(lexicon.Curious),
		achievement:     t.Total(lexicon.Achievement),
		strategic:       t.Total(lexicon.Strategic),
		uncertainty:     t.Total(lexicon.Uncertainty),
		technical:       t.Total(lexicon.Technical),
		questions:       t.Questions,
		exclamations:    t.Exclamations,
		tokens:          t.Tokens,
		hits:            t.Hits,
		quantified:      t.Quantified,
		accolade:        t.Accolade,
		selfDiminishing: t.SelfDiminishing,
		endsWithPeriod:  t.EndsWithPeriod,
	}
}

const (
	minConfidence = 30
	maxConfidence = 94
	sparseCap     = 58
)

func confidence(f features, label Label) int {
	top, second := f.topTwo()
	emotional := math.Min(34, (top-second)*12) + math.Min(22, f.emotional()*4)
	intent := math.Min(18, f.achievement*4+f.strategic*3+f.technical*1.5) - 6*f.uncertainty

	structure := math.Min(6, 3*float64(f.questions)) + math.Min(4, 2*float64(f.exclamations))
	if f.endsWithPeriod {
		structure += 4
	}

	boost := 0.0
	if label == Neutral && f.achievement+f.strategic >= 1.5 {
		boost = 8
	}

	conf := clamp(int(math.Round(32+emotional+intent+structure+boost)), minConfidence, maxConfidence)
	if f.hits <= 1 {
		conf = min(conf, sparseCap)
	}

	density := 0.0
	if f.tokens > 0 {
		density = float64(f.hits) / float64(f.tokens)
	}
	if f.tokens >= 4 && density < 0.12 {
		conf = max(minConfidence, conf-8)
	}
	if f.hits >= 3 && density >= 0.35 {
		conf = min(maxConfidence, conf+4)
	}
	return conf
}

// score maps the weighted polarity onto (-90, 90) with a soft saturation.
func score(f features) int {
	raw := (f.motivated-f.stressed)*20 + f.achievement*1.4 + f.strategic*1.2 - f.uncertainty*5
	if f.quantified {
		raw += 4
	}
	if f.accolade {
		raw += 3
	}
	return int(math.Round(raw * 90 / (math.Abs(raw) + 90)))
}

const assertivenessFloor = 52

func assertiveness(f features, label Label, tone Tone) int {
	a := 30 + f.achievement*14 + f.strategic*9 + f.technical*2 - f.uncertainty*14
	if f.quantified {
		a += 6
	}
	a = math.Max(0, a)
	v := int(math.Round(100 * a / (a + 60)))
	if label == Neutral && tone == ToneAchievement && f.uncertainty == 0 {
		v = max(v, assertivenessFloor)
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
