package lexicon

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var quoteReplacer = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// Normalize folds diacritics, unifies apostrophes and lower-cases text.
// Punctuation is kept so phrase patterns can still see it.
func Normalize(text string) string {
	// Transformers and casers carry state; build them per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, text)
	if err != nil {
		folded = text
	}
	folded = quoteReplacer.Replace(folded)
	return cases.Lower(language.Und).String(folded)
}

// Tokenize splits normalized text into [a-z0-9] tokens. Apostrophes are
// dropped so contractions stay whole ("don't" -> "dont").
func Tokenize(normalized string) []string {
	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		switch {
		case r == '\'':
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

func stem(token string) string {
	n := len(token)
	switch {
	case n > 5 && strings.HasSuffix(token, "ing"):
		return token[:n-3]
	case n > 4 && strings.HasSuffix(token, "ed"):
		return token[:n-2]
	case n > 3 && strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss"):
		return token[:n-1]
	}
	return token
}
