package util

import (
	"errors"
	"strings"
	"unicode"
)

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// Preview returns the first max runes of s with whitespace runs collapsed
// and control characters dropped, followed by "…" when truncated.
func Preview(s string, max int) string {
	if max <= 0 {
		return ""
	}
	var b strings.Builder
	count := 0
	space := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		if space && count > 0 {
			if count == max {
				return b.String() + "…"
			}
			b.WriteRune(' ')
			count++
		}
		space = false
		if count == max {
			return b.String() + "…"
		}
		b.WriteRune(r)
		count++
	}
	return b.String()
}
