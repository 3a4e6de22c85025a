package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// normalize brings text to NFC so decomposed diacritics coming out of PDF
// extraction compare equal to the precomposed ones in the tables.
func normalize(s string) string {
	return norm.NFC.String(s)
}

// fold lower-cases s with Turkish rules and then merges dotless ı into i, so
// that "İLETİŞİM", "Iletisim" and "iletişim" share a key.
// A Caser keeps state and must not be shared between goroutines, hence one per call.
func fold(s string) string {
	return strings.ReplaceAll(cases.Lower(language.Turkish).String(normalize(s)), "ı", "i")
}

// compactKey folds s and drops all whitespace.
func compactKey(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, fold(s))
}

// splitLines returns the trimmed, non-blank lines of s.
func splitLines(s string) []string {
	raw := strings.Split(s, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// firstRunes returns at most n leading runes of s.
func firstRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
