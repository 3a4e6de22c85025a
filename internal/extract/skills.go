package extract

import (
	"fmt"
	"regexp"
	"strings"
)

type skillPattern struct {
	skill string
	re    *regexp.Regexp
}

// compileSkills builds one whole-word, case-insensitive pattern per vocabulary
// token. Tokens are escaped, so C++, C# or CI/CD are matched literally.
func compileSkills(vocabulary []string) ([]skillPattern, error) {
	patterns := make([]skillPattern, 0, len(vocabulary))
	seen := make(map[string]struct{}, len(vocabulary))

	for _, skill := range vocabulary {
		skill = strings.TrimSpace(normalize(skill))
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		words := strings.Fields(skill)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		expr := `(?i)(?:^|[^\p{L}\p{N}])` + strings.Join(words, `\s+`) + `(?:$|[^\p{L}\p{N}])`

		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile skill %q: %w", skill, err)
		}
		patterns = append(patterns, skillPattern{skill: skill, re: re})
	}

	return patterns, nil
}

// Skills returns the vocabulary entries present in text, in vocabulary order.
func (e *Extractor) Skills(text string) []string {
	text = normalize(text)
	found := make([]string, 0)
	for _, p := range e.skills {
		if p.re.MatchString(text) {
			found = append(found, p.skill)
		}
	}
	return found
}
