package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// headerMatcher recognizes section header lines.
type headerMatcher struct {
	re   *regexp.Regexp
	keys map[string]Section
}

func compileHeaders(aliases map[Section][]string) (*headerMatcher, error) {
	keys := make(map[string]Section)
	var alternatives []string

	for _, section := range Sections {
		for _, alias := range aliases[section] {
			words := strings.Fields(fold(alias))
			if len(words) == 0 {
				continue
			}
			key := strings.Join(words, "")
			if other, ok := keys[key]; ok && other != section {
				return nil, fmt.Errorf("header alias %q is claimed by both %s and %s", alias, other, section)
			}
			keys[key] = section

			for i, w := range words {
				words[i] = regexp.QuoteMeta(w)
			}
			alternatives = append(alternatives, strings.Join(words, `\s*`))
		}
	}

	if len(alternatives) == 0 {
		return nil, fmt.Errorf("no section header aliases configured")
	}

	re, err := regexp.Compile(`^(?:` + strings.Join(alternatives, "|") + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compile header pattern: %w", err)
	}

	return &headerMatcher{re: re, keys: keys}, nil
}

// match reports whether line is a header and, if so, which section it opens.
// A syntactic match that cannot be resolved returns ok with an empty section.
func (h *headerMatcher) match(line string) (Section, bool) {
	folded := fold(line)
	if !h.re.MatchString(folded) {
		return "", false
	}
	return h.keys[compactKey(folded)], true
}

// segmenter accumulates section content line by line.
type segmenter struct {
	headers  *headerMatcher
	months   []string
	current  Section
	sections map[Section]*SectionContent
}

func (s *segmenter) feed(line string) {
	if section, ok := s.headers.match(line); ok {
		s.current = section
		if section != "" && s.sections[section] == nil {
			s.sections[section] = &SectionContent{}
		}
		return
	}

	if s.current == "" {
		return
	}

	content := s.sections[s.current]
	if !s.current.multiEntry() {
		content.Lines = append(content.Lines, line)
		return
	}

	if len(content.Entries) == 0 || s.startsEntry(line) {
		content.Entries = append(content.Entries, line)
		return
	}
	content.Entries[len(content.Entries)-1] += "\n" + line
}

// startsEntry decides whether an experience or education line opens a new entry:
// it begins with a month name or a four digit year, or it reads like a heading.
func (s *segmenter) startsEntry(line string) bool {
	for _, month := range s.months {
		if strings.HasPrefix(line, month) {
			return true
		}
	}
	if startsWithYear(line) {
		return true
	}
	return looksLikeHeading(line)
}

func startsWithYear(line string) bool {
	if len(line) < 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if line[i] < '0' || line[i] > '9' {
			return false
		}
	}
	return true
}

func looksLikeHeading(line string) bool {
	for i, r := range line {
		if i == 0 {
			if !unicode.IsUpper(r) {
				return false
			}
			continue
		}
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == ' ', r == '\t':
		case r == '.', r == ',', r == '&', r == '-':
		default:
			return false
		}
	}
	return true
}

// Segment classifies the lines of text into canonical sections. Lines before
// the first recognized header are not captured.
func (e *Extractor) Segment(text string) map[Section]*SectionContent {
	s := &segmenter{
		headers:  e.headers,
		months:   e.months,
		sections: make(map[Section]*SectionContent),
	}
	for _, line := range splitLines(normalize(text)) {
		s.feed(line)
	}
	return s.sections
}
