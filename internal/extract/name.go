package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Name sources reported in ParsedCV.NameSource.
const (
	NameSourceUppercase = "uppercase"
	NameSourceTitleCase = "titlecase"
	NameSourceKeyword   = "keyword"
	NameSourceNLP       = "nlp"
)

const (
	defaultNameWindow = 1000
	minNameTokenRunes = 3
	minNameTokens     = 2
	maxNameTokens     = 4
)

// PeopleFinder recognizes person names in free text.
type PeopleFinder interface {
	FindPeopleNames(text string) []string
}

// PeopleFinderFunc adapts a plain function to PeopleFinder.
type PeopleFinderFunc func(text string) []string

func (f PeopleFinderFunc) FindPeopleNames(text string) []string { return f(text) }

type nameLayer struct {
	source string
	find   func(window, full string) string
}

var (
	// phoneNoiseRe blanks phone-like digit runs before token scanning.
	phoneNoiseRe = regexp.MustCompile(`\+?\(?\d[\d \t().-]{5,}\d`)
	// nameKeywordRe matches "Name: John Smith" style lines, English and Turkish.
	nameKeywordRe = regexp.MustCompile(`(?:^|[^\p{L}])(?i:full[ \t]*name|name|candidate|ad[ıi]?[ \t]*soyad[ıi]?)[ \t]*:[ \t]*(\p{Lu}[\p{L}'-]*(?:[ \t]+\p{Lu}[\p{L}'-]*){1,3})`)
)

func (e *Extractor) nameLayers() []nameLayer {
	return []nameLayer{
		{source: NameSourceUppercase, find: func(window, _ string) string {
			return e.scanTokenRun(stripContactNoise(window), isUpperToken)
		}},
		{source: NameSourceTitleCase, find: func(window, _ string) string {
			return e.scanTokenRun(stripContactNoise(window), isTitleToken)
		}},
		{source: NameSourceKeyword, find: func(window, _ string) string {
			return e.keywordName(window)
		}},
		{source: NameSourceNLP, find: func(_, full string) string {
			return e.nlpName(full)
		}},
	}
}

// Name runs the name layers in priority order and returns the first hit and
// the layer that produced it.
func (e *Extractor) Name(text string) (string, string) {
	full := normalize(text)
	window := firstRunes(full, e.window)
	for _, layer := range e.layers {
		if name := strings.TrimSpace(layer.find(window, full)); name != "" {
			return name, layer.source
		}
	}
	return "", ""
}

func stripContactNoise(s string) string {
	s = emailRe.ReplaceAllString(s, " ")
	return phoneNoiseRe.ReplaceAllString(s, " ")
}

// scanTokenRun looks for 2-4 consecutive tokens on one line that all satisfy
// accept and none of which is denylisted.
func (e *Extractor) scanTokenRun(text string, accept func(string) bool) string {
	for _, line := range strings.Split(text, "\n") {
		var run []string
		for _, raw := range strings.Fields(line) {
			token := strings.TrimRight(raw, ",;:|")
			closes := token != raw
			token = strings.TrimLeft(token, "•·|")

			if !accept(token) || e.denied(token) {
				if len(run) >= minNameTokens {
					return strings.Join(run, " ")
				}
				run = run[:0]
				continue
			}

			run = append(run, token)
			if len(run) == maxNameTokens || (closes && len(run) >= minNameTokens) {
				return strings.Join(run, " ")
			}
			if closes {
				run = run[:0]
			}
		}
		if len(run) >= minNameTokens {
			return strings.Join(run, " ")
		}
	}
	return ""
}

func isUpperToken(token string) bool {
	if utf8.RuneCountInString(token) < minNameTokenRunes {
		return false
	}
	for _, r := range token {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func isTitleToken(token string) bool {
	if utf8.RuneCountInString(token) < minNameTokenRunes {
		return false
	}
	for i, r := range token {
		if i == 0 {
			if !unicode.IsUpper(r) {
				return false
			}
			continue
		}
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

func (e *Extractor) keywordName(window string) string {
	for _, line := range strings.Split(window, "\n") {
		m := nameKeywordRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		tokens := strings.Fields(m[1])
		for len(tokens) > 0 && e.denied(tokens[len(tokens)-1]) {
			tokens = tokens[:len(tokens)-1]
		}
		if len(tokens) >= minNameTokens {
			return strings.Join(tokens, " ")
		}
	}
	return ""
}

func (e *Extractor) nlpName(full string) string {
	if e.people == nil {
		return ""
	}
	names := e.people.FindPeopleNames(full)
	for _, name := range names {
		if n := len(strings.Fields(name)); n >= minNameTokens && n <= maxNameTokens {
			return name
		}
	}
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			return name
		}
	}
	return ""
}

func (e *Extractor) denied(token string) bool {
	_, ok := e.denylist[fold(token)]
	return ok
}
