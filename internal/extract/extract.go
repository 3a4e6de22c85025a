// Package extract turns résumé text into structured fields with ordered
// pattern-matching heuristics. Extraction never fails: fields that no
// heuristic recognizes are left nil.
package extract

import (
	"fmt"
	"strings"
	"sync"
)

// ParsedCV is the structured result for one document.
type ParsedCV struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	Skills     []string `json:"skills"`
	Experience *string  `json:"experience"`
	Education  *string  `json:"education"`
	RawText    string   `json:"rawText"`

	// NameSource names the heuristic layer that produced Name.
	NameSource string `json:"-"`
	// Sections holds everything the segmenter captured, keyed by section.
	Sections map[Section]*SectionContent `json:"-"`
}

// Extractor runs the extraction pipeline. It is read-only after construction
// and safe for concurrent use.
type Extractor struct {
	window   int
	regions  []string
	people   PeopleFinder
	headers  *headerMatcher
	denylist map[string]struct{}
	skills   []skillPattern
	months   []string
	layers   []nameLayer
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPeopleFinder enables the NLP fallback layer of the name extractor.
func WithPeopleFinder(f PeopleFinder) Option {
	return func(e *Extractor) {
		e.people = f
	}
}

// WithNameWindow sets how many leading runes the name heuristics look at.
func WithNameWindow(runes int) Option {
	return func(e *Extractor) {
		if runes > 0 {
			e.window = runes
		}
	}
}

// WithPhoneRegions sets the default regions used to validate phone numbers
// written without a country code.
func WithPhoneRegions(regions ...string) Option {
	return func(e *Extractor) {
		var cleaned []string
		for _, r := range regions {
			if r = strings.ToUpper(strings.TrimSpace(r)); r != "" {
				cleaned = append(cleaned, r)
			}
		}
		if len(cleaned) > 0 {
			e.regions = cleaned
		}
	}
}

// NewExtractor compiles the tables into an Extractor. Empty table fields fall
// back to the defaults.
func NewExtractor(tables Tables, opts ...Option) (*Extractor, error) {
	tables = tables.merge(DefaultTables())

	e := &Extractor{
		window:  defaultNameWindow,
		regions: defaultPhoneRegions,
	}
	for _, opt := range opts {
		opt(e)
	}

	headers, err := compileHeaders(tables.Aliases)
	if err != nil {
		return nil, err
	}
	e.headers = headers

	skills, err := compileSkills(tables.Skills)
	if err != nil {
		return nil, err
	}
	e.skills = skills

	for _, m := range tables.Months {
		if m = strings.TrimSpace(normalize(m)); m != "" {
			e.months = append(e.months, m)
		}
	}

	e.denylist = make(map[string]struct{})
	deny := func(word string) {
		if word = strings.TrimSpace(word); word != "" {
			e.denylist[fold(word)] = struct{}{}
		}
	}
	for _, word := range tables.NameDenylist {
		deny(word)
	}
	for _, list := range tables.Aliases {
		for _, alias := range list {
			for _, word := range strings.Fields(alias) {
				deny(word)
			}
		}
	}
	// acronyms only: HTML, AWS. Words like Ruby or Swift are also given names.
	for _, p := range e.skills {
		for _, word := range strings.Fields(p.skill) {
			if word == strings.ToUpper(word) {
				deny(word)
			}
		}
	}

	e.layers = e.nameLayers()

	return e, nil
}

// Extract runs every stage over rawText and assembles the result.
func (e *Extractor) Extract(rawText string) *ParsedCV {
	text := normalize(rawText)

	cv := &ParsedCV{
		Skills:  e.Skills(text),
		RawText: rawText,
	}

	if name, source := e.Name(text); name != "" {
		cv.Name = &name
		cv.NameSource = source
	}
	if email := e.Email(text); email != "" {
		cv.Email = &email
	}
	if phone := e.Phone(text); phone != "" {
		cv.Phone = &phone
	}

	cv.Sections = e.Segment(text)
	cv.Experience = sectionText(cv.Sections[SectionExperience])
	cv.Education = sectionText(cv.Sections[SectionEducation])

	return cv
}

func sectionText(c *SectionContent) *string {
	if c.Empty() {
		return nil
	}
	text := c.Text()
	return &text
}

var defaultExtractor = sync.OnceValue(func() *Extractor {
	e, err := NewExtractor(DefaultTables())
	if err != nil {
		panic(fmt.Sprintf("extract: default tables: %v", err))
	}
	return e
})

// Extract runs the pipeline with the default tables and no NLP fallback.
func Extract(rawText string) *ParsedCV {
	return defaultExtractor().Extract(rawText)
}

// Value dereferences an optional field, returning def when it is nil.
func Value(field *string, def string) string {
	if field == nil {
		return def
	}
	return *field
}
