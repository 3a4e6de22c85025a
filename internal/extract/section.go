package extract

import (
	"fmt"
	"strings"
)

// Section is a canonical résumé section.
type Section string

const (
	SectionContact        Section = "CONTACT"
	SectionSkills         Section = "SKILLS"
	SectionExperience     Section = "EXPERIENCE"
	SectionEducation      Section = "EDUCATION"
	SectionProjects       Section = "PROJECTS"
	SectionReferences     Section = "REFERENCES"
	SectionLanguages      Section = "LANGUAGES"
	SectionAwards         Section = "AWARDS"
	SectionCertifications Section = "CERTIFICATIONS"
	SectionInterests      Section = "INTERESTS"
)

// Sections lists every canonical section in a stable order.
var Sections = []Section{
	SectionContact,
	SectionSkills,
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionReferences,
	SectionLanguages,
	SectionAwards,
	SectionCertifications,
	SectionInterests,
}

// ParseSection resolves a section name such as "experience" to its canonical value.
func ParseSection(name string) (Section, error) {
	s := Section(strings.ToUpper(strings.TrimSpace(name)))
	for _, known := range Sections {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", name)
}

// multiEntry reports whether content of the section is grouped into entries.
func (s Section) multiEntry() bool {
	return s == SectionExperience || s == SectionEducation
}

// SectionContent is the accumulated content of one section.
// Entries is used for EXPERIENCE and EDUCATION, Lines for everything else.
type SectionContent struct {
	Entries []string
	Lines   []string
}

// Text renders the content as a single string: entries or lines joined by newline and trimmed.
func (c *SectionContent) Text() string {
	if c == nil {
		return ""
	}
	if len(c.Entries) > 0 {
		return strings.TrimSpace(strings.Join(c.Entries, "\n"))
	}
	return strings.TrimSpace(strings.Join(c.Lines, "\n"))
}

// Empty reports whether no line was ever assigned to the section.
func (c *SectionContent) Empty() bool {
	return c == nil || (len(c.Entries) == 0 && len(c.Lines) == 0)
}
