package logger

import (
	"sort"

	"github.com/spigell/cv-analyzer/internal/extract"
	"go.uber.org/zap"
)

const (
	FieldNameSource = "name_source"
	FieldSkills     = "skills_count"
	FieldSections   = "sections"
)

// CVFields summarizes an extraction result without logging personal data:
// only which fields were recognized, never their values.
func CVFields(cv *extract.ParsedCV) []zap.Field {
	if cv == nil {
		return nil
	}

	sections := make([]string, 0, len(cv.Sections))
	for s := range cv.Sections {
		sections = append(sections, string(s))
	}
	sort.Strings(sections)

	fields := []zap.Field{
		zap.Bool("name_found", cv.Name != nil),
		zap.Bool("email_found", cv.Email != nil),
		zap.Bool("phone_found", cv.Phone != nil),
		zap.Bool("experience_found", cv.Experience != nil),
		zap.Bool("education_found", cv.Education != nil),
		zap.Int(FieldSkills, len(cv.Skills)),
		zap.Strings(FieldSections, sections),
		zap.Int("text_length", len(cv.RawText)),
	}

	return append(fields, StringFields(StringField{Key: FieldNameSource, Value: cv.NameSource})...)
}
