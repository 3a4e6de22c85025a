// Package nlp wraps a statistical named-entity recognizer for the last name
// extraction layer.
package nlp

import (
	"strings"

	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"
)

const personLabel = "PERSON"

// ProseFinder reports PERSON entities found by the prose tagger.
type ProseFinder struct {
	logger *zap.Logger
}

// NewProseFinder returns a finder. A nil logger disables logging.
func NewProseFinder(logger *zap.Logger) *ProseFinder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProseFinder{logger: logger}
}

// FindPeopleNames returns person names in document order without duplicates.
// Tagging errors yield no names.
func (f *ProseFinder) FindPeopleNames(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		f.logger.Debug("tagging document for people names", zap.Error(err))
		return nil
	}

	return people(doc.Entities())
}

func people(entities []prose.Entity) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, ent := range entities {
		if ent.Label != personLabel {
			continue
		}
		name := strings.Join(strings.Fields(ent.Text), " ")
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
