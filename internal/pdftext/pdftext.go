// Package pdftext turns PDF bytes into plain text with one line per visual
// row and a line break after every page.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned when a document decodes but carries no text layer.
var ErrNoText = errors.New("pdf has no extractable text")

// wordGap is the horizontal gap, as a fraction of the font size, that
// separates two glyph runs with a space.
const wordGap = 0.2

// Document is the text content of a PDF.
type Document struct {
	Text  string
	Pages int
}

// Extract decodes data and returns its text. The decoder panics on some
// malformed files, so panics are converted into errors.
func Extract(data []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("decode pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	doc = &Document{Pages: reader.NumPage()}

	var b strings.Builder
	for i := 1; i <= doc.Pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			b.WriteString("\n")
			continue
		}
		b.WriteString(pageText(page))
		b.WriteString("\n")
	}

	doc.Text = Sanitize(b.String())
	if strings.TrimSpace(doc.Text) == "" {
		return nil, ErrNoText
	}

	return doc, nil
}

func pageText(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		text, plainErr := page.GetPlainText(nil)
		if plainErr != nil {
			return ""
		}
		return text
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if line := joinRow(row.Content); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// joinRow concatenates the glyph runs of one row left to right, inserting a
// single space where the gap between runs is wide enough to be a word break.
func joinRow(texts []pdf.Text) string {
	runs := make([]pdf.Text, len(texts))
	copy(runs, texts)
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].X < runs[j].X })

	var b strings.Builder
	var prev *pdf.Text
	for i := range runs {
		t := &runs[i]
		if t.S == "" {
			continue
		}
		if prev != nil {
			gap := t.X - (prev.X + prev.W)
			size := t.FontSize
			if size <= 0 {
				size = 1
			}
			if gap > wordGap*size && !endsWithSpace(b.String()) && !strings.HasPrefix(t.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		prev = t
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func endsWithSpace(s string) bool {
	return s != "" && s[len(s)-1] == ' '
}

// Sanitize drops control characters other than tab, newline and carriage
// return, and replacement characters left by broken font encodings.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r == unicode.ReplacementChar:
			return -1
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}
