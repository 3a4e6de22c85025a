package extract

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

var defaultPhoneRegions = []string{"TR", "US"}

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// phoneCandidateRe finds spans handed to the phone number recognizer.
	phoneCandidateRe = regexp.MustCompile(`\+?\(?\d[\d \t().-]{8,}\d`)

	// phoneFallbacks are tried in order when the recognizer finds nothing.
	phoneFallbacks = []*regexp.Regexp{
		// international: +90 532 123 45 67, +1 (555) 123-4567
		regexp.MustCompile(`\+\d{1,3}[ .-]?\(?\d{1,4}\)?(?:[ .-]?\d{2,4}){2,4}`),
		// domestic 3-3-4: (555) 123-4567, 555.123.4567
		regexp.MustCompile(`\(?\d{3}\)?[ .-]?\d{3}[ .-]?\d{4}`),
		// turkish mobile: 0532 123 45 67
		regexp.MustCompile(`0?[ ]?\(?5\d{2}\)?[ .-]?\d{3}[ .-]?\d{2}[ .-]?\d{2}`),
		// anything with 10+ digits once separators are dropped
		regexp.MustCompile(`\d(?:[ .()-]*\d){9,}`),
	}
)

// Email returns the first e-mail address in document order.
func (e *Extractor) Email(text string) string {
	return emailRe.FindString(text)
}

// Phone returns the first phone number found, trying the recognizer before
// the fallback patterns.
func (e *Extractor) Phone(text string) string {
	if phone := e.recognizePhone(text); phone != "" {
		return phone
	}
	for _, re := range phoneFallbacks {
		for _, match := range re.FindAllString(text, -1) {
			if countDigits(match) >= minPhoneDigits {
				return strings.TrimSpace(match)
			}
		}
	}
	return ""
}

func (e *Extractor) recognizePhone(text string) string {
	for _, candidate := range phoneCandidateRe.FindAllString(text, -1) {
		candidate = strings.TrimSpace(candidate)
		digits := countDigits(candidate)
		if digits < minPhoneDigits || digits > maxPhoneDigits {
			continue
		}
		for _, region := range e.regions {
			num, err := phonenumbers.Parse(candidate, region)
			if err != nil {
				continue
			}
			if phonenumbers.IsPossibleNumber(num) {
				return candidate
			}
		}
	}
	return ""
}
