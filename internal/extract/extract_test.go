package extract

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func mustExtractor(t *testing.T, opts ...Option) *Extractor {
	t.Helper()
	e, err := NewExtractor(DefaultTables(), opts...)
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	return e
}

func TestExtractNameAndEducation(t *testing.T) {
	input := "JOHN SMITH\nSoftware Engineer\nEDUCATION\nMIT\n2020-2024 Computer Science\n"

	cv := mustExtractor(t).Extract(input)

	if got := Value(cv.Name, ""); got != "JOHN SMITH" {
		t.Fatalf("unexpected name %q", got)
	}
	if cv.NameSource != NameSourceUppercase {
		t.Fatalf("unexpected name source %q", cv.NameSource)
	}

	entries := cv.Sections[SectionEducation].Entries
	if !reflect.DeepEqual(entries, []string{"MIT", "2020-2024 Computer Science"}) {
		t.Fatalf("unexpected education entries %q", entries)
	}
	if got := Value(cv.Education, ""); got != "MIT\n2020-2024 Computer Science" {
		t.Fatalf("unexpected education %q", got)
	}
	if cv.Experience != nil {
		t.Fatalf("expected no experience, got %q", *cv.Experience)
	}
}

func TestExtractContact(t *testing.T) {
	input := "Jane Doe\nemail: jane@example.com\n+1 (555) 123-4567\n"

	cv := mustExtractor(t).Extract(input)

	if got := Value(cv.Email, ""); got != "jane@example.com" {
		t.Fatalf("unexpected email %q", got)
	}
	if cv.Phone == nil {
		t.Fatalf("expected phone to be found")
	}
	if n := countDigits(*cv.Phone); n < minPhoneDigits {
		t.Fatalf("expected at least %d digits in %q, got %d", minPhoneDigits, *cv.Phone, n)
	}
}

func TestExtractUnstructuredText(t *testing.T) {
	input := "just some lowercase notes\nwithout any headers at all\n"

	cv := mustExtractor(t).Extract(input)

	if cv.Skills == nil || len(cv.Skills) != 0 {
		t.Fatalf("expected empty non-nil skills, got %#v", cv.Skills)
	}
	if cv.Experience != nil || cv.Education != nil {
		t.Fatalf("expected nil experience and education")
	}
	if len(cv.Sections) != 0 {
		t.Fatalf("expected no sections, got %d", len(cv.Sections))
	}
	if cv.RawText != input {
		t.Fatalf("raw text was modified: %q", cv.RawText)
	}
	if cv.Name != nil || cv.Email != nil || cv.Phone != nil {
		t.Fatalf("expected nil name, email and phone")
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	input := "AYŞE YILMAZ\nayse@example.com\nSKILLS\nGo, Docker, Kubernetes, C++\nİŞ DENEYİMİ\nOcak 2020 - Mart 2022 Acme\nbuilt services in go\n"
	e := mustExtractor(t)

	first, err := json.Marshal(e.Extract(input))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(e.Extract(input))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if string(first) != string(second) {
		t.Fatalf("non deterministic output:\n%s\n%s", first, second)
	}
}

func TestExtractJSONKeys(t *testing.T) {
	data, err := json.Marshal(Extract("nothing here"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"name", "email", "phone", "skills", "experience", "education", "rawText"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing key %q in %s", key, data)
		}
	}
	if len(decoded) != 7 {
		t.Fatalf("unexpected keys in %s", data)
	}
	if _, ok := decoded["skills"].([]any); !ok {
		t.Fatalf("skills must be an array, got %s", data)
	}
	if decoded["name"] != nil {
		t.Fatalf("name must be null, got %v", decoded["name"])
	}
}

func TestExtractTurkishResume(t *testing.T) {
	input := strings.Join([]string{
		"MEHMET ÖZTÜRK",
		"Yazılım Geliştirici",
		"mehmet.ozturk@example.com | 0532 123 45 67",
		"EĞİTİM",
		"Boğaziçi Üniversitesi",
		"2016 - 2020 Bilgisayar Mühendisliği",
		"DENEYİM",
		"Şubat 2021 - Halen Trendyol",
		"mikroservis mimarisi üzerinde çalıştım",
		"DİLLER",
		"İngilizce (C1)",
	}, "\n")

	cv := mustExtractor(t).Extract(input)

	if got := Value(cv.Name, ""); got != "MEHMET ÖZTÜRK" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := Value(cv.Email, ""); got != "mehmet.ozturk@example.com" {
		t.Fatalf("unexpected email %q", got)
	}
	if got := Value(cv.Phone, ""); countDigits(got) < minPhoneDigits {
		t.Fatalf("unexpected phone %q", got)
	}
	if got := Value(cv.Experience, ""); got != "Şubat 2021 - Halen Trendyol\nmikroservis mimarisi üzerinde çalıştım" {
		t.Fatalf("unexpected experience %q", got)
	}
	if got := Value(cv.Education, ""); got != "Boğaziçi Üniversitesi\n2016 - 2020 Bilgisayar Mühendisliği" {
		t.Fatalf("unexpected education %q", got)
	}
	if got := cv.Sections[SectionLanguages].Text(); got != "İngilizce (C1)" {
		t.Fatalf("unexpected languages %q", got)
	}
}

func TestNewExtractorRejectsConflictingAliases(t *testing.T) {
	tables := DefaultTables()
	tables.Aliases[SectionAwards] = append(tables.Aliases[SectionAwards], "Education")

	if _, err := NewExtractor(tables); err == nil {
		t.Fatalf("expected conflicting alias error")
	}
}

func TestNewExtractorCustomTables(t *testing.T) {
	tables := Tables{
		Aliases: map[Section][]string{SectionExperience: {"CAREER HISTORY"}},
		Skills:  []string{"Haskell"},
	}
	e, err := NewExtractor(tables)
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}

	cv := e.Extract("Career History\nAcme Corp\nwrote haskell and python\n")

	if got := Value(cv.Experience, ""); got != "Acme Corp\nwrote haskell and python" {
		t.Fatalf("unexpected experience %q", got)
	}
	if !reflect.DeepEqual(cv.Skills, []string{"Haskell"}) {
		t.Fatalf("unexpected skills %v", cv.Skills)
	}
}
