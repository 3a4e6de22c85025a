package extract

import "testing"

func TestNameLayers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		input  string
		want   string
		source string
	}{
		{
			name:   "uppercase",
			input:  "ALİ VELİ\nBackend Developer",
			want:   "ALİ VELİ",
			source: NameSourceUppercase,
		},
		{
			name:   "uppercase skips denylisted words",
			input:  "SOFTWARE ENGINEER\nJOHN SMITH",
			want:   "JOHN SMITH",
			source: NameSourceUppercase,
		},
		{
			name:   "uppercase ignores acronyms from the skill list",
			input:  "HTML CSS AWS\nJane Marie Doe",
			want:   "Jane Marie Doe",
			source: NameSourceTitleCase,
		},
		{
			name:   "uppercase stops at short tokens",
			input:  "ANNA MARIA LUISA DE LA CRUZ",
			want:   "ANNA MARIA LUISA",
			source: NameSourceUppercase,
		},
		{
			name:   "uppercase keeps at most four tokens",
			input:  "JEAN PAUL MARIE LOUIS PIERRE",
			want:   "JEAN PAUL MARIE LOUIS",
			source: NameSourceUppercase,
		},
		{
			name:   "trailing comma closes the run",
			input:  "JOHN SMITH, PHD CANDIDATE",
			want:   "JOHN SMITH",
			source: NameSourceUppercase,
		},
		{
			name:   "contact lines are stripped",
			input:  "CONTACT: JOHN@EXAMPLE.COM\nMaria Lopez",
			want:   "Maria Lopez",
			source: NameSourceTitleCase,
		},
		{
			name:   "title case",
			input:  "curriculum vitae\nAyşe Kaya\nFrontend Developer",
			want:   "Ayşe Kaya",
			source: NameSourceTitleCase,
		},
		{
			name:   "keyword",
			input:  "full name: Jo Li\n",
			want:   "Jo Li",
			source: NameSourceKeyword,
		},
		{
			name:   "turkish keyword",
			input:  "adı soyadı: Su Ak",
			want:   "Su Ak",
			source: NameSourceKeyword,
		},
		{
			name:  "nothing",
			input: "resume\nsee attached",
		},
	}

	e := mustExtractor(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, source := e.Name(tc.input)
			if got != tc.want {
				t.Fatalf("expected name %q, got %q", tc.want, got)
			}
			if source != tc.source {
				t.Fatalf("expected source %q, got %q", tc.source, source)
			}
		})
	}
}

func TestNameWindow(t *testing.T) {
	e := mustExtractor(t, WithNameWindow(10))

	got, _ := e.Name("lowercase text here\nJOHN SMITH")
	if got != "" {
		t.Fatalf("expected name outside the window to be ignored, got %q", got)
	}
}

func TestNameNLPFallback(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		people []string
		want   string
	}{
		{name: "prefers multi token", people: []string{"Cher", "Jo Li"}, want: "Jo Li"},
		{name: "accepts single token", people: []string{"Cher"}, want: "Cher"},
		{name: "too many tokens falls back to first", people: []string{"A B C D E"}, want: "A B C D E"},
		{name: "empty", people: nil, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			finder := PeopleFinderFunc(func(text string) []string {
				seen = text
				return tc.people
			})
			e := mustExtractor(t, WithPeopleFinder(finder))

			input := "worked with jo li at acme"
			got, source := e.Name(input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if tc.want != "" && source != NameSourceNLP {
				t.Fatalf("expected nlp source, got %q", source)
			}
			if seen != input {
				t.Fatalf("expected finder to receive full text, got %q", seen)
			}
		})
	}
}

func TestNameNLPNotCalledWhenEarlierLayerMatches(t *testing.T) {
	called := false
	finder := PeopleFinderFunc(func(string) []string {
		called = true
		return []string{"Someone Else"}
	})
	e := mustExtractor(t, WithPeopleFinder(finder))

	got, _ := e.Name("JOHN SMITH")
	if got != "JOHN SMITH" {
		t.Fatalf("unexpected name %q", got)
	}
	if called {
		t.Fatalf("nlp layer must not run after a match")
	}
}
