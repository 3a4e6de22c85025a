package ai

// Score is one rated dimension of a résumé.
type Score struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

type Scoring struct {
	Structure Score `json:"structure"`
	Language  Score `json:"language"`
	Relevance Score `json:"relevance"`
	Technical Score `json:"technical"`
	Clarity   Score `json:"clarity"`
}

type InterviewQuestions struct {
	Technical    []string `json:"technical"`
	Behavioral   []string `json:"behavioral"`
	RoleSpecific []string `json:"roleSpecific"`
}

// Analysis is the review returned to clients, whether it came from a model or
// from the built-in sample.
type Analysis struct {
	Summary            string             `json:"summary"`
	MissingSections    []string           `json:"missingSections"`
	Suggestions        []string           `json:"suggestions"`
	Scoring            Scoring            `json:"scoring"`
	InterviewQuestions InterviewQuestions `json:"interviewQuestions"`
}

const (
	minScore = 0
	maxScore = 100
)

// Normalize clamps scores to 0..100 and replaces nil lists with empty ones so
// the JSON shape is stable.
func (a *Analysis) Normalize() {
	if a == nil {
		return
	}

	for _, s := range []*Score{
		&a.Scoring.Structure,
		&a.Scoring.Language,
		&a.Scoring.Relevance,
		&a.Scoring.Technical,
		&a.Scoring.Clarity,
	} {
		s.Score = min(max(s.Score, minScore), maxScore)
	}

	for _, list := range []*[]string{
		&a.MissingSections,
		&a.Suggestions,
		&a.InterviewQuestions.Technical,
		&a.InterviewQuestions.Behavioral,
		&a.InterviewQuestions.RoleSpecific,
	} {
		if *list == nil {
			*list = []string{}
		}
	}
}
