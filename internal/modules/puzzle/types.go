package puzzle

import "strings"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	LanguageZH = "zh"
	LanguageEN = "en"

	DefaultImageStyle = "treasure map"

	expectedHints = 3
)

// Record is a generated puzzle. Fields are whatever the model returned;
// nothing is enforced beyond JSON shape.
type Record struct {
	Story    string   `json:"story"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Hints    []string `json:"hints"`
	ImageURL string   `json:"image_url,omitempty"`
}

// Complete reports whether the record has an answer and exactly three hints.
func (r *Record) Complete() bool {
	return r != nil && strings.TrimSpace(r.Answer) != "" && len(r.Hints) == expectedHints
}

// GenerationRequest is the body of /api/generate-puzzle and /api/create-treasure-map.
type GenerationRequest struct {
	Keywords   []string `json:"keywords" binding:"required,min=1"`
	Difficulty string   `json:"difficulty"`
	Language   string   `json:"language"`
}

// WithDefaults fills in medium difficulty and Chinese output.
func (r GenerationRequest) WithDefaults() GenerationRequest {
	out := r
	out.Difficulty = strings.ToLower(strings.TrimSpace(out.Difficulty))
	if out.Difficulty == "" {
		out.Difficulty = DifficultyMedium
	}
	out.Language = strings.ToLower(strings.TrimSpace(out.Language))
	if out.Language == "" {
		out.Language = LanguageZH
	}
	return out
}

// Verdict is the outcome of answer validation. Fallback is set when the
// verdict came from plain string comparison instead of the model.
type Verdict struct {
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
	Fallback    bool   `json:"fallback,omitempty"`
}

type generateImageDTO struct {
	Description string `json:"description" binding:"required"`
	Style       string `json:"style"`
}

type validateAnswerDTO struct {
	Question      string `json:"question"       binding:"required"`
	UserAnswer    string `json:"user_answer"    binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required"`
}
