package notes

// GenerateRequest is the inbound request for one notes generation. Reference
// content is either a YouTube URL or literal text; when both are supplied the
// literal text wins and the URL is ignored.
type GenerateRequest struct {
	URL     string `json:"url" validate:"omitempty,url"`
	Content string `json:"content"`
	UserID  string `json:"userId"`
}

// StudyNotesDocument is the structured study-notes artifact produced from one
// generation. Every field is required; the validator never returns a
// partially populated document.
type StudyNotesDocument struct {
	Title         string         `json:"title"`
	Summary       string         `json:"summary"`
	KeyPoints     []string       `json:"keyPoints"`
	Sections      []Section      `json:"sections"`
	KeyTerms      []string       `json:"keyTerms"`
	QuizQuestions []QuizQuestion `json:"quizQuestions"`
}

type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// QuizQuestion holds one multiple-choice question with exactly four options.
// Whether Answer is actually a member of Options is not checked; it is a
// best-effort field from the model.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}
