package results

// Answer records the outcome of one question in a session: whether the
// student read/named it correctly. QuestionText is carried along so a
// result stays reviewable after the question is deleted.
type Answer struct {
	QuestionID   int    `json:"questionId"`
	Answer       bool   `json:"answer"`
	QuestionText string `json:"questionText,omitempty"`
}

// Result is one finished test session.
type Result struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	Category        string   `json:"category"`
	SetID           string   `json:"set_id,omitempty"`
	SetName         string   `json:"set_name,omitempty"`
	Answers         []Answer `json:"answers"`
	AudioPath       string   `json:"audio_path,omitempty"`
	StartedAt       string   `json:"started_at,omitempty"`
	FinishedAt      string   `json:"finished_at,omitempty"`
	DurationSeconds int      `json:"duration_seconds"`
	TotalQuestions  int      `json:"total_questions"`
	AnsweredCount   int      `json:"answered_count"`
	CreatedAt       int64    `json:"created_at"`
}
