package dto

import (
	"time"

	"auravo-quiz/internal/catalog"
	"auravo-quiz/internal/domain"
)

// SubmitDetailsRequest is the stage-1 body: the contact details captured
// before the quiz starts.
type SubmitDetailsRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Occupation string `json:"occupation"`
	AgeGroup   string `json:"ageGroup"`
}

// SubmitDetailsResponse returns the handles the client keeps between stages:
// the submission id and the signed update token.
type SubmitDetailsResponse struct {
	ID          string `json:"id"`
	UpdateToken string `json:"updateToken"`
}

// UpdateResultsRequest is the stage-2 body.
type UpdateResultsRequest struct {
	SubmissionID string              `json:"submissionId"`
	UpdateToken  string              `json:"updateToken"`
	Results      *QuizResultsPayload `json:"results"`
}

// QuizResultsPayload carries the client-computed scoring outcome.
type QuizResultsPayload struct {
	Archetype      string                 `json:"archetype"`
	Percentages    map[string]int         `json:"percentages"`
	AnswersCompact *domain.CompactAnswers `json:"answers_compact"`
	QuizVersion    string                 `json:"quiz_version"`
}

// SubmissionResponse mirrors the stored record returned after stage 2.
type SubmissionResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Email           string                 `json:"email"`
	Phone           string                 `json:"phone"`
	Occupation      string                 `json:"occupation"`
	AgeGroup        string                 `json:"age_group"`
	QuizTaken       bool                   `json:"quiz_taken"`
	SubmittedAt     time.Time              `json:"submitted_at"`
	QuizStartedAt   time.Time              `json:"quiz_started_at"`
	QuizCompletedAt *time.Time             `json:"quiz_completed_at,omitempty"`
	Archetype       string                 `json:"archetype,omitempty"`
	Percentages     map[string]int         `json:"archetype_percentages,omitempty"`
	AnswersCompact  *domain.CompactAnswers `json:"answers_compact,omitempty"`
	QuizVersion     string                 `json:"quiz_version,omitempty"`
}

// QuestionsResponse is the active catalog served to the quiz client.
type QuestionsResponse struct {
	QuizVersion string                    `json:"quiz_version"`
	Questions   []catalog.Question        `json:"questions"`
	Archetypes  []domain.ArchetypeProfile `json:"archetypes"`
}

// SaveSessionAnswersRequest stores in-progress answers for reload resilience.
type SaveSessionAnswersRequest struct {
	UpdateToken string           `json:"updateToken"`
	Answers     []*domain.Answer `json:"answers"`
}

// SessionAnswersResponse returns previously saved in-progress answers.
type SessionAnswersResponse struct {
	Answers []*domain.Answer `json:"answers"`
}

// APIResponse is the {success,data} envelope the quiz endpoints return.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the {success:false,error} envelope for failures.
type ErrorResponse struct {
	Success    bool                     `json:"success"`
	Error      string                   `json:"error"`
	Errors     []domain.ValidationError `json:"errors,omitempty"`
	RetryAfter int                      `json:"retryAfter,omitempty"`
}
