package domain

import "time"

// Submission is the durable record of one quiz attempt. It is created at
// stage 1 with QuizTaken false and mutated exactly once at stage 2, which
// attaches the results and flips QuizTaken. Abandoned attempts stay in the
// created state indefinitely.
type Submission struct {
	ID              string
	Name            string
	Email           string
	Phone           string
	Occupation      string
	AgeGroup        string
	IPAddress       string
	QuizTaken       bool
	SubmittedAt     time.Time
	QuizStartedAt   time.Time
	QuizCompletedAt *time.Time

	// Populated once stage 2 completes.
	Archetype   Archetype
	Percentages map[Archetype]int
	Answers     *CompactAnswers
	QuizVersion string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuizResults is the payload attached at stage 2.
type QuizResults struct {
	Archetype   Archetype
	Percentages map[Archetype]int
	Answers     *CompactAnswers
	QuizVersion string
}

// CompactAnswers is the audit trail of what was selected, exactly as the
// client submits it.
type CompactAnswers struct {
	QuizVersion string            `json:"quiz_version"`
	Selections  []AnswerSelection `json:"selections"`
}

// AnswerSelection records one question's selection. A is empty and I is -1
// when the question was skipped.
type AnswerSelection struct {
	Q int    `json:"q"`
	I int    `json:"i"`
	A string `json:"a"`
}
