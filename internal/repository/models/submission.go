package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PercentageMap is a custom type for the archetype_percentages JSONB column.
type PercentageMap map[string]int

// Value implements the driver.Valuer interface
func (p PercentageMap) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	jsonData, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (p *PercentageMap) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("PercentageMap Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*p = nil
		return nil
	}
	return json.Unmarshal(bytesToParse, p)
}

// AnswerSelection is one entry of the compacted answer list.
type AnswerSelection struct {
	Q int    `json:"q"`
	I int    `json:"i"`
	A string `json:"a"`
}

// CompactAnswersData is the JSON document stored in answers_compact.
type CompactAnswersData struct {
	QuizVersion string            `json:"quiz_version"`
	Selections  []AnswerSelection `json:"selections"`
}

// NullCompactAnswers is a nullable answers_compact column, following the
// sql.NullString convention.
type NullCompactAnswers struct {
	Data  CompactAnswersData
	Valid bool
}

// Value implements the driver.Valuer interface
func (n NullCompactAnswers) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	jsonData, err := json.Marshal(n.Data)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (n *NullCompactAnswers) Scan(value interface{}) error {
	if value == nil {
		*n = NullCompactAnswers{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("NullCompactAnswers Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*n = NullCompactAnswers{}
		return nil
	}

	var data CompactAnswersData
	if err := json.Unmarshal(bytesToParse, &data); err != nil {
		return err
	}
	*n = NullCompactAnswers{Data: data, Valid: true}
	return nil
}

// QuizSubmission is the quiz_submissions table row. A row is inserted at
// stage 1 with quiz_taken false; stage 2 fills the result columns.
type QuizSubmission struct {
	ID                   string             `db:"id"`
	Name                 string             `db:"name"`
	Email                string             `db:"email"`
	Phone                string             `db:"phone"`
	Occupation           string             `db:"occupation"`
	AgeGroup             string             `db:"age_group"`
	IPAddress            sql.NullString     `db:"ip_address"`
	QuizTaken            bool               `db:"quiz_taken"`
	SubmittedAt          time.Time          `db:"submitted_at"`
	QuizStartedAt        time.Time          `db:"quiz_started_at"`
	QuizCompletedAt      sql.NullTime       `db:"quiz_completed_at"`
	Archetype            sql.NullString     `db:"archetype"`
	ArchetypePercentages PercentageMap      `db:"archetype_percentages"`
	AnswersCompact       NullCompactAnswers `db:"answers_compact"`
	QuizVersion          sql.NullString     `db:"quiz_version"`
	CreatedAt            time.Time          `db:"created_at"`
	UpdatedAt            time.Time          `db:"updated_at"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}
