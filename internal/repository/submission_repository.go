package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"auravo-quiz/internal/domain"
	"auravo-quiz/internal/repository/models"
	"auravo-quiz/internal/util"
)

// SubmissionRepository persists quiz attempts across the two submission
// stages.
type SubmissionRepository interface {
	// CreateSubmission inserts the stage 1 record.
	CreateSubmission(ctx context.Context, sub *domain.Submission) error
	// GetSubmissionByID returns nil, nil when no record exists.
	GetSubmissionByID(ctx context.Context, id string) (*domain.Submission, error)
	// UpdateSubmissionResults attaches stage 2 results to an existing record
	// and returns the updated row. Returns sql.ErrNoRows when the record is
	// gone.
	UpdateSubmissionResults(ctx context.Context, id string, results *domain.QuizResults, completedAt time.Time) (*domain.Submission, error)
}

type submissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository creates a new Postgres-backed SubmissionRepository.
func NewSubmissionRepository(db *sqlx.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) CreateSubmission(ctx context.Context, sub *domain.Submission) error {
	model := fromDomainSubmission(sub)
	query := `INSERT INTO quiz_submissions (
		id, name, email, phone, occupation, age_group, ip_address,
		quiz_taken, submitted_at, quiz_started_at, created_at, updated_at
	) VALUES (
		:id, :name, :email, :phone, :occupation, :age_group, :ip_address,
		:quiz_taken, :submitted_at, :quiz_started_at, :created_at, :updated_at
	)`
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("inserting submission %s: %w", sub.ID, err)
	}
	return nil
}

func (r *submissionRepository) GetSubmissionByID(ctx context.Context, id string) (*domain.Submission, error) {
	var model models.QuizSubmission
	query := `SELECT * FROM quiz_submissions WHERE id = $1`
	err := r.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching submission %s: %w", id, err)
	}
	return toDomainSubmission(&model), nil
}

func (r *submissionRepository) UpdateSubmissionResults(ctx context.Context, id string, results *domain.QuizResults, completedAt time.Time) (*domain.Submission, error) {
	model := models.QuizSubmission{
		ID:                   id,
		QuizTaken:            true,
		QuizCompletedAt:      util.TimeToNullTime(completedAt),
		Archetype:            util.StringToNullString(string(results.Archetype)),
		ArchetypePercentages: percentagesToModel(results.Percentages),
		AnswersCompact:       answersToModel(results.Answers),
		QuizVersion:          util.StringToNullString(results.QuizVersion),
		UpdatedAt:            completedAt,
	}
	query := `UPDATE quiz_submissions SET
		quiz_taken = :quiz_taken,
		quiz_completed_at = :quiz_completed_at,
		archetype = :archetype,
		archetype_percentages = :archetype_percentages,
		answers_compact = :answers_compact,
		quiz_version = :quiz_version,
		updated_at = :updated_at
	WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return nil, fmt.Errorf("updating submission %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update of submission %s: %w", id, err)
	}
	if rows == 0 {
		return nil, sql.ErrNoRows
	}
	return r.GetSubmissionByID(ctx, id)
}

func fromDomainSubmission(sub *domain.Submission) *models.QuizSubmission {
	return &models.QuizSubmission{
		ID:                   sub.ID,
		Name:                 sub.Name,
		Email:                sub.Email,
		Phone:                sub.Phone,
		Occupation:           sub.Occupation,
		AgeGroup:             sub.AgeGroup,
		IPAddress:            util.StringToNullString(sub.IPAddress),
		QuizTaken:            sub.QuizTaken,
		SubmittedAt:          sub.SubmittedAt,
		QuizStartedAt:        sub.QuizStartedAt,
		QuizCompletedAt:      util.TimePtrToNullTime(sub.QuizCompletedAt),
		Archetype:            util.StringToNullString(string(sub.Archetype)),
		ArchetypePercentages: percentagesToModel(sub.Percentages),
		AnswersCompact:       answersToModel(sub.Answers),
		QuizVersion:          util.StringToNullString(sub.QuizVersion),
		CreatedAt:            sub.CreatedAt,
		UpdatedAt:            sub.UpdatedAt,
	}
}

func toDomainSubmission(model *models.QuizSubmission) *domain.Submission {
	return &domain.Submission{
		ID:              model.ID,
		Name:            model.Name,
		Email:           model.Email,
		Phone:           model.Phone,
		Occupation:      model.Occupation,
		AgeGroup:        model.AgeGroup,
		IPAddress:       model.IPAddress.String,
		QuizTaken:       model.QuizTaken,
		SubmittedAt:     model.SubmittedAt,
		QuizStartedAt:   model.QuizStartedAt,
		QuizCompletedAt: util.NullTimeToTimePtr(model.QuizCompletedAt),
		Archetype:       domain.Archetype(model.Archetype.String),
		Percentages:     percentagesToDomain(model.ArchetypePercentages),
		Answers:         answersToDomain(model.AnswersCompact),
		QuizVersion:     model.QuizVersion.String,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func percentagesToModel(percentages map[domain.Archetype]int) models.PercentageMap {
	if percentages == nil {
		return nil
	}
	out := make(models.PercentageMap, len(percentages))
	for archetype, pct := range percentages {
		out[string(archetype)] = pct
	}
	return out
}

func percentagesToDomain(percentages models.PercentageMap) map[domain.Archetype]int {
	if percentages == nil {
		return nil
	}
	out := make(map[domain.Archetype]int, len(percentages))
	for archetype, pct := range percentages {
		out[domain.Archetype(archetype)] = pct
	}
	return out
}

func answersToModel(answers *domain.CompactAnswers) models.NullCompactAnswers {
	if answers == nil {
		return models.NullCompactAnswers{}
	}
	data := models.CompactAnswersData{
		QuizVersion: answers.QuizVersion,
		Selections:  make([]models.AnswerSelection, 0, len(answers.Selections)),
	}
	for _, sel := range answers.Selections {
		data.Selections = append(data.Selections, models.AnswerSelection{Q: sel.Q, I: sel.I, A: sel.A})
	}
	return models.NullCompactAnswers{Data: data, Valid: true}
}

func answersToDomain(answers models.NullCompactAnswers) *domain.CompactAnswers {
	if !answers.Valid {
		return nil
	}
	out := &domain.CompactAnswers{
		QuizVersion: answers.Data.QuizVersion,
		Selections:  make([]domain.AnswerSelection, 0, len(answers.Data.Selections)),
	}
	for _, sel := range answers.Data.Selections {
		out.Selections = append(out.Selections, domain.AnswerSelection{Q: sel.Q, I: sel.I, A: sel.A})
	}
	return out
}
