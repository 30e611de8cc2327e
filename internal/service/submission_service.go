package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"

	"auravo-quiz/internal/domain"
	"auravo-quiz/internal/dto"
	"auravo-quiz/internal/ratelimit"
	"auravo-quiz/internal/repository"
	"auravo-quiz/internal/util"
	"auravo-quiz/internal/validation"
)

const maxFieldLength = 100

// SubmissionService runs the two-stage submission flow: contact details
// first, quiz results attached later under the update token minted at
// stage 1.
type SubmissionService interface {
	SubmitDetails(ctx context.Context, req *dto.SubmitDetailsRequest, clientIP string) (*dto.SubmitDetailsResponse, error)
	UpdateResults(ctx context.Context, req *dto.UpdateResultsRequest, clientIP string) (*dto.SubmissionResponse, error)
	SaveSessionAnswers(ctx context.Context, submissionID, updateToken string, answers []*domain.Answer) error
	GetSessionAnswers(ctx context.Context, submissionID, updateToken string) ([]*domain.Answer, error)
}

type submissionService struct {
	repo          repository.SubmissionRepository
	tokens        UpdateTokenService
	sessions      *AnswerSessionCache
	validator     *validation.Validator
	submitLimiter ratelimit.Limiter
	updateLimiter ratelimit.Limiter
	logger        *zap.Logger
	now           func() time.Time
}

// NewSubmissionService wires the submission flow. sessions may be nil when
// no cache is configured; session answer persistence is then disabled.
func NewSubmissionService(
	repo repository.SubmissionRepository,
	tokens UpdateTokenService,
	sessions *AnswerSessionCache,
	submitLimiter ratelimit.Limiter,
	updateLimiter ratelimit.Limiter,
	logger *zap.Logger,
) SubmissionService {
	return &submissionService{
		repo:          repo,
		tokens:        tokens,
		sessions:      sessions,
		validator:     validation.NewValidator(),
		submitLimiter: submitLimiter,
		updateLimiter: updateLimiter,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *submissionService) SubmitDetails(ctx context.Context, req *dto.SubmitDetailsRequest, clientIP string) (*dto.SubmitDetailsResponse, error) {
	if allowed, retryAfter := s.submitLimiter.Allow("submit-" + clientIP); !allowed {
		return nil, domain.NewRateLimitError(retryAfter)
	}

	if errs := s.validator.ValidateSubmitDetails(req); len(errs) > 0 {
		return nil, errs
	}

	now := s.now().UTC()
	sub := &domain.Submission{
		ID:            util.NewULID(),
		Name:          truncate(strings.TrimSpace(req.Name), maxFieldLength),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         strings.TrimSpace(req.Phone),
		Occupation:    truncate(strings.TrimSpace(req.Occupation), maxFieldLength),
		AgeGroup:      strings.TrimSpace(req.AgeGroup),
		IPAddress:     firstForwardedIP(clientIP),
		QuizTaken:     false,
		SubmittedAt:   now,
		QuizStartedAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		s.logger.Error("failed to insert submission", zap.String("submission_id", sub.ID), zap.Error(err))
		return nil, storeError(err)
	}

	token, err := s.tokens.Mint(sub.ID)
	if err != nil {
		s.logger.Error("failed to mint update token", zap.String("submission_id", sub.ID), zap.Error(err))
		return nil, domain.NewConfigurationError("Server configuration error", err)
	}

	s.logger.Info("submission created",
		zap.String("submission_id", sub.ID),
		zap.String("age_group", sub.AgeGroup))

	return &dto.SubmitDetailsResponse{ID: sub.ID, UpdateToken: token}, nil
}

func (s *submissionService) UpdateResults(ctx context.Context, req *dto.UpdateResultsRequest, clientIP string) (*dto.SubmissionResponse, error) {
	if allowed, retryAfter := s.updateLimiter.Allow("update-" + clientIP); !allowed {
		return nil, domain.NewRateLimitError(retryAfter)
	}

	if req.SubmissionID == "" || req.UpdateToken == "" || req.Results == nil {
		return nil, domain.NewError(domain.CodeMissingField, "Missing required fields", nil)
	}

	if !s.tokens.Verify(req.UpdateToken, req.SubmissionID) {
		return nil, domain.NewUnauthorizedError("Invalid or expired update token")
	}

	if errs := s.validator.ValidateResultsPayload(req.Results); len(errs) > 0 {
		return nil, errs
	}

	existing, err := s.repo.GetSubmissionByID(ctx, req.SubmissionID)
	if err != nil {
		s.logger.Error("failed to load submission", zap.String("submission_id", req.SubmissionID), zap.Error(err))
		return nil, storeError(err)
	}
	if existing == nil {
		return nil, domain.NewSubmissionNotFoundError(req.SubmissionID)
	}
	if existing.QuizTaken {
		// A valid token allows re-submitting results; the later write wins.
		s.logger.Warn("overwriting completed submission results",
			zap.String("submission_id", req.SubmissionID))
	}

	results := &domain.QuizResults{
		Archetype:   domain.Archetype(req.Results.Archetype),
		Percentages: percentagesFromPayload(req.Results.Percentages),
		Answers:     req.Results.AnswersCompact,
		QuizVersion: req.Results.QuizVersion,
	}

	updated, err := s.repo.UpdateSubmissionResults(ctx, req.SubmissionID, results, s.now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewSubmissionNotFoundError(req.SubmissionID)
		}
		s.logger.Error("failed to update submission results", zap.String("submission_id", req.SubmissionID), zap.Error(err))
		return nil, storeError(err)
	}

	if s.sessions != nil {
		s.sessions.ClearAnswers(ctx, req.SubmissionID)
	}

	s.logger.Info("submission results recorded",
		zap.String("submission_id", updated.ID),
		zap.String("archetype", string(updated.Archetype)),
		zap.String("quiz_version", updated.QuizVersion))

	return submissionToResponse(updated), nil
}

func (s *submissionService) SaveSessionAnswers(ctx context.Context, submissionID, updateToken string, answers []*domain.Answer) error {
	if submissionID == "" || updateToken == "" {
		return domain.NewError(domain.CodeMissingField, "Missing required fields", nil)
	}
	if !s.tokens.Verify(updateToken, submissionID) {
		return domain.NewUnauthorizedError("Invalid or expired update token")
	}
	if s.sessions == nil {
		return domain.NewCacheUnavailableError("Session persistence is not available")
	}
	return s.sessions.SaveAnswers(ctx, submissionID, answers)
}

func (s *submissionService) GetSessionAnswers(ctx context.Context, submissionID, updateToken string) ([]*domain.Answer, error) {
	if submissionID == "" || updateToken == "" {
		return nil, domain.NewError(domain.CodeMissingField, "Missing required fields", nil)
	}
	if !s.tokens.Verify(updateToken, submissionID) {
		return nil, domain.NewUnauthorizedError("Invalid or expired update token")
	}
	if s.sessions == nil {
		return nil, domain.NewCacheUnavailableError("Session persistence is not available")
	}
	return s.sessions.GetAnswers(ctx, submissionID)
}

// storeError maps a repository failure to its client-facing error. Only
// connectivity-shaped failures answer 503 "try again"; a query the store
// actively rejected would fail the retry too, so it surfaces as a plain
// server fault.
func storeError(err error) *domain.DomainError {
	if isTransientStoreError(err) {
		return domain.NewStoreUnavailableError(err)
	}
	return domain.NewInternalError("Database error", err)
}

func isTransientStoreError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// firstForwardedIP keeps only the client hop of a comma-separated
// X-Forwarded-For chain.
func firstForwardedIP(ip string) string {
	if idx := strings.Index(ip, ","); idx >= 0 {
		ip = ip[:idx]
	}
	return strings.TrimSpace(ip)
}

func percentagesFromPayload(percentages map[string]int) map[domain.Archetype]int {
	if percentages == nil {
		return nil
	}
	out := make(map[domain.Archetype]int, len(percentages))
	for archetype, pct := range percentages {
		out[domain.Archetype(archetype)] = pct
	}
	return out
}

func submissionToResponse(sub *domain.Submission) *dto.SubmissionResponse {
	resp := &dto.SubmissionResponse{
		ID:              sub.ID,
		Name:            sub.Name,
		Email:           sub.Email,
		Phone:           sub.Phone,
		Occupation:      sub.Occupation,
		AgeGroup:        sub.AgeGroup,
		QuizTaken:       sub.QuizTaken,
		SubmittedAt:     sub.SubmittedAt,
		QuizStartedAt:   sub.QuizStartedAt,
		QuizCompletedAt: sub.QuizCompletedAt,
		Archetype:       string(sub.Archetype),
		AnswersCompact:  sub.Answers,
		QuizVersion:     sub.QuizVersion,
	}
	if sub.Percentages != nil {
		resp.Percentages = make(map[string]int, len(sub.Percentages))
		for archetype, pct := range sub.Percentages {
			resp.Percentages[string(archetype)] = pct
		}
	}
	return resp
}
