package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"auravo-quiz/internal/cache"
	"auravo-quiz/internal/domain"
	"auravo-quiz/internal/logger"
)

// sessionAnswersTTL matches the update-token lifetime: a session that can
// no longer be completed has no use for its cached answers.
const sessionAnswersTTL = 24 * time.Hour

// AnswerSessionCache keeps the in-progress answer sheet of a quiz session so
// a reloaded client can resume where it left off. It is best-effort
// persistence on top of the durable submission record.
type AnswerSessionCache struct {
	cache domain.Cache
}

// NewAnswerSessionCache creates a new AnswerSessionCache.
func NewAnswerSessionCache(c domain.Cache) *AnswerSessionCache {
	return &AnswerSessionCache{cache: c}
}

// SaveAnswers stores the current answer sheet for a submission.
func (s *AnswerSessionCache) SaveAnswers(ctx context.Context, submissionID string, answers []*domain.Answer) error {
	payload, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshaling session answers: %w", err)
	}
	key := cache.SessionAnswersKey(submissionID)
	if err := s.cache.Set(ctx, key, string(payload), sessionAnswersTTL); err != nil {
		return domain.NewCacheUnavailableError("failed to save session answers")
	}
	return nil
}

// GetAnswers returns the cached answer sheet, or nil when none exists.
func (s *AnswerSessionCache) GetAnswers(ctx context.Context, submissionID string) ([]*domain.Answer, error) {
	key := cache.SessionAnswersKey(submissionID)
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, nil
		}
		return nil, domain.NewCacheUnavailableError("failed to load session answers")
	}

	var answers []*domain.Answer
	if err := json.Unmarshal([]byte(payload), &answers); err != nil {
		// A corrupt entry is treated as absent; the client starts over.
		logger.Get().Warn("discarding unreadable session answers",
			zap.String("submission_id", submissionID), zap.Error(err))
		return nil, nil
	}
	return answers, nil
}

// ClearAnswers drops the cached answer sheet. Failures are logged, not
// returned; the entry expires on its own.
func (s *AnswerSessionCache) ClearAnswers(ctx context.Context, submissionID string) {
	key := cache.SessionAnswersKey(submissionID)
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Get().Warn("failed to clear session answers",
			zap.String("submission_id", submissionID), zap.Error(err))
	}
}
