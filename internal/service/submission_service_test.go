package service

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"auravo-quiz/internal/domain"
	"auravo-quiz/internal/dto"
)

type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) CreateSubmission(ctx context.Context, sub *domain.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetSubmissionByID(ctx context.Context, id string) (*domain.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) UpdateSubmissionResults(ctx context.Context, id string, results *domain.QuizResults, completedAt time.Time) (*domain.Submission, error) {
	args := m.Called(ctx, id, results, completedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Mint(submissionID string) (string, error) {
	args := m.Called(submissionID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(token, submissionID string) bool {
	args := m.Called(token, submissionID)
	return args.Bool(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// stubLimiter always answers the same way; the window logic has its own tests.
type stubLimiter struct {
	allowed    bool
	retryAfter int
}

func (s stubLimiter) Allow(key string) (bool, int) {
	return s.allowed, s.retryAfter
}

type serviceFixture struct {
	repo    *MockSubmissionRepository
	tokens  *MockTokenService
	cache   *MockCache
	service SubmissionService
}

func newServiceFixture(t *testing.T, submitLimiter, updateLimiter stubLimiter) *serviceFixture {
	t.Helper()
	repo := new(MockSubmissionRepository)
	tokens := new(MockTokenService)
	cacheMock := new(MockCache)
	svc := NewSubmissionService(
		repo, tokens, NewAnswerSessionCache(cacheMock),
		submitLimiter, updateLimiter, zap.NewNop(),
	)
	return &serviceFixture{repo: repo, tokens: tokens, cache: cacheMock, service: svc}
}

func allowAll() (stubLimiter, stubLimiter) {
	return stubLimiter{allowed: true}, stubLimiter{allowed: true}
}

func validDetails() *dto.SubmitDetailsRequest {
	return &dto.SubmitDetailsRequest{
		Name:       "  Jane Doe  ",
		Email:      "JANE@Example.com",
		Phone:      "0123456789",
		Occupation: " Teacher ",
		AgeGroup:   "25-34",
	}
}

func TestSubmitDetails(t *testing.T) {
	t.Run("CreatesRecordAndMintsToken", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)

		var created *domain.Submission
		f.repo.On("CreateSubmission", mock.Anything, mock.AnythingOfType("*domain.Submission")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*domain.Submission)
			}).Return(nil)
		f.tokens.On("Mint", mock.AnythingOfType("string")).Return("token-abc", nil)

		resp, err := f.service.SubmitDetails(context.Background(), validDetails(), "203.0.113.7, 10.0.0.1")
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "token-abc", resp.UpdateToken)

		require.NotNil(t, created)
		assert.Equal(t, resp.ID, created.ID)
		assert.Equal(t, "Jane Doe", created.Name)
		assert.Equal(t, "jane@example.com", created.Email)
		assert.Equal(t, "Teacher", created.Occupation)
		assert.Equal(t, "203.0.113.7", created.IPAddress)
		assert.False(t, created.QuizTaken)
		assert.False(t, created.SubmittedAt.IsZero())
		f.repo.AssertExpectations(t)
		f.tokens.AssertExpectations(t)
	})

	t.Run("RateLimited", func(t *testing.T) {
		f := newServiceFixture(t, stubLimiter{allowed: false, retryAfter: 42}, stubLimiter{allowed: true})

		_, err := f.service.SubmitDetails(context.Background(), validDetails(), "203.0.113.7")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeRateLimited, domainErr.Code)
		assert.Equal(t, 42, domainErr.Context["retry_after"])
		f.repo.AssertNotCalled(t, "CreateSubmission", mock.Anything, mock.Anything)
	})

	t.Run("InvalidDetailsSkipStore", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)

		req := validDetails()
		req.Email = "not-an-email"
		_, err := f.service.SubmitDetails(context.Background(), req, "203.0.113.7")
		var validationErrs domain.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		assert.Len(t, validationErrs, 1)
		assert.Equal(t, "email", validationErrs[0].Field)
		f.repo.AssertNotCalled(t, "CreateSubmission", mock.Anything, mock.Anything)
	})

	t.Run("StoreUnreachable", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)

		dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
		f.repo.On("CreateSubmission", mock.Anything, mock.Anything).Return(dialErr)

		_, err := f.service.SubmitDetails(context.Background(), validDetails(), "203.0.113.7")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeStoreUnavailable, domainErr.Code)
	})

	t.Run("StoreRejectionIsNotRetryable", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)

		f.repo.On("CreateSubmission", mock.Anything, mock.Anything).
			Return(errors.New("duplicate key value violates unique constraint"))

		_, err := f.service.SubmitDetails(context.Background(), validDetails(), "203.0.113.7")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInternal, domainErr.Code)
	})

	t.Run("MintFailureIsConfigurationError", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)

		f.repo.On("CreateSubmission", mock.Anything, mock.Anything).Return(nil)
		f.tokens.On("Mint", mock.Anything).Return("", ErrTokenSecretMissing)

		_, err := f.service.SubmitDetails(context.Background(), validDetails(), "203.0.113.7")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeConfiguration, domainErr.Code)
	})
}

func validResultsRequest() *dto.UpdateResultsRequest {
	return &dto.UpdateResultsRequest{
		SubmissionID: "01JWMT5S8N0000000000000000",
		UpdateToken:  "token-abc",
		Results: &dto.QuizResultsPayload{
			Archetype:   "Connector",
			Percentages: map[string]int{"Connector": 48, "Analyst": 30},
			AnswersCompact: &domain.CompactAnswers{
				QuizVersion: "v1",
				Selections:  []domain.AnswerSelection{{Q: 1, I: 1, A: "Connector"}},
			},
			QuizVersion: "v1",
		},
	}
}

func pendingSubmission(id string) *domain.Submission {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Submission{
		ID:            id,
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "0123456789",
		Occupation:    "Teacher",
		AgeGroup:      "25-34",
		SubmittedAt:   now,
		QuizStartedAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestUpdateResults(t *testing.T) {
	t.Run("AttachesResults", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)
		req := validResultsRequest()

		completed := pendingSubmission(req.SubmissionID)
		completedAt := time.Date(2025, 6, 1, 10, 5, 0, 0, time.UTC)
		completed.QuizTaken = true
		completed.QuizCompletedAt = &completedAt
		completed.Archetype = domain.ArchetypeConnector
		completed.Percentages = map[domain.Archetype]int{domain.ArchetypeConnector: 48, domain.ArchetypeAnalyst: 30}
		completed.QuizVersion = "v1"

		f.tokens.On("Verify", req.UpdateToken, req.SubmissionID).Return(true)
		f.repo.On("GetSubmissionByID", mock.Anything, req.SubmissionID).Return(pendingSubmission(req.SubmissionID), nil)
		f.repo.On("UpdateSubmissionResults", mock.Anything, req.SubmissionID, mock.AnythingOfType("*domain.QuizResults"), mock.AnythingOfType("time.Time")).
			Return(completed, nil)
		f.cache.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)

		resp, err := f.service.UpdateResults(context.Background(), req, "203.0.113.7")
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.True(t, resp.QuizTaken)
		assert.Equal(t, "Connector", resp.Archetype)
		assert.Equal(t, 48, resp.Percentages["Connector"])
		require.NotNil(t, resp.QuizCompletedAt)
		f.repo.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})

	t.Run("MissingFields", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)

		req := validResultsRequest()
		req.UpdateToken = ""
		_, err := f.service.UpdateResults(context.Background(), req, "203.0.113.7")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeMissingField, domainErr.Code)
		f.tokens.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("MissingResultsBeatsTokenCheck", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)

		// Even with a token that would fail verification, an absent results
		// payload is a missing field, not an authorization failure.
		req := validResultsRequest()
		req.UpdateToken = "not-a-valid-token"
		req.Results = nil
		_, err := f.service.UpdateResults(context.Background(), req, "203.0.113.7")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeMissingField, domainErr.Code)
		f.tokens.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)
		req := validResultsRequest()

		f.tokens.On("Verify", req.UpdateToken, req.SubmissionID).Return(false)

		_, err := f.service.UpdateResults(context.Background(), req, "203.0.113.7")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
		f.repo.AssertNotCalled(t, "GetSubmissionByID", mock.Anything, mock.Anything)
	})

	t.Run("InvalidResultsShape", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)
		req := validResultsRequest()
		req.Results = &dto.QuizResultsPayload{}

		f.tokens.On("Verify", req.UpdateToken, req.SubmissionID).Return(true)

		_, err := f.service.UpdateResults(context.Background(), req, "203.0.113.7")
		var validationErrs domain.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		assert.Len(t, validationErrs, 3)
		f.repo.AssertNotCalled(t, "UpdateSubmissionResults", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownSubmission", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)
		req := validResultsRequest()

		f.tokens.On("Verify", req.UpdateToken, req.SubmissionID).Return(true)
		f.repo.On("GetSubmissionByID", mock.Anything, req.SubmissionID).Return(nil, nil)

		_, err := f.service.UpdateResults(context.Background(), req, "203.0.113.7")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeSubmissionNotFound, domainErr.Code)
	})

	t.Run("RecordDeletedBetweenCheckAndUpdate", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)
		req := validResultsRequest()

		f.tokens.On("Verify", req.UpdateToken, req.SubmissionID).Return(true)
		f.repo.On("GetSubmissionByID", mock.Anything, req.SubmissionID).Return(pendingSubmission(req.SubmissionID), nil)
		f.repo.On("UpdateSubmissionResults", mock.Anything, req.SubmissionID, mock.Anything, mock.Anything).
			Return(nil, sql.ErrNoRows)

		_, err := f.service.UpdateResults(context.Background(), req, "203.0.113.7")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeSubmissionNotFound, domainErr.Code)
	})

	t.Run("RateLimited", func(t *testing.T) {
		f := newServiceFixture(t, stubLimiter{allowed: true}, stubLimiter{allowed: false, retryAfter: 17})

		_, err := f.service.UpdateResults(context.Background(), validResultsRequest(), "203.0.113.7")
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeRateLimited, domainErr.Code)
		assert.Equal(t, 17, domainErr.Context["retry_after"])
	})
}

func TestSessionAnswers(t *testing.T) {
	answers := []*domain.Answer{
		{QuestionID: 1, OptionIndex: 0, Archetype: domain.ArchetypeAnalyst},
		nil,
		{QuestionID: 3, OptionIndex: 2, Archetype: domain.ArchetypeLeader},
	}

	t.Run("SaveRequiresValidToken", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)

		f.tokens.On("Verify", "bad", "sub-1").Return(false)

		err := f.service.SaveSessionAnswers(context.Background(), "sub-1", "bad", answers)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
		f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SaveAndLoadRoundTrip", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)

		f.tokens.On("Verify", "token-abc", "sub-1").Return(true)

		var stored string
		f.cache.On("Set", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), sessionAnswersTTL).
			Run(func(args mock.Arguments) {
				stored = args.String(2)
			}).Return(nil)

		require.NoError(t, f.service.SaveSessionAnswers(context.Background(), "sub-1", "token-abc", answers))

		f.cache.On("Get", mock.Anything, mock.AnythingOfType("string")).Return(stored, nil)

		loaded, err := f.service.GetSessionAnswers(context.Background(), "sub-1", "token-abc")
		require.NoError(t, err)
		require.Len(t, loaded, 3)
		assert.Nil(t, loaded[1])
		assert.Equal(t, domain.ArchetypeLeader, loaded[2].Archetype)
	})

	t.Run("LoadMissReturnsNil", func(t *testing.T) {
		submit, update := allowAll()
		f := newServiceFixture(t, submit, update)

		f.tokens.On("Verify", "token-abc", "sub-1").Return(true)
		f.cache.On("Get", mock.Anything, mock.AnythingOfType("string")).Return("", domain.ErrCacheMiss)

		loaded, err := f.service.GetSessionAnswers(context.Background(), "sub-1", "token-abc")
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})
}
