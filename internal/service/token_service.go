package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"auravo-quiz/internal/config"
	"auravo-quiz/internal/logger"
)

// ErrTokenSecretMissing indicates the signing secret is not configured. This
// is a server misconfiguration, never a user-facing condition.
var ErrTokenSecretMissing = errors.New("update token secret is not configured")

// UpdateTokenService mints and verifies the signed, time-limited tokens that
// authorize attaching results to a specific submission. The token is opaque
// to the client: `submissionId:issuedAtMillis:hexSignature`, where the
// signature is HMAC-SHA256 over `submissionId:issuedAtMillis`.
type UpdateTokenService interface {
	// Mint issues a token bound to submissionID. It fails only when the
	// signing secret is absent.
	Mint(submissionID string) (string, error)

	// Verify reports whether token authorizes updates to submissionID.
	// It never returns an error; any malformed, mismatched, expired or
	// tampered token is simply invalid.
	Verify(token string, submissionID string) bool
}

type hmacTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewUpdateTokenService builds the HMAC-backed token service. It refuses to
// construct without a secret so an unconfigured deployment fails at startup
// rather than signing with an empty key.
func NewUpdateTokenService(cfg config.UpdateTokenConfig) (UpdateTokenService, error) {
	return newUpdateTokenService(cfg, time.Now)
}

func newUpdateTokenService(cfg config.UpdateTokenConfig, now func() time.Time) (UpdateTokenService, error) {
	if cfg.Secret == "" {
		return nil, ErrTokenSecretMissing
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &hmacTokenService{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		now:    now,
	}, nil
}

func (s *hmacTokenService) Mint(submissionID string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenSecretMissing
	}
	issuedAt := s.now().UnixMilli()
	payload := fmt.Sprintf("%s:%d", submissionID, issuedAt)
	return payload + ":" + s.sign(payload), nil
}

func (s *hmacTokenService) Verify(token string, submissionID string) bool {
	if len(s.secret) == 0 {
		logger.Get().Error("update token secret is not configured; rejecting token")
		return false
	}

	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return false
	}
	tokenID, timestamp, signature := parts[0], parts[1], parts[2]

	if tokenID != submissionID {
		return false
	}

	issuedAt, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	if s.now().UnixMilli()-issuedAt > s.ttl.Milliseconds() {
		return false
	}

	expected, err := hex.DecodeString(s.sign(tokenID + ":" + timestamp))
	if err != nil {
		return false
	}
	actual, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	if len(expected) != len(actual) {
		return false
	}
	// Constant-time comparison; signature checks must not leak timing.
	return hmac.Equal(expected, actual)
}

func (s *hmacTokenService) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
