package middleware

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"auravo-quiz/internal/domain"
	"auravo-quiz/internal/dto"
	"auravo-quiz/internal/logger"
)

// ErrorHandler is the Fiber app-level error handler. Handlers and services
// return domain errors; the mapping to HTTP lives here and nowhere else.
func ErrorHandler(c *fiber.Ctx, err error) error {
	log := logger.Get()

	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false,
			Error:   validationErrs.Error(),
			Errors:  validationErrs,
		})
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		status := statusForCode(domainErr.Code)
		resp := dto.ErrorResponse{Success: false, Error: domainErr.Message}

		if domainErr.Code == domain.CodeRateLimited {
			if retryAfter, ok := domainErr.Context["retry_after"].(int); ok {
				resp.RetryAfter = retryAfter
				c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			}
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("path", c.Path()),
				zap.String("code", string(domainErr.Code)),
				zap.Error(err))
		}
		// Server faults never leak their cause to the client.
		if domainErr.Code == domain.CodeInternal || domainErr.Code == domain.CodeConfiguration {
			resp.Error = "Internal server error"
		}
		return c.Status(status).JSON(resp)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
			Success: false,
			Error:   fiberErr.Message,
		})
	}

	log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Success: false,
		Error:   "Internal server error",
	})
}

// statusFromError resolves the HTTP status ErrorHandler will answer with,
// without writing anything.
func statusFromError(err error) int {
	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusBadRequest
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return statusForCode(domainErr.Code)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeValidation, domain.CodeMissingField:
		return fiber.StatusBadRequest
	case domain.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case domain.CodeNotFound, domain.CodeSubmissionNotFound:
		return fiber.StatusNotFound
	case domain.CodeRateLimited:
		return fiber.StatusTooManyRequests
	case domain.CodeStoreUnavailable, domain.CodeCacheUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
