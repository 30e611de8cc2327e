package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"auravo-quiz/internal/catalog"
	"auravo-quiz/internal/domain"
	"auravo-quiz/internal/dto"
	"auravo-quiz/internal/service"
)

// QuizHandler exposes the quiz submission flow over HTTP.
type QuizHandler struct {
	service       service.SubmissionService
	activeVersion string
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(svc service.SubmissionService, activeVersion string) *QuizHandler {
	return &QuizHandler{service: svc, activeVersion: activeVersion}
}

// RegisterRoutes mounts the quiz endpoints under /api/quiz.
func (h *QuizHandler) RegisterRoutes(app *fiber.App) {
	quiz := app.Group("/api/quiz")
	quiz.Post("/submit-details", h.SubmitDetails)
	quiz.Post("/update-results", h.UpdateResults)
	quiz.Get("/questions", h.GetQuestions)
	quiz.Put("/sessions/:id/answers", h.SaveSessionAnswers)
	quiz.Get("/sessions/:id/answers", h.GetSessionAnswers)
}

func (h *QuizHandler) SubmitDetails(c *fiber.Ctx) error {
	var req dto.SubmitDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.CodeValidation, "Invalid request body", err)
	}

	resp, err := h.service.SubmitDetails(c.Context(), &req, clientIP(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.APIResponse{Success: true, Data: resp})
}

func (h *QuizHandler) UpdateResults(c *fiber.Ctx) error {
	var req dto.UpdateResultsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.CodeValidation, "Invalid request body", err)
	}

	resp, err := h.service.UpdateResults(c.Context(), &req, clientIP(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.APIResponse{Success: true, Data: resp})
}

func (h *QuizHandler) GetQuestions(c *fiber.Ctx) error {
	return c.JSON(dto.APIResponse{Success: true, Data: dto.QuestionsResponse{
		QuizVersion: h.activeVersion,
		Questions:   catalog.ActiveQuiz(h.activeVersion),
		Archetypes:  domain.ArchetypeProfiles(),
	}})
}

func (h *QuizHandler) SaveSessionAnswers(c *fiber.Ctx) error {
	var req dto.SaveSessionAnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewError(domain.CodeValidation, "Invalid request body", err)
	}

	if err := h.service.SaveSessionAnswers(c.Context(), c.Params("id"), req.UpdateToken, req.Answers); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *QuizHandler) GetSessionAnswers(c *fiber.Ctx) error {
	answers, err := h.service.GetSessionAnswers(c.Context(), c.Params("id"), c.Query("token"))
	if err != nil {
		return err
	}
	if answers == nil {
		return domain.NewError(domain.CodeNotFound, "No saved answers", nil)
	}
	return c.JSON(dto.APIResponse{Success: true, Data: dto.SessionAnswersResponse{Answers: answers}})
}

// clientIP prefers the X-Forwarded-For chain set by the hosting proxy and
// falls back to the socket address.
func clientIP(c *fiber.Ctx) string {
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(forwarded)
	}
	return c.IP()
}
