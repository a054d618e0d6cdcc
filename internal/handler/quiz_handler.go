package handler

import (
	"studybridge/internal/domain"
	"studybridge/internal/dto"
	"studybridge/internal/middleware"
	"studybridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

// GenerateQuiz godoc
// @Summary Generate a new quiz for a topic
// @Description Replaces the topic's question batch with 5 freshly generated questions.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation request"
// @Param X-User-ID header string true "Caller user ID"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.Topic == "" {
		return domain.NewInvalidInputError("topic is required")
	}

	result, err := h.service.GenerateQuiz(c.Context(), req.Topic, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// GetQuiz godoc
// @Summary Get the current quiz for a topic
// @Description Returns the stored question batch without correct answers.
// @Tags quiz
// @Produce json
// @Param topic query string true "Topic identifier"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	result, err := h.service.GetQuiz(c.Context(), c.Query("topic"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// SubmitQuiz godoc
// @Summary Submit quiz answers for grading
// @Description Grades the submitted answers against the topic's stored batch.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.SubmitQuizRequest true "Submission"
// @Param X-User-ID header string true "Caller user ID"
// @Success 200 {object} dto.QuizResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.Topic == "" {
		return domain.NewInvalidInputError("topic is required")
	}
	if len(req.Answers) == 0 {
		return domain.NewInvalidInputError("answers are required")
	}

	result, err := h.service.SubmitQuiz(c.Context(), req.Topic, middleware.UserID(c), req.Answers)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// GetAttempts godoc
// @Summary Get the caller's quiz attempt history
// @Description Returns attempts newest first.
// @Tags quiz
// @Produce json
// @Param X-User-ID header string true "Caller user ID"
// @Success 200 {array} dto.AttemptResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /quiz/attempts [get]
func (h *QuizHandler) GetAttempts(c *fiber.Ctx) error {
	attempts, err := h.service.GetAttempts(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(attempts)
}
