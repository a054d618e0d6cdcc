package handler

import (
	"studybridge/internal/middleware"
	"studybridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler handles learning content HTTP requests
type ContentHandler struct {
	service service.ContentService
}

// NewContentHandler creates a new ContentHandler instance
func NewContentHandler(service service.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// GetContent godoc
// @Summary Get learning content for a topic
// @Description Returns the topic's passage, generating it on first access.
// @Tags learning
// @Accept json
// @Produce json
// @Param topic query string true "Topic identifier"
// @Param X-User-ID header string true "Caller user ID"
// @Success 200 {object} dto.ContentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /learning/content [get]
func (h *ContentHandler) GetContent(c *fiber.Ctx) error {
	topic := c.Query("topic")
	userID := middleware.UserID(c)

	content, err := h.service.GetOrCreateContent(c.Context(), topic, userID)
	if err != nil {
		return err
	}
	return c.JSON(content)
}

// ListTopics godoc
// @Summary List the topic catalog
// @Description Returns all topics with their personalization flags.
// @Tags learning
// @Produce json
// @Success 200 {array} dto.TopicResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /learning/topics [get]
func (h *ContentHandler) ListTopics(c *fiber.Ctx) error {
	topics, err := h.service.ListTopics(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(topics)
}
