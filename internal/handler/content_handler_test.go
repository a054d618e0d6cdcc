package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"studybridge/internal/domain"
	"studybridge/internal/dto"
	"studybridge/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newContentTestApp(svc *MockContentService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewContentHandler(svc)

	learning := app.Group("/api/learning")
	learning.Get("/topics", h.ListTopics)
	learning.Get("/content", middleware.RequireUser(), h.GetContent)
	return app
}

func TestGetContentHandler(t *testing.T) {
	svc := new(MockContentService)
	app := newContentTestApp(svc)

	svc.On("GetOrCreateContent", mock.Anything, "housing", "user-1").Return(&dto.ContentResponse{
		ID:      "p1",
		Topic:   "housing",
		Title:   "Lease Tips",
		Content: "Read before signing.",
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/learning/content?topic=housing", nil)
	req.Header.Set(middleware.UserIDHeader, "user-1")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.ContentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Lease Tips", body.Title)
}

func TestGetContentHandler_MissingTopic(t *testing.T) {
	svc := new(MockContentService)
	app := newContentTestApp(svc)

	svc.On("GetOrCreateContent", mock.Anything, "", "user-1").
		Return(nil, domain.NewInvalidInputError("topic is required"))

	req := httptest.NewRequest(http.MethodGet, "/api/learning/content", nil)
	req.Header.Set(middleware.UserIDHeader, "user-1")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetContentHandler_MissingUserHeader(t *testing.T) {
	svc := new(MockContentService)
	app := newContentTestApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/learning/content?topic=housing", nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "GetOrCreateContent", mock.Anything, mock.Anything, mock.Anything)
}

func TestListTopicsHandler(t *testing.T) {
	svc := new(MockContentService)
	app := newContentTestApp(svc)

	svc.On("ListTopics", mock.Anything).Return([]dto.TopicResponse{
		{ID: "t1", Name: "campus-life", Personalized: true},
		{ID: "t2", Name: "visa-basics"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/learning/topics", nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var topics []dto.TopicResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&topics))
	require.Len(t, topics, 2)
	assert.True(t, topics[0].Personalized)
}
