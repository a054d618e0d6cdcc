package handler

import (
	"context"

	"studybridge/internal/dto"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizService ---
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context, topic, userID string) (*dto.GenerateQuizResponse, error) {
	args := m.Called(ctx, topic, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GenerateQuizResponse), args.Error(1)
}

func (m *MockQuizService) GetQuiz(ctx context.Context, topic string) (*dto.GenerateQuizResponse, error) {
	args := m.Called(ctx, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GenerateQuizResponse), args.Error(1)
}

func (m *MockQuizService) SubmitQuiz(ctx context.Context, topic, userID string, answers []string) (*dto.QuizResultResponse, error) {
	args := m.Called(ctx, topic, userID, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResultResponse), args.Error(1)
}

func (m *MockQuizService) GetAttempts(ctx context.Context, userID string) ([]dto.AttemptResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AttemptResponse), args.Error(1)
}

// --- MockContentService ---
type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) GetOrCreateContent(ctx context.Context, topic, userID string) (*dto.ContentResponse, error) {
	args := m.Called(ctx, topic, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ContentResponse), args.Error(1)
}

func (m *MockContentService) ListTopics(ctx context.Context) ([]dto.TopicResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.TopicResponse), args.Error(1)
}
