package service

import (
	"context"
	"time"

	"studybridge/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockContentRepository ---
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) GetLatestPassage(ctx context.Context, topic, ownerID string) (*domain.ContentPassage, error) {
	args := m.Called(ctx, topic, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContentPassage), args.Error(1)
}

func (m *MockContentRepository) SavePassage(ctx context.Context, passage *domain.ContentPassage) error {
	args := m.Called(ctx, passage)
	return args.Error(0)
}

func (m *MockContentRepository) UpsertAccess(ctx context.Context, userID, topic, contentID string) error {
	args := m.Called(ctx, userID, topic, contentID)
	return args.Error(0)
}

func (m *MockContentRepository) DeleteAccess(ctx context.Context, userID, topic string) error {
	args := m.Called(ctx, userID, topic)
	return args.Error(0)
}

func (m *MockContentRepository) GetAccessedPassage(ctx context.Context, userID, topic string) (*domain.ContentPassage, error) {
	args := m.Called(ctx, userID, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContentPassage), args.Error(1)
}

// --- MockQuestionRepository ---
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) ReplaceBatch(ctx context.Context, topic string, questions []*domain.StoredQuestion) error {
	args := m.Called(ctx, topic, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetQuestionsByTopic(ctx context.Context, topic string) ([]*domain.StoredQuestion, error) {
	args := m.Called(ctx, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StoredQuestion), args.Error(1)
}

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) SaveAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetAttemptsByUser(ctx context.Context, userID string) ([]*domain.QuizAttempt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizAttempt), args.Error(1)
}

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- MockTopicRepository ---
type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) GetAllTopics(ctx context.Context) ([]*domain.Topic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Topic), args.Error(1)
}

func (m *MockTopicRepository) SaveTopic(ctx context.Context, topic *domain.Topic) error {
	args := m.Called(ctx, topic)
	return args.Error(0)
}

// --- MockTextGenerator ---
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
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

// --- MockTransactionManager ---
// WithTransaction runs the callback with the bare context; transactional
// behavior itself is covered by the repository tests.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
