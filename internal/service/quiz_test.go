package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"studybridge/internal/config"
	"studybridge/internal/domain"
	"studybridge/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestMain initializes the logger for all tests in this package
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error", Env: "development"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

type quizServiceFixture struct {
	questionRepo *MockQuestionRepository
	contentRepo  *MockContentRepository
	userRepo     *MockUserRepository
	attemptRepo  *MockAttemptRepository
	txManager    *MockTransactionManager
	generator    *MockTextGenerator
	delays       []time.Duration
	service      QuizService
}

func newQuizServiceFixture() *quizServiceFixture {
	f := &quizServiceFixture{
		questionRepo: new(MockQuestionRepository),
		contentRepo:  new(MockContentRepository),
		userRepo:     new(MockUserRepository),
		attemptRepo:  new(MockAttemptRepository),
		txManager:    new(MockTransactionManager),
		generator:    new(MockTextGenerator),
	}
	f.service = NewQuizService(
		f.questionRepo, f.contentRepo, f.userRepo, f.attemptRepo,
		f.txManager, f.generator, &config.Config{},
		func(d time.Duration) { f.delays = append(f.delays, d) },
	)
	return f
}

// validCandidatesJSON builds a backend response of n candidates that all
// pass validation.
func validCandidatesJSON(t *testing.T, n int) string {
	t.Helper()
	candidates := make([]domain.CandidateQuestion, 0, n)
	for i := 0; i < n; i++ {
		candidates = append(candidates, domain.CandidateQuestion{
			Question:      fmt.Sprintf("What should a new student do first about item %d?", i),
			Options:       []string{"Visit the office", "Send an email", "Wait a week", "Call the hotline"},
			CorrectAnswer: "Visit the office",
			Explanation:   "The office handles this directly.",
			Difficulty:    domain.DifficultyBeginner,
		})
	}
	data, err := json.Marshal(candidates)
	require.NoError(t, err)
	return string(data)
}

func TestGenerateQuiz_Success(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	f.userRepo.On("GetUserByID", ctx, "user-1").Return(&domain.User{ID: "user-1", Name: "Mina"}, nil)
	f.contentRepo.On("GetAccessedPassage", ctx, "user-1", "visa-basics").Return(nil, nil)
	f.generator.On("GenerateText", ctx, mock.Anything).Return(validCandidatesJSON(t, 5), nil).Once()
	f.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	f.questionRepo.On("ReplaceBatch", mock.Anything, "visa-basics", mock.MatchedBy(func(qs []*domain.StoredQuestion) bool {
		return len(qs) == domain.QuestionsPerQuiz
	})).Return(nil)

	resp, err := f.service.GenerateQuiz(ctx, "visa-basics", "user-1")

	require.NoError(t, err)
	assert.Equal(t, "visa-basics", resp.Topic)
	assert.Len(t, resp.Questions, domain.QuestionsPerQuiz)
	for _, q := range resp.Questions {
		assert.Len(t, q.Options, domain.OptionsPerQuestion)
	}
	assert.Empty(t, f.delays, "no retry delay after a first-attempt success")
	f.generator.AssertNumberOfCalls(t, "GenerateText", 1)
	f.questionRepo.AssertExpectations(t)
}

func TestGenerateQuiz_TruncatesSurplusCandidates(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	f.userRepo.On("GetUserByID", ctx, "user-1").Return(&domain.User{ID: "user-1"}, nil)
	f.contentRepo.On("GetAccessedPassage", ctx, "user-1", "housing").Return(nil, nil)
	f.generator.On("GenerateText", ctx, mock.Anything).Return(validCandidatesJSON(t, 8), nil)
	f.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)

	var stored []*domain.StoredQuestion
	f.questionRepo.On("ReplaceBatch", mock.Anything, "housing", mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).([]*domain.StoredQuestion)
		}).Return(nil)

	resp, err := f.service.GenerateQuiz(ctx, "housing", "user-1")

	require.NoError(t, err)
	assert.Len(t, resp.Questions, domain.QuestionsPerQuiz)
	assert.Len(t, stored, domain.QuestionsPerQuiz)
}

func TestGenerateQuiz_QuotaAbortsRemainingAttempts(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	f.userRepo.On("GetUserByID", ctx, "user-1").Return(&domain.User{ID: "user-1"}, nil)
	f.contentRepo.On("GetAccessedPassage", ctx, "user-1", "banking-and-finance").Return(nil, nil)
	f.generator.On("GenerateText", ctx, mock.Anything).Return("", errors.New("googleai: 429 Too Many Requests"))

	resp, err := f.service.GenerateQuiz(ctx, "banking-and-finance", "user-1")

	assert.Nil(t, resp)
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrQuotaExceeded, domainErr.Code)
	f.generator.AssertNumberOfCalls(t, "GenerateText", 1)
	assert.Empty(t, f.delays)
	f.questionRepo.AssertNotCalled(t, "ReplaceBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateQuiz_ExhaustsAttemptsWithBackoff(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	f.userRepo.On("GetUserByID", ctx, "user-1").Return(&domain.User{ID: "user-1"}, nil)
	f.contentRepo.On("GetAccessedPassage", ctx, "user-1", "housing").Return(nil, nil)
	// Every attempt yields 3 valid candidates, short of the quota. Partial
	// batches must not carry over between attempts.
	f.generator.On("GenerateText", ctx, mock.Anything).Return(validCandidatesJSON(t, 3), nil)

	resp, err := f.service.GenerateQuiz(ctx, "housing", "user-1")

	assert.Nil(t, resp)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrGenerationFailed, domainErr.Code)
	f.generator.AssertNumberOfCalls(t, "GenerateText", 5)
	assert.Equal(t, []time.Duration{
		1 * time.Second, 2 * time.Second, 3 * time.Second, 4 * time.Second,
	}, f.delays, "linear backoff between attempts, none after the last")
	f.questionRepo.AssertNotCalled(t, "ReplaceBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateQuiz_RetriesAfterMalformedResponse(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	f.userRepo.On("GetUserByID", ctx, "user-1").Return(&domain.User{ID: "user-1"}, nil)
	f.contentRepo.On("GetAccessedPassage", ctx, "user-1", "housing").Return(nil, nil)
	f.generator.On("GenerateText", ctx, mock.Anything).Return("Sure! Here are the questions:", nil).Once()
	f.generator.On("GenerateText", ctx, mock.Anything).Return(validCandidatesJSON(t, 5), nil).Once()
	f.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	f.questionRepo.On("ReplaceBatch", mock.Anything, "housing", mock.Anything).Return(nil)

	resp, err := f.service.GenerateQuiz(ctx, "housing", "user-1")

	require.NoError(t, err)
	assert.Len(t, resp.Questions, domain.QuestionsPerQuiz)
	assert.Equal(t, []time.Duration{1 * time.Second}, f.delays)
}

func TestGenerateQuiz_GroundsPromptInAccessedPassage(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	passage := &domain.ContentPassage{
		ID:    "passage-1",
		Topic: "housing",
		Body:  "Most leases near campus require a guarantor or an extra deposit.",
	}
	f.userRepo.On("GetUserByID", ctx, "user-1").Return(&domain.User{ID: "user-1"}, nil)
	f.contentRepo.On("GetAccessedPassage", ctx, "user-1", "housing").Return(passage, nil)

	var capturedPrompt string
	f.generator.On("GenerateText", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedPrompt = args.String(1)
		}).Return(validCandidatesJSON(t, 5), nil)
	f.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	f.questionRepo.On("ReplaceBatch", mock.Anything, "housing", mock.Anything).Return(nil)

	_, err := f.service.GenerateQuiz(ctx, "housing", "user-1")

	require.NoError(t, err)
	assert.Contains(t, capturedPrompt, passage.Body)
}

func TestGenerateQuiz_PersonalizedTopicResetsAccess(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	f.userRepo.On("GetUserByID", ctx, "user-1").
		Return(&domain.User{ID: "user-1", Institution: "Tokyo Tech"}, nil)
	f.contentRepo.On("DeleteAccess", ctx, "user-1", "campus-life").Return(nil)
	f.contentRepo.On("GetAccessedPassage", ctx, "user-1", "campus-life").Return(nil, nil)

	var capturedPrompt string
	f.generator.On("GenerateText", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			capturedPrompt = args.String(1)
		}).Return(validCandidatesJSON(t, 5), nil)
	f.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	f.questionRepo.On("ReplaceBatch", mock.Anything, "campus-life", mock.Anything).Return(nil)

	_, err := f.service.GenerateQuiz(ctx, "campus-life", "user-1")

	require.NoError(t, err)
	f.contentRepo.AssertCalled(t, "DeleteAccess", ctx, "user-1", "campus-life")
	assert.Contains(t, capturedPrompt, "Tokyo Tech")
}

func TestGenerateQuiz_UnknownUser(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	f.userRepo.On("GetUserByID", ctx, "ghost").Return(nil, nil)

	resp, err := f.service.GenerateQuiz(ctx, "housing", "ghost")

	assert.Nil(t, resp)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrNotFound, domainErr.Code)
	f.generator.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything)
}

func storedBatch(topic string) []*domain.StoredQuestion {
	return []*domain.StoredQuestion{
		{
			ID:            "q1",
			Topic:         topic,
			Question:      "Where do you report an address change?",
			Options:       []string{"City hall", "The airport", "Your landlord", "The embassy"},
			CorrectAnswer: "City hall",
			Explanation:   "Address changes are registered at city hall.",
			Difficulty:    domain.DifficultyBeginner,
		},
		{
			ID:            "q2",
			Topic:         topic,
			Question:      "How long is the usual reporting window?",
			Options:       []string{"14 days", "30 days", "90 days", "One year"},
			CorrectAnswer: "14 days",
			Explanation:   "The window is two weeks from moving in.",
			Difficulty:    domain.DifficultyBeginner,
		},
	}
}

func TestSubmitQuiz_GradesAndRecordsAttempt(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	f.questionRepo.On("GetQuestionsByTopic", ctx, "visa-basics").Return(storedBatch("visa-basics"), nil)

	var savedAttempt *domain.QuizAttempt
	f.attemptRepo.On("SaveAttempt", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			savedAttempt = args.Get(1).(*domain.QuizAttempt)
		}).Return(nil)

	// Second answer is wrong; first has surrounding whitespace the grader trims.
	resp, err := f.service.SubmitQuiz(ctx, "visa-basics", "user-1", []string{"  City hall  ", "30 days"})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Score)
	assert.Equal(t, 2, resp.TotalQuestions)
	assert.Equal(t, 50, resp.Percentage)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Correct)
	assert.False(t, resp.Results[1].Correct)
	assert.Equal(t, "City hall", resp.Results[0].CorrectAnswer)
	assert.Equal(t, "The window is two weeks from moving in.", resp.Results[1].Explanation)

	require.NotNil(t, savedAttempt)
	assert.Equal(t, "user-1", savedAttempt.UserID)
	assert.Equal(t, 1, savedAttempt.Score)
	assert.Equal(t, []string{"  City hall  ", "30 days"}, savedAttempt.Answers)
}

func TestSubmitQuiz_CaseSensitiveGrading(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	f.questionRepo.On("GetQuestionsByTopic", ctx, "visa-basics").Return(storedBatch("visa-basics"), nil)
	f.attemptRepo.On("SaveAttempt", ctx, mock.Anything).Return(nil)

	resp, err := f.service.SubmitQuiz(ctx, "visa-basics", "user-1", []string{"city hall", "14 days"})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Score, "case differences are not forgiven")
	assert.False(t, resp.Results[0].Correct)
}

func TestSubmitQuiz_AnswerCountMismatch(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	f.questionRepo.On("GetQuestionsByTopic", ctx, "visa-basics").Return(storedBatch("visa-basics"), nil)

	resp, err := f.service.SubmitQuiz(ctx, "visa-basics", "user-1", []string{"City hall"})

	assert.Nil(t, resp)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrAnswerCountMismatch, domainErr.Code)
	f.attemptRepo.AssertNotCalled(t, "SaveAttempt", mock.Anything, mock.Anything)
}

func TestSubmitQuiz_NoBatchForTopic(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	f.questionRepo.On("GetQuestionsByTopic", ctx, "unknown-topic").Return([]*domain.StoredQuestion{}, nil)

	resp, err := f.service.SubmitQuiz(ctx, "unknown-topic", "user-1", []string{"a"})

	assert.Nil(t, resp)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrNotFound, domainErr.Code)
}

func TestSubmitQuiz_PerfectScore(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	f.questionRepo.On("GetQuestionsByTopic", ctx, "visa-basics").Return(storedBatch("visa-basics"), nil)
	f.attemptRepo.On("SaveAttempt", ctx, mock.Anything).Return(nil)

	resp, err := f.service.SubmitQuiz(ctx, "visa-basics", "user-1", []string{"City hall", "14 days"})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Score)
	assert.Equal(t, 100, resp.Percentage)
}

func TestGetQuiz_ReturnsStoredBatchWithoutAnswers(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	f.questionRepo.On("GetQuestionsByTopic", ctx, "visa-basics").Return(storedBatch("visa-basics"), nil)

	resp, err := f.service.GetQuiz(ctx, "visa-basics")

	require.NoError(t, err)
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, "q1", resp.Questions[0].ID)
	assert.Equal(t, []string{"City hall", "The airport", "Your landlord", "The embassy"}, resp.Questions[0].Options)
}

func TestGetAttempts(t *testing.T) {
	f := newQuizServiceFixture()
	ctx := context.Background()

	now := time.Now()
	f.attemptRepo.On("GetAttemptsByUser", ctx, "user-1").Return([]*domain.QuizAttempt{
		{ID: "a2", Topic: "housing", Score: 4, TotalQuestions: 5, CompletedAt: now},
		{ID: "a1", Topic: "housing", Score: 2, TotalQuestions: 5, CompletedAt: now.Add(-time.Hour)},
	}, nil)

	resp, err := f.service.GetAttempts(ctx, "user-1")

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "a2", resp[0].ID)
	assert.Equal(t, 4, resp[0].Score)
}
