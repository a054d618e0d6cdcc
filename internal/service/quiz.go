package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"studybridge/internal/config"
	"studybridge/internal/domain"
	"studybridge/internal/dto"
	"studybridge/internal/logger"

	"go.uber.org/zap"
)

// maxGenerationAttempts bounds the retry loop against the text backend.
const maxGenerationAttempts = 5

// DelayFunc suspends the current attempt before a retry. Injected so tests
// never sleep for real.
type DelayFunc func(d time.Duration)

// QuizService defines quiz generation, retrieval, grading, and history.
type QuizService interface {
	GenerateQuiz(ctx context.Context, topic, userID string) (*dto.GenerateQuizResponse, error)
	GetQuiz(ctx context.Context, topic string) (*dto.GenerateQuizResponse, error)
	SubmitQuiz(ctx context.Context, topic, userID string, answers []string) (*dto.QuizResultResponse, error)
	GetAttempts(ctx context.Context, userID string) ([]dto.AttemptResponse, error)
}

// quizService implements QuizService
type quizService struct {
	questionRepo domain.QuestionRepository
	contentRepo  domain.ContentRepository
	userRepo     domain.UserRepository
	attemptRepo  domain.AttemptRepository
	txManager    domain.TransactionManager
	generator    domain.TextGenerator
	cfg          *config.Config
	delay        DelayFunc
}

// NewQuizService creates a new instance of quizService. A nil delay falls
// back to time.Sleep.
func NewQuizService(
	questionRepo domain.QuestionRepository,
	contentRepo domain.ContentRepository,
	userRepo domain.UserRepository,
	attemptRepo domain.AttemptRepository,
	txManager domain.TransactionManager,
	generator domain.TextGenerator,
	cfg *config.Config,
	delay DelayFunc,
) QuizService {
	if delay == nil {
		delay = time.Sleep
	}
	return &quizService{
		questionRepo: questionRepo,
		contentRepo:  contentRepo,
		userRepo:     userRepo,
		attemptRepo:  attemptRepo,
		txManager:    txManager,
		generator:    generator,
		cfg:          cfg,
		delay:        delay,
	}
}

// GenerateQuiz implements QuizService.
//
// When the caller has an access record pointing at a usable passage the
// prompt is grounded in that passage; otherwise questions come from general
// knowledge of the topic. Each attempt's filtered candidates are evaluated
// alone: a batch either yields the full quota or is discarded, valid
// candidates are not accumulated across attempts.
func (s *quizService) GenerateQuiz(ctx context.Context, topic, userID string) (*dto.GenerateQuizResponse, error) {
	if topic == "" {
		return nil, domain.NewInvalidInputError("topic is required")
	}
	if userID == "" {
		return nil, domain.NewInvalidInputError("user ID is required")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load user profile", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("User not found: %s", userID))
	}

	personalized := domain.IsPersonalizedTopic(topic)
	institution := ""
	if personalized {
		institution = user.Institution
	}

	// Once an institution is set, any access record for a personalized topic
	// may still point at pre-personalization content, so it is dropped before
	// the grounding lookup and the next content request regenerates it.
	if personalized && institution != "" {
		if err := s.contentRepo.DeleteAccess(ctx, userID, topic); err != nil {
			return nil, domain.NewInternalError("Failed to reset content access", err)
		}
	}

	passage, err := s.contentRepo.GetAccessedPassage(ctx, userID, topic)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up accessed passage", err)
	}

	var prompt string
	if passage != nil {
		prompt = buildGroundedQuestionPrompt(passage.Body)
	} else {
		prompt = buildGeneralQuestionPrompt(topic, institution)
	}

	log := logger.Get()
	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		valid, genErr := s.generateCandidates(ctx, prompt)
		if genErr != nil {
			if domain.IsQuotaExceeded(genErr) {
				// Quota exhaustion will not clear within the loop's horizon;
				// abort instead of burning the remaining attempts.
				return nil, genErr
			}
			log.Warn("Quiz generation attempt failed",
				zap.String("topic", topic),
				zap.Int("attempt", attempt),
				zap.Error(genErr),
			)
		} else if len(valid) >= domain.QuestionsPerQuiz {
			return s.persistBatch(ctx, topic, valid[:domain.QuestionsPerQuiz])
		} else {
			log.Warn("Quiz generation attempt yielded too few valid questions",
				zap.String("topic", topic),
				zap.Int("attempt", attempt),
				zap.Int("valid", len(valid)),
			)
		}

		if attempt < maxGenerationAttempts {
			s.delay(time.Duration(attempt) * time.Second)
		}
	}

	return nil, domain.NewGenerationFailedError(
		fmt.Sprintf("Could not generate enough valid questions for topic %s", topic), nil)
}

// generateCandidates performs one backend call and returns the candidates
// that survive validation.
func (s *quizService) generateCandidates(ctx context.Context, prompt string) ([]domain.CandidateQuestion, error) {
	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		if domain.IsQuotaSignal(err) {
			return nil, domain.NewQuotaExceededError(err)
		}
		return nil, domain.NewLLMServiceError(err)
	}

	candidates, err := parseCandidateResponse(raw)
	if err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("failed to parse question response: %w", err))
	}

	valid := make([]domain.CandidateQuestion, 0, len(candidates))
	for _, c := range candidates {
		if normalized, ok := domain.NormalizeCandidate(c); ok {
			valid = append(valid, normalized)
		}
	}
	return valid, nil
}

// persistBatch replaces the topic's stored questions with the new batch
// inside a transaction so a concurrent read never observes a partial batch.
func (s *quizService) persistBatch(ctx context.Context, topic string, candidates []domain.CandidateQuestion) (*dto.GenerateQuizResponse, error) {
	questions := make([]*domain.StoredQuestion, 0, len(candidates))
	for _, c := range candidates {
		questions = append(questions, &domain.StoredQuestion{
			Topic:         topic,
			Question:      c.Question,
			Options:       c.Options,
			CorrectAnswer: c.CorrectAnswer,
			Explanation:   c.Explanation,
			Difficulty:    c.Difficulty,
		})
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.questionRepo.ReplaceBatch(txCtx, topic, questions)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to store question batch", err)
	}

	logger.Get().Info("Stored new quiz batch",
		zap.String("topic", topic),
		zap.Int("count", len(questions)),
	)
	return toQuizResponse(topic, questions), nil
}

// GetQuiz implements QuizService
func (s *quizService) GetQuiz(ctx context.Context, topic string) (*dto.GenerateQuizResponse, error) {
	if topic == "" {
		return nil, domain.NewInvalidInputError("topic is required")
	}
	questions, err := s.questionRepo.GetQuestionsByTopic(ctx, topic)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get questions", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewNotFoundError(fmt.Sprintf("No quiz available for topic: %s", topic))
	}
	return toQuizResponse(topic, questions), nil
}

// SubmitQuiz implements QuizService.
//
// Grading is trim-then-exact: submitted answers come from the stored option
// texts, so no case folding or prefix cleanup is applied here.
func (s *quizService) SubmitQuiz(ctx context.Context, topic, userID string, answers []string) (*dto.QuizResultResponse, error) {
	if topic == "" {
		return nil, domain.NewInvalidInputError("topic is required")
	}
	if userID == "" {
		return nil, domain.NewInvalidInputError("user ID is required")
	}

	questions, err := s.questionRepo.GetQuestionsByTopic(ctx, topic)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get questions", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewNotFoundError(fmt.Sprintf("No quiz available for topic: %s", topic))
	}
	if len(answers) != len(questions) {
		return nil, domain.NewAnswerCountMismatchError(len(answers), len(questions))
	}

	score := 0
	results := make([]dto.QuestionResult, 0, len(questions))
	for i, q := range questions {
		submitted := strings.TrimSpace(answers[i])
		correct := submitted == strings.TrimSpace(q.CorrectAnswer)
		if correct {
			score++
		}
		results = append(results, dto.QuestionResult{
			QuestionID:      q.ID,
			Question:        q.Question,
			SubmittedAnswer: answers[i],
			CorrectAnswer:   q.CorrectAnswer,
			Correct:         correct,
			Explanation:     q.Explanation,
		})
	}

	total := len(questions)
	percentage := int(math.Round(float64(score) / float64(total) * 100))

	attempt := domain.NewQuizAttempt(userID, topic, score, total, answers)
	if err := attempt.Validate(); err != nil {
		return nil, err
	}
	if err := s.attemptRepo.SaveAttempt(ctx, attempt); err != nil {
		return nil, domain.NewInternalError("Failed to save quiz attempt", err)
	}

	return &dto.QuizResultResponse{
		Topic:          topic,
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		Results:        results,
	}, nil
}

// GetAttempts implements QuizService
func (s *quizService) GetAttempts(ctx context.Context, userID string) ([]dto.AttemptResponse, error) {
	if userID == "" {
		return nil, domain.NewInvalidInputError("user ID is required")
	}
	attempts, err := s.attemptRepo.GetAttemptsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get attempts", err)
	}

	responses := make([]dto.AttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		responses = append(responses, dto.AttemptResponse{
			ID:             a.ID,
			Topic:          a.Topic,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			CompletedAt:    a.CompletedAt,
		})
	}
	return responses, nil
}

func toQuizResponse(topic string, questions []*domain.StoredQuestion) *dto.GenerateQuizResponse {
	responses := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		responses = append(responses, dto.QuestionResponse{
			ID:         q.ID,
			Question:   q.Question,
			Options:    q.Options,
			Difficulty: q.Difficulty,
		})
	}
	return &dto.GenerateQuizResponse{
		Topic:     topic,
		Questions: responses,
	}
}
