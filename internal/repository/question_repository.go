package repository

import (
	"context"
	"fmt"
	"time"

	"studybridge/internal/domain"
	"studybridge/internal/repository/models"
	"studybridge/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

// ReplaceBatch implements domain.QuestionRepository. It honors an active
// transaction on the context so the delete and the inserts commit together.
func (a *QuestionDatabaseAdapter) ReplaceBatch(ctx context.Context, topic string, questions []*domain.StoredQuestion) error {
	ex := GetExecutor(ctx, a.db)

	if _, err := ex.ExecContext(ctx, `DELETE FROM quiz_questions WHERE topic = $1`, topic); err != nil {
		return fmt.Errorf("failed to delete stored questions for topic %s: %w", topic, err)
	}

	query := `INSERT INTO quiz_questions (id, topic, question, options, correct_answer, explanation, difficulty, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	// Stagger created_at so the batch keeps its insertion order under
	// the created_at ASC read.
	base := time.Now()
	for i, q := range questions {
		m := toModelQuestion(q)
		m.Topic = topic
		m.ID = util.NewULID()
		m.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)

		_, err := ex.ExecContext(ctx, query,
			m.ID, m.Topic, m.Question, m.Options, m.CorrectAnswer, m.Explanation, m.Difficulty, m.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}

		q.ID = m.ID
		q.Topic = m.Topic
		q.CreatedAt = m.CreatedAt
	}
	return nil
}

// GetQuestionsByTopic implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) GetQuestionsByTopic(ctx context.Context, topic string) ([]*domain.StoredQuestion, error) {
	var modelQuestions []*models.QuizQuestion
	query := `SELECT id, topic, question, options, correct_answer, explanation, difficulty, created_at
		FROM quiz_questions
		WHERE topic = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2`

	err := a.db.SelectContext(ctx, &modelQuestions, query, topic, domain.QuestionsPerQuiz)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions for topic %s: %w", topic, err)
	}

	questions := make([]*domain.StoredQuestion, 0, len(modelQuestions))
	for _, m := range modelQuestions {
		questions = append(questions, toDomainQuestion(m))
	}
	return questions, nil
}

func toDomainQuestion(m *models.QuizQuestion) *domain.StoredQuestion {
	if m == nil {
		return nil
	}
	return &domain.StoredQuestion{
		ID:            m.ID,
		Topic:         m.Topic,
		Question:      m.Question,
		Options:       []string(m.Options),
		CorrectAnswer: m.CorrectAnswer,
		Explanation:   m.Explanation,
		Difficulty:    m.Difficulty,
		CreatedAt:     m.CreatedAt,
	}
}

func toModelQuestion(d *domain.StoredQuestion) *models.QuizQuestion {
	if d == nil {
		return nil
	}
	return &models.QuizQuestion{
		ID:            d.ID,
		Topic:         d.Topic,
		Question:      d.Question,
		Options:       models.StringSlice(d.Options),
		CorrectAnswer: d.CorrectAnswer,
		Explanation:   d.Explanation,
		Difficulty:    d.Difficulty,
		CreatedAt:     d.CreatedAt,
	}
}
