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

// AttemptDatabaseAdapter implements domain.AttemptRepository using sqlx.
// quiz_attempts is an append-only log; there is no update path.
type AttemptDatabaseAdapter struct {
	db *sqlx.DB
}

// NewAttemptDatabaseAdapter creates a new instance of AttemptDatabaseAdapter
func NewAttemptDatabaseAdapter(db *sqlx.DB) domain.AttemptRepository {
	return &AttemptDatabaseAdapter{db: db}
}

// SaveAttempt implements domain.AttemptRepository
func (a *AttemptDatabaseAdapter) SaveAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	if attempt == nil {
		return fmt.Errorf("cannot save nil attempt")
	}
	m := toModelAttempt(attempt)
	m.ID = util.NewULID()
	if m.CompletedAt.IsZero() {
		m.CompletedAt = time.Now()
	}

	query := `INSERT INTO quiz_attempts (id, user_id, topic, score, total_questions, answers, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := a.db.ExecContext(ctx, query,
		m.ID, m.UserID, m.Topic, m.Score, m.TotalQuestions, m.Answers, m.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz attempt: %w", err)
	}

	attempt.ID = m.ID
	attempt.CompletedAt = m.CompletedAt
	return nil
}

// GetAttemptsByUser implements domain.AttemptRepository
func (a *AttemptDatabaseAdapter) GetAttemptsByUser(ctx context.Context, userID string) ([]*domain.QuizAttempt, error) {
	var modelAttempts []*models.QuizAttempt
	query := `SELECT id, user_id, topic, score, total_questions, answers, completed_at
		FROM quiz_attempts
		WHERE user_id = $1
		ORDER BY completed_at DESC`

	err := a.db.SelectContext(ctx, &modelAttempts, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempts for user %s: %w", userID, err)
	}

	attempts := make([]*domain.QuizAttempt, 0, len(modelAttempts))
	for _, m := range modelAttempts {
		attempts = append(attempts, toDomainAttempt(m))
	}
	return attempts, nil
}

func toDomainAttempt(m *models.QuizAttempt) *domain.QuizAttempt {
	if m == nil {
		return nil
	}
	return &domain.QuizAttempt{
		ID:             m.ID,
		UserID:         m.UserID,
		Topic:          m.Topic,
		Score:          m.Score,
		TotalQuestions: m.TotalQuestions,
		Answers:        []string(m.Answers),
		CompletedAt:    m.CompletedAt,
	}
}

func toModelAttempt(d *domain.QuizAttempt) *models.QuizAttempt {
	if d == nil {
		return nil
	}
	return &models.QuizAttempt{
		ID:             d.ID,
		UserID:         d.UserID,
		Topic:          d.Topic,
		Score:          d.Score,
		TotalQuestions: d.TotalQuestions,
		Answers:        models.StringSlice(d.Answers),
		CompletedAt:    d.CompletedAt,
	}
}
