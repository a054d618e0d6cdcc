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

// TopicDatabaseAdapter implements domain.TopicRepository using sqlx.
type TopicDatabaseAdapter struct {
	db *sqlx.DB
}

// NewTopicDatabaseAdapter creates a new instance of TopicDatabaseAdapter
func NewTopicDatabaseAdapter(db *sqlx.DB) domain.TopicRepository {
	return &TopicDatabaseAdapter{db: db}
}

// GetAllTopics implements domain.TopicRepository
func (a *TopicDatabaseAdapter) GetAllTopics(ctx context.Context) ([]*domain.Topic, error) {
	var modelTopics []*models.Topic
	query := `SELECT id, name, description, created_at FROM topics ORDER BY name ASC`

	err := a.db.SelectContext(ctx, &modelTopics, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get topics: %w", err)
	}

	topics := make([]*domain.Topic, 0, len(modelTopics))
	for _, m := range modelTopics {
		topics = append(topics, &domain.Topic{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			CreatedAt:   m.CreatedAt,
		})
	}
	return topics, nil
}

// SaveTopic implements domain.TopicRepository. Seeding is idempotent: an
// existing name is left untouched.
func (a *TopicDatabaseAdapter) SaveTopic(ctx context.Context, topic *domain.Topic) error {
	if topic == nil {
		return fmt.Errorf("cannot save nil topic")
	}
	if topic.ID == "" {
		topic.ID = util.NewULID()
	}
	if topic.CreatedAt.IsZero() {
		topic.CreatedAt = time.Now()
	}

	query := `INSERT INTO topics (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING`

	_, err := a.db.ExecContext(ctx, query, topic.ID, topic.Name, topic.Description, topic.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save topic: %w", err)
	}
	return nil
}
