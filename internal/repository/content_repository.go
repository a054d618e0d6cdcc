package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"studybridge/internal/domain"
	"studybridge/internal/repository/models"
	"studybridge/internal/util"

	"github.com/jmoiron/sqlx"
)

// ContentDatabaseAdapter implements domain.ContentRepository using sqlx.
type ContentDatabaseAdapter struct {
	db *sqlx.DB
}

// NewContentDatabaseAdapter creates a new instance of ContentDatabaseAdapter
func NewContentDatabaseAdapter(db *sqlx.DB) domain.ContentRepository {
	return &ContentDatabaseAdapter{db: db}
}

const passageColumns = `id, topic, owner_id, title, body, difficulty, created_at`

// GetLatestPassage implements domain.ContentRepository
func (a *ContentDatabaseAdapter) GetLatestPassage(ctx context.Context, topic, ownerID string) (*domain.ContentPassage, error) {
	var m models.ContentPassage
	var err error
	if ownerID == "" {
		query := `SELECT ` + passageColumns + `
			FROM content_passages
			WHERE topic = $1 AND owner_id IS NULL
			ORDER BY created_at DESC
			LIMIT 1`
		err = a.db.GetContext(ctx, &m, query, topic)
	} else {
		query := `SELECT ` + passageColumns + `
			FROM content_passages
			WHERE topic = $1 AND owner_id = $2
			ORDER BY created_at DESC
			LIMIT 1`
		err = a.db.GetContext(ctx, &m, query, topic, ownerID)
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest passage for topic %s: %w", topic, err)
	}
	return toDomainPassage(&m), nil
}

// SavePassage implements domain.ContentRepository
func (a *ContentDatabaseAdapter) SavePassage(ctx context.Context, passage *domain.ContentPassage) error {
	if passage == nil {
		return fmt.Errorf("cannot save nil passage")
	}
	m := toModelPassage(passage)
	m.ID = util.NewULID()
	m.CreatedAt = time.Now()

	query := `INSERT INTO content_passages (id, topic, owner_id, title, body, difficulty, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := a.db.ExecContext(ctx, query,
		m.ID, m.Topic, m.OwnerID, m.Title, m.Body, m.Difficulty, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save passage: %w", err)
	}

	passage.ID = m.ID
	passage.CreatedAt = m.CreatedAt
	return nil
}

// UpsertAccess implements domain.ContentRepository. The (user_id, topic)
// unique constraint makes repeated accesses idempotent; a conflict repoints
// the record at the latest passage.
func (a *ContentDatabaseAdapter) UpsertAccess(ctx context.Context, userID, topic, contentID string) error {
	query := `INSERT INTO content_access (id, user_id, topic, content_id, accessed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, topic)
		DO UPDATE SET content_id = EXCLUDED.content_id, accessed_at = EXCLUDED.accessed_at`

	_, err := a.db.ExecContext(ctx, query, util.NewULID(), userID, topic, contentID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert content access: %w", err)
	}
	return nil
}

// DeleteAccess implements domain.ContentRepository
func (a *ContentDatabaseAdapter) DeleteAccess(ctx context.Context, userID, topic string) error {
	query := `DELETE FROM content_access WHERE user_id = $1 AND topic = $2`
	_, err := a.db.ExecContext(ctx, query, userID, topic)
	if err != nil {
		return fmt.Errorf("failed to delete content access: %w", err)
	}
	return nil
}

// GetAccessedPassage implements domain.ContentRepository
func (a *ContentDatabaseAdapter) GetAccessedPassage(ctx context.Context, userID, topic string) (*domain.ContentPassage, error) {
	var m models.ContentPassage
	query := `SELECT p.id, p.topic, p.owner_id, p.title, p.body, p.difficulty, p.created_at
		FROM content_passages p
		JOIN content_access a ON a.content_id = p.id
		WHERE a.user_id = $1 AND a.topic = $2
		AND (p.owner_id IS NULL OR p.owner_id = $1)
		LIMIT 1`

	err := a.db.GetContext(ctx, &m, query, userID, topic)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get accessed passage for topic %s: %w", topic, err)
	}
	return toDomainPassage(&m), nil
}

func toDomainPassage(m *models.ContentPassage) *domain.ContentPassage {
	if m == nil {
		return nil
	}
	return &domain.ContentPassage{
		ID:         m.ID,
		Topic:      m.Topic,
		OwnerID:    m.OwnerID.String,
		Title:      m.Title,
		Body:       m.Body,
		Difficulty: m.Difficulty,
		CreatedAt:  m.CreatedAt,
	}
}

func toModelPassage(d *domain.ContentPassage) *models.ContentPassage {
	if d == nil {
		return nil
	}
	return &models.ContentPassage{
		ID:         d.ID,
		Topic:      d.Topic,
		OwnerID:    util.StringToNullString(d.OwnerID),
		Title:      d.Title,
		Body:       d.Body,
		Difficulty: d.Difficulty,
		CreatedAt:  d.CreatedAt,
	}
}
