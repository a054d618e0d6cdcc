package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"studybridge/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllTopics(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewTopicDatabaseAdapter(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "description", "created_at"}).
		AddRow("t1", "campus-life", "Life on campus", now).
		AddRow("t2", "visa-basics", "Visa rules", now)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM topics ORDER BY name ASC`)).
		WillReturnRows(rows)

	topics, err := adapter.GetAllTopics(context.Background())

	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "campus-life", topics[0].Name)
}

func TestSaveTopic_AssignsIDWhenMissing(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	adapter := NewTopicDatabaseAdapter(db)

	topic := &domain.Topic{Name: "housing", Description: "Finding a place"}

	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (name) DO NOTHING`)).
		WithArgs(sqlmock.AnyArg(), "housing", "Finding a place", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := adapter.SaveTopic(context.Background(), topic)

	require.NoError(t, err)
	assert.NotEmpty(t, topic.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
