package domain

import "context"

// ContentRepository defines persistence for content passages and the
// per-user access records that join users to the passage they last read.
type ContentRepository interface {
	// GetLatestPassage returns the most recent passage for (topic, owner),
	// or nil when none exists. ownerID is empty for globally shared topics.
	GetLatestPassage(ctx context.Context, topic, ownerID string) (*ContentPassage, error)

	// SavePassage persists a new passage, assigning its ID and CreatedAt.
	SavePassage(ctx context.Context, passage *ContentPassage) error

	// UpsertAccess records that the user accessed the passage. The record is
	// keyed by (user, topic); a repeated access for the same topic repoints
	// the record at the given passage instead of duplicating it.
	UpsertAccess(ctx context.Context, userID, topic, contentID string) error

	// DeleteAccess removes the user's access record for the topic.
	DeleteAccess(ctx context.Context, userID, topic string) error

	// GetAccessedPassage returns the passage the user's access record for the
	// topic points at, restricted to passages owned by the user or globally
	// shared. Returns nil when the user has no usable record.
	GetAccessedPassage(ctx context.Context, userID, topic string) (*ContentPassage, error)
}

// QuestionRepository defines persistence for a topic's question batch.
type QuestionRepository interface {
	// ReplaceBatch deletes all stored questions for the topic and inserts the
	// given batch, assigning IDs and CreatedAt timestamps.
	ReplaceBatch(ctx context.Context, topic string, questions []*StoredQuestion) error

	// GetQuestionsByTopic returns the topic's current batch ordered by
	// creation time ascending, capped to QuestionsPerQuiz.
	GetQuestionsByTopic(ctx context.Context, topic string) ([]*StoredQuestion, error)
}

// AttemptRepository defines the append-only attempt log.
type AttemptRepository interface {
	SaveAttempt(ctx context.Context, attempt *QuizAttempt) error

	// GetAttemptsByUser returns the user's attempts, newest first.
	GetAttemptsByUser(ctx context.Context, userID string) ([]*QuizAttempt, error)
}

// UserRepository exposes the profile read the pipeline needs.
type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*User, error)
}

// TopicRepository defines persistence for the topic catalog.
type TopicRepository interface {
	GetAllTopics(ctx context.Context) ([]*Topic, error)
	SaveTopic(ctx context.Context, topic *Topic) error
}

// TransactionManager runs a function inside a database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
