package domain

import "time"

// QuizAttempt is an append-only record of a graded quiz submission. Rows are
// never mutated after insert.
type QuizAttempt struct {
	ID             string
	UserID         string
	Topic          string
	Score          int
	TotalQuestions int
	Answers        []string // raw submitted answers, index-aligned with the batch
	CompletedAt    time.Time
}

// NewQuizAttempt creates a new QuizAttempt instance
func NewQuizAttempt(userID, topic string, score, total int, answers []string) *QuizAttempt {
	return &QuizAttempt{
		UserID:         userID,
		Topic:          topic,
		Score:          score,
		TotalQuestions: total,
		Answers:        answers,
		CompletedAt:    time.Now(),
	}
}

// Validate validates the attempt
func (a *QuizAttempt) Validate() error {
	if a.UserID == "" {
		return NewInvalidInputError("user ID is required")
	}
	if a.Topic == "" {
		return NewInvalidInputError("topic is required")
	}
	if a.TotalQuestions == 0 {
		return NewInvalidInputError("total questions is required")
	}
	return nil
}
