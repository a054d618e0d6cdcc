package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON-encoded text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return fmt.Errorf("StringSlice Scan: unsupported type %T", value)
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// ContentPassage is the database model for the content_passages table.
type ContentPassage struct {
	ID         string         `db:"id"`
	Topic      string         `db:"topic"`
	OwnerID    sql.NullString `db:"owner_id"`
	Title      string         `db:"title"`
	Body       string         `db:"body"`
	Difficulty string         `db:"difficulty"`
	CreatedAt  time.Time      `db:"created_at"`
}

// ContentAccess is the database model for the content_access table.
// (user_id, topic) is unique; content_id is repointed on regeneration.
type ContentAccess struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Topic      string    `db:"topic"`
	ContentID  string    `db:"content_id"`
	AccessedAt time.Time `db:"accessed_at"`
}

// QuizQuestion is the database model for the quiz_questions table.
type QuizQuestion struct {
	ID            string      `db:"id"`
	Topic         string      `db:"topic"`
	Question      string      `db:"question"`
	Options       StringSlice `db:"options"`
	CorrectAnswer string      `db:"correct_answer"`
	Explanation   string      `db:"explanation"`
	Difficulty    string      `db:"difficulty"`
	CreatedAt     time.Time   `db:"created_at"`
}

// QuizAttempt is the database model for the quiz_attempts table.
type QuizAttempt struct {
	ID             string      `db:"id"`
	UserID         string      `db:"user_id"`
	Topic          string      `db:"topic"`
	Score          int         `db:"score"`
	TotalQuestions int         `db:"total_questions"`
	Answers        StringSlice `db:"answers"`
	CompletedAt    time.Time   `db:"completed_at"`
}

// User is the database model for the users table.
type User struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Email       string         `db:"email"`
	Institution sql.NullString `db:"institution"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// Topic is the database model for the topics catalog table.
type Topic struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}
