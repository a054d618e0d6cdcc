package dto

import "time"

// ContentResponse represents a learning passage in the API response
// @Description Learning content for a topic
type ContentResponse struct {
	ID           string    `json:"id"`
	Topic        string    `json:"topic"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Difficulty   string    `json:"difficulty"`
	Personalized bool      `json:"personalized"`
	CreatedAt    time.Time `json:"created_at"`
}

// TopicResponse represents a catalog topic in the API response
type TopicResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Personalized bool   `json:"personalized"`
}

// GenerateQuizRequest is the request body for quiz generation
// @Description Request body for generating a new quiz batch
type GenerateQuizRequest struct {
	Topic string `json:"topic"`
}

// QuestionResponse represents a stored question for quiz-taking.
// Correct answers and explanations are withheld until submission.
type QuestionResponse struct {
	ID         string   `json:"id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
}

// GenerateQuizResponse contains the freshly generated question batch
type GenerateQuizResponse struct {
	Topic     string             `json:"topic"`
	Questions []QuestionResponse `json:"questions"`
}

// SubmitQuizRequest is the request body for quiz submission
// @Description Request body for submitting quiz answers
type SubmitQuizRequest struct {
	Topic   string   `json:"topic"`
	Answers []string `json:"answers"`
}

// QuestionResult is the per-question grading breakdown
type QuestionResult struct {
	QuestionID      string `json:"question_id"`
	Question        string `json:"question"`
	SubmittedAnswer string `json:"submitted_answer"`
	CorrectAnswer   string `json:"correct_answer"`
	Correct         bool   `json:"correct"`
	Explanation     string `json:"explanation"`
}

// QuizResultResponse represents the graded submission
type QuizResultResponse struct {
	Topic          string           `json:"topic"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	Percentage     int              `json:"percentage"`
	Results        []QuestionResult `json:"results"`
}

// AttemptResponse represents a historical quiz attempt
type AttemptResponse struct {
	ID             string    `json:"id"`
	Topic          string    `json:"topic"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
