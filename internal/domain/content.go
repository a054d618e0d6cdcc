package domain

import "time"

// personalizedTopics is the fixed set of topics whose content is generated
// per-user, scoped to the user's institution, instead of shared globally.
var personalizedTopics = map[string]bool{
	"campus-life":            true,
	"academic-support":       true,
	"university-orientation": true,
}

// IsPersonalizedTopic reports whether content for topic is generated per-user.
func IsPersonalizedTopic(topic string) bool {
	return personalizedTopics[topic]
}

// ContentPassage is a generated learning passage for a topic. Global topics
// have no owner and the passage is shared; personalized topics are owned by
// exactly one user. Passages are never edited in place, a regeneration
// inserts a new row that supersedes the old one.
type ContentPassage struct {
	ID         string
	Topic      string
	OwnerID    string // empty for globally shared passages
	Title      string
	Body       string
	Difficulty string
	CreatedAt  time.Time
}

// NewContentPassage creates a new ContentPassage instance
func NewContentPassage(topic, ownerID, title, body, difficulty string) *ContentPassage {
	if difficulty == "" {
		difficulty = DifficultyBeginner
	}
	return &ContentPassage{
		Topic:      topic,
		OwnerID:    ownerID,
		Title:      title,
		Body:       body,
		Difficulty: difficulty,
		CreatedAt:  time.Now(),
	}
}

// Validate validates the passage
func (p *ContentPassage) Validate() error {
	if p.Topic == "" {
		return NewInvalidInputError("topic is required")
	}
	if p.Body == "" {
		return NewInvalidInputError("passage body is required")
	}
	return nil
}

// Topic is a catalog entry naming a subject area. The identifier itself is
// opaque to the pipeline; the catalog only drives the topic listing.
type Topic struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Validate validates the topic
func (t *Topic) Validate() error {
	if t.Name == "" {
		return NewInvalidInputError("name is required")
	}
	return nil
}
