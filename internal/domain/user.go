package domain

import "time"

// User holds the slice of the account profile the learning pipeline consumes.
// Institution is the personalization key for personalized topics; it is empty
// until the user fills in their profile.
type User struct {
	ID          string
	Name        string
	Email       string
	Institution string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
