package models

import "time"

// Answer is a user's free-text response to a question. At most one exists
// per (QuestionID, UserID).
type Answer struct {
	ID         int64
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	QuestionID int64
	UserID     int64
}
