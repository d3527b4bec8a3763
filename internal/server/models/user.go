// Package models holds the persisted records of the quiz store.
package models

// User is a quiz participant. Username is the natural key; Password is
// stored as given in the desired-state document.
type User struct {
	ID       int64
	Username string
	Password string
}
