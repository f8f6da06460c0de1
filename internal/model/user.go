// Package model defines the data structures used throughout the application.
package model

// User represents a registered account.
//
// IDs are assigned by the database (INTEGER PRIMARY KEY AUTOINCREMENT),
// so a User with ID 0 has not been persisted yet. Usernames are unique
// — the constraint lives in the schema and violations surface as a
// conflict error from the repository.
type User struct {
	ID       int64  `json:"id"       db:"id"`
	Username string `json:"username" db:"username"`
}
