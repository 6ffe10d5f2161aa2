package entity

import "time"

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash and is never serialized to callers.
type User struct {
	ID        string
	Email     string
	Password  string
	CreatedAt time.Time
}
