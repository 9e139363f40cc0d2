package domain

import "time"

// User represents a citizen account. Immutable after creation.
type User struct {
	ID           string
	Name         string
	PasswordHash []byte
	CreatedAt    time.Time
}
