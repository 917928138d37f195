package domain

import "time"

// User is the domain model for registered accounts. PasswordHash never
// leaves the server.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
