package domain

import "time"

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // case-normalized, unique
	PasswordHash string // argon2id encoded, never serialized
	Phone        string // optional
	Active       bool
	Staff        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
