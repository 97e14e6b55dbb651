// Package models holds the server-side persistent entities.
package models

import "time"

// User is a registered identity. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Phone        *string   `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
}
