package domain

import "time"

// RoleRef is the role snapshot embedded in a user record: the role name plus
// the permission set it carried when the user was created or last reassigned.
type RoleRef struct {
	Name        string   `json:"name" bson:"name"`
	Permissions []string `json:"permissions" bson:"permissions"`
}

// User models an account in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Document     string    `json:"document,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	Role         RoleRef   `json:"role"`
	Profile      Profile   `json:"profile"`
}
