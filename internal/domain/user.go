package domain

import "time"

type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	Name         string    `json:"name" dynamodbav:"name"`
	Email        string    `json:"email" dynamodbav:"email"`
	Phone        *string   `json:"phone" dynamodbav:"phone"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	TwoFAEnabled bool      `json:"twoFAEnabled" dynamodbav:"twofa_enabled"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

// HasPassword reports whether the account can log in with a password.
// Rows created through the passwordless register endpoint have no hash.
func (u *User) HasPassword() bool { return u.PasswordHash != "" }

type RegisterRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
}

// UpsertUserRequest is the body of the passwordless /users/register endpoint.
type UpsertUserRequest struct {
	Name  string  `json:"name" validate:"required"`
	Email string  `json:"email" validate:"required,email"`
	Phone *string `json:"phone"`
}

type TwoFARequest struct {
	Enabled bool    `json:"enabled"`
	Phone   *string `json:"phone"`
}
