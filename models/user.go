package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a pool member
type User struct {
	Email     string    `json:"email" bson:"_id"`
	Username  string    `json:"username" bson:"username"`
	FirstName string    `json:"firstName,omitempty" bson:"first_name,omitempty"`
	LastName  string    `json:"lastName,omitempty" bson:"last_name,omitempty"`
	Password  string    `json:"-" bson:"password"` // Never serialize password in JSON
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// LoginRequest represents login form data
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// NormalizeEmail lowercases and trims an email so it can be used as an identifier
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DisplayName returns the username, falling back to the email
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.Username); name != "" {
		return name
	}
	return u.Email
}

// HashPassword hashes the user's password using bcrypt
func (u *User) HashPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies the provided password against the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// ToSafeUser returns a copy of the user without sensitive fields
func (u *User) ToSafeUser() User {
	return User{
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Member is the part of a user the leaderboard needs
type Member struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// AsMember returns the user's leaderboard identity
func (u *User) AsMember() Member {
	return Member{UserID: u.Email, DisplayName: u.DisplayName()}
}
