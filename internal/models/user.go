package models

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// RoleUser is the role given to new users.
const RoleUser = "USER"

// User is an account record. It is persisted but not wired to any route.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:80;not null" json:"username"`
	PasswordHash string `gorm:"size:200;not null" json:"-"` // Hashed, never exposed in JSON
	Role         string `gorm:"size:20;default:USER" json:"role"`
}

// ErrEmptyPassword is returned by SetPassword for a blank password.
var ErrEmptyPassword = errors.New("password must not be empty")

// SetPassword stores a salted bcrypt hash of password.
func (u *User) SetPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
