package model

import "golang.org/x/crypto/bcrypt"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// User represents an authenticated user in the system
type User struct {
	ID       string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Role     Role   `gorm:"type:varchar(20);not null" json:"role" validate:"required,oneof=admin manager"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
}

// IsAdmin reports whether the user carries the elevated role that bypasses
// the transaction mutability window.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
