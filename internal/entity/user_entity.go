package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

const UsernameMaxLength = 150

// User is the owner of notes. Only the fields the notes and the admin console
// need are carried here.
type User struct {
	Id           uuid.UUID
	Username     string
	Email        string
	FullName     string
	PasswordHash *string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) String() string {
	return u.Username
}

func (u User) IsStaff() bool {
	return u.Role == UserRoleAdmin
}
