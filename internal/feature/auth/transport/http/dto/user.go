package dto

import (
	"time"

	"riskwizard_backend/internal/feature/auth/domain/entity"
)

// UserRes is the public representation of a user.
type UserRes struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	IsActive   bool      `json:"is_active"`
	IsStaff    bool      `json:"is_staff"`
	DateJoined time.Time `json:"date_joined"`
}

// SessionRes is the body of /api/auth/session. User is null for anonymous requests.
type SessionRes struct {
	User *UserRes `json:"user"`
}

// NewUserRes converts an entity to its response form.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsActive:   u.IsActive,
		IsStaff:    u.IsStaff,
		DateJoined: u.CreatedAt,
	}
}

// NewUserListRes converts a slice of users.
func NewUserListRes(users []entity.User) []UserRes {
	out := make([]UserRes, 0, len(users))
	for i := range users {
		out = append(out, NewUserRes(&users[i]))
	}
	return out
}
