package usecase

import (
	"context"
	"fmt"

	"riskwizard_backend/internal/feature/auth/domain/entity"
)

// UserUsecase provides read access to the user directory.
type UserUsecase struct {
	users UserRepository
}

// NewUserUsecase creates a new UserUsecase with the given repository.
func NewUserUsecase(users UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

// CurrentUser returns the user identified by an authenticated session.
func (u *UserUsecase) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// ListUsers returns all users, newest first. Only staff users may list.
func (u *UserUsecase) ListUsers(ctx context.Context, requesterID string) ([]entity.User, error) {
	requester, err := u.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("load requester: %w", err)
	}
	if !requester.IsStaff || !requester.IsActive {
		return nil, ErrForbidden
	}
	return u.users.ListAll(ctx)
}
