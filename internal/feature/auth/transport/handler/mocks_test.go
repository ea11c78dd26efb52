package handler

import (
	"context"
	"errors"

	"riskwizard_backend/internal/feature/auth/domain/entity"
)

// mockLinkUsecase is a mock implementation of the LinkUsecase interface.
type mockLinkUsecase struct {
	RequestLinkFunc func(ctx context.Context, email string) error
	ConfirmFunc     func(ctx context.Context, token string, meta entity.SessionMeta) (*entity.Credentials, error)
}

func (m *mockLinkUsecase) RequestLink(ctx context.Context, email string) error {
	if m.RequestLinkFunc != nil {
		return m.RequestLinkFunc(ctx, email)
	}
	return nil
}

func (m *mockLinkUsecase) Confirm(ctx context.Context, token string, meta entity.SessionMeta) (*entity.Credentials, error) {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, token, meta)
	}
	return nil, errors.New("confirm not configured")
}

// mockCredentialUsecase is a mock implementation of the CredentialUsecase interface.
type mockCredentialUsecase struct {
	RefreshFunc func(ctx context.Context, refreshToken string) (string, error)
	RevokeFunc  func(ctx context.Context, refreshToken string) error
}

func (m *mockCredentialUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return "", errors.New("refresh not configured")
}

func (m *mockCredentialUsecase) Revoke(ctx context.Context, refreshToken string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, refreshToken)
	}
	return nil
}

// mockUserUsecase is a mock implementation of the UserUsecase interface.
type mockUserUsecase struct {
	CurrentUserFunc func(ctx context.Context, userID string) (*entity.User, error)
	ListUsersFunc   func(ctx context.Context, requesterID string) ([]entity.User, error)
}

func (m *mockUserUsecase) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, userID)
	}
	return nil, errors.New("current user not configured")
}

func (m *mockUserUsecase) ListUsers(ctx context.Context, requesterID string) ([]entity.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, requesterID)
	}
	return nil, nil
}
