package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"riskwizard_backend/internal/feature/auth/domain/entity"
)

// credentialUsecase issues, refreshes and revokes session credentials.
// Refresh tokens are tracked as sessions so that revoking a session blacklists its token.
type credentialUsecase struct {
	signer   TokenSigner
	sessions SessionRepository
	now      func() time.Time
}

var _ CredentialIssuer = (*credentialUsecase)(nil)

// NewCredentialUsecase creates a new credentialUsecase.
func NewCredentialUsecase(signer TokenSigner, sessions SessionRepository) *credentialUsecase {
	return &credentialUsecase{
		signer:   signer,
		sessions: sessions,
		now:      time.Now,
	}
}

// IssueFor mints an access/refresh pair for the user and records the refresh session.
func (u *credentialUsecase) IssueFor(ctx context.Context, user *entity.User, meta entity.SessionMeta) (*entity.Credentials, error) {
	jti := uuid.NewString()
	refresh, expiresAt, err := u.signer.SignRefresh(user.ID, user.Email, jti)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	session := &entity.Session{
		ID:        jti,
		UserID:    user.ID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: u.now().UTC(),
		ExpiresAt: expiresAt,
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	access, err := u.signer.SignAccess(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &entity.Credentials{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh validates a refresh token and returns a new access token.
// Malformed, expired, revoked or unknown tokens all fail with ErrInvalidRefreshToken.
func (u *credentialUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := u.signer.ParseRefresh(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}

	session, err := u.sessions.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return "", fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
		}
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	if !session.IsValid() {
		reason := ErrSessionExpired
		if session.IsRevoked() {
			reason = ErrSessionRevoked
		}
		return "", fmt.Errorf("%w: %w", ErrInvalidRefreshToken, reason)
	}

	access, err := u.signer.SignAccess(claims.UserID, claims.Email)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return access, nil
}

// Revoke blacklists the refresh token so later Refresh calls fail.
func (u *credentialUsecase) Revoke(ctx context.Context, refreshToken string) error {
	claims, err := u.signer.ParseRefresh(refreshToken)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}
	if err := u.sessions.Revoke(ctx, claims.ID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
		}
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
