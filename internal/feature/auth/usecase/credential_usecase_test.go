package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskwizard_backend/internal/feature/auth/domain/entity"
	jwtmw "riskwizard_backend/internal/platform/jwt"
)

func newTestCredentialUsecase(t *testing.T) (*credentialUsecase, *memSessionRepository) {
	t.Helper()

	sessions := newMemSessionRepository()
	signer := jwtmw.NewSigner("credential-test-secret", 240*time.Minute, 30*24*time.Hour)
	return NewCredentialUsecase(signer, sessions), sessions
}

func TestCredentialUsecase_IssueFor(t *testing.T) {
	t.Run("success: issues a pair and records the session", func(t *testing.T) {
		uc, sessions := newTestCredentialUsecase(t)
		user := &entity.User{ID: "u-1", Email: "a@example.com"}

		creds, err := uc.IssueFor(context.Background(), user, entity.SessionMeta{UserAgent: "Mozilla/5.0", IPAddress: "10.0.0.1"})
		require.NoError(t, err)
		assert.NotEqual(t, creds.AccessToken, creds.RefreshToken)

		claims, err := uc.signer.ParseRefresh(creds.RefreshToken)
		require.NoError(t, err)

		session, err := sessions.FindByID(context.Background(), claims.ID)
		require.NoError(t, err)
		assert.Equal(t, "u-1", session.UserID)
		assert.Equal(t, "Mozilla/5.0", session.UserAgent)
		assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), session.ExpiresAt, time.Minute)
	})

	t.Run("failure: session store error", func(t *testing.T) {
		uc, sessions := newTestCredentialUsecase(t)
		sessions.CreateErr = errors.New("redis down")

		_, err := uc.IssueFor(context.Background(), &entity.User{ID: "u-1"}, entity.SessionMeta{})
		assert.Error(t, err)
	})
}

func TestCredentialUsecase_Refresh(t *testing.T) {
	t.Run("success: returns a new access token for the same user", func(t *testing.T) {
		uc, _ := newTestCredentialUsecase(t)
		creds, err := uc.IssueFor(context.Background(), &entity.User{ID: "u-1", Email: "a@example.com"}, entity.SessionMeta{})
		require.NoError(t, err)

		access, err := uc.Refresh(context.Background(), creds.RefreshToken)
		require.NoError(t, err)

		claims, err := uc.signer.ParseAccess(access)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, "a@example.com", claims.Email)
	})

	t.Run("failure: malformed token", func(t *testing.T) {
		uc, _ := newTestCredentialUsecase(t)

		_, err := uc.Refresh(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("failure: access token used as refresh token", func(t *testing.T) {
		uc, _ := newTestCredentialUsecase(t)
		creds, err := uc.IssueFor(context.Background(), &entity.User{ID: "u-1"}, entity.SessionMeta{})
		require.NoError(t, err)

		_, err = uc.Refresh(context.Background(), creds.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("failure: unknown session", func(t *testing.T) {
		uc, _ := newTestCredentialUsecase(t)
		refresh, _, err := uc.signer.SignRefresh("u-1", "a@example.com", "never-stored")
		require.NoError(t, err)

		_, err = uc.Refresh(context.Background(), refresh)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("failure: session past its expiry", func(t *testing.T) {
		uc, sessions := newTestCredentialUsecase(t)
		require.NoError(t, sessions.Create(context.Background(), &entity.Session{
			ID:        "stale-jti",
			UserID:    "u-1",
			ExpiresAt: time.Now().Add(-time.Minute),
		}))
		refresh, _, err := uc.signer.SignRefresh("u-1", "a@example.com", "stale-jti")
		require.NoError(t, err)

		_, err = uc.Refresh(context.Background(), refresh)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("failure: token signed with another secret", func(t *testing.T) {
		uc, _ := newTestCredentialUsecase(t)
		other := jwtmw.NewSigner("other-secret", time.Hour, time.Hour)
		refresh, _, err := other.SignRefresh("u-1", "a@example.com", "jti")
		require.NoError(t, err)

		_, err = uc.Refresh(context.Background(), refresh)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestCredentialUsecase_Revoke(t *testing.T) {
	t.Run("revoked refresh token can no longer refresh", func(t *testing.T) {
		uc, _ := newTestCredentialUsecase(t)
		creds, err := uc.IssueFor(context.Background(), &entity.User{ID: "u-1"}, entity.SessionMeta{})
		require.NoError(t, err)

		require.NoError(t, uc.Revoke(context.Background(), creds.RefreshToken))

		_, err = uc.Refresh(context.Background(), creds.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
		assert.ErrorIs(t, err, ErrSessionRevoked)
	})

	t.Run("revoking garbage fails", func(t *testing.T) {
		uc, _ := newTestCredentialUsecase(t)

		err := uc.Revoke(context.Background(), "garbage")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}
