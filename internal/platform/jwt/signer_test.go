package jwtmw

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestSigner_AccessRoundTrip は署名したアクセストークンが検証でき、クレームが保持されることを検証します。
func TestSigner_AccessRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID string
		email  string
	}{
		{"basic user", "6f1c2a9e-0000-4000-8000-000000000001", "user@example.com"},
		{"user with special email", "u-42", "user+tag@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewSigner("test-secret", time.Hour, 24*time.Hour)
			tokenStr, err := s.SignAccess(tt.userID, tt.email)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			claims, err := s.ParseAccess(tokenStr)
			if err != nil {
				t.Fatalf("failed to parse token: %v", err)
			}
			if claims.UserID != tt.userID {
				t.Errorf("expected sub %q, got %q", tt.userID, claims.UserID)
			}
			if claims.Email != tt.email {
				t.Errorf("expected email %q, got %q", tt.email, claims.Email)
			}
			if claims.TokenType != TokenTypeAccess {
				t.Errorf("expected token type %q, got %q", TokenTypeAccess, claims.TokenType)
			}
		})
	}
}

// TestSigner_RefreshCarriesJTI はリフレッシュトークンに jti と有効期限が正しく入ることを検証します。
func TestSigner_RefreshCarriesJTI(t *testing.T) {
	t.Parallel()

	s := NewSigner("test-secret", time.Hour, 30*24*time.Hour)
	before := time.Now()
	tokenStr, expiresAt, err := s.SignRefresh("u-1", "a@example.com", "jti-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := s.ParseRefresh(tokenStr)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if claims.ID != "jti-123" {
		t.Errorf("expected jti %q, got %q", "jti-123", claims.ID)
	}
	if !claims.ExpiresAt.Equal(expiresAt) {
		t.Errorf("expected exp %v, got %v", expiresAt, claims.ExpiresAt)
	}
	want := before.Add(30 * 24 * time.Hour)
	if d := expiresAt.Sub(want); d < -2*time.Second || d > 2*time.Second {
		t.Errorf("expiry %v too far from %v", expiresAt, want)
	}
}

// TestSigner_TokenTypeMismatch はアクセス/リフレッシュの取り違えが拒否されることを検証します。
func TestSigner_TokenTypeMismatch(t *testing.T) {
	t.Parallel()

	s := NewSigner("test-secret", time.Hour, time.Hour)
	access, _ := s.SignAccess("u-1", "a@example.com")
	refresh, _, _ := s.SignRefresh("u-1", "a@example.com", "jti")

	if _, err := s.ParseRefresh(access); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("expected ErrWrongTokenType, got %v", err)
	}
	if _, err := s.ParseAccess(refresh); !errors.Is(err, ErrWrongTokenType) {
		t.Errorf("expected ErrWrongTokenType, got %v", err)
	}
}

// TestSigner_Rejects は改ざん・期限切れ・別アルゴリズムのトークンが拒否されることを検証します。
func TestSigner_Rejects(t *testing.T) {
	t.Parallel()

	s := NewSigner("test-secret", time.Hour, time.Hour)

	expired := NewSigner("test-secret", time.Hour, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _ := expired.SignAccess("u-1", "a@example.com")

	otherSecret, _ := NewSigner("other-secret", time.Hour, time.Hour).SignAccess("u-1", "a@example.com")

	noneToken, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		TokenType:        TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"},
	}).SignedString([]byte("test-secret"))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"expired", expiredToken},
		{"wrong secret", otherSecret},
		{"alg none", noneToken},
		{"alg HS512", hs512},
		{"missing exp", noExp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := s.ParseAccess(tt.token); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
