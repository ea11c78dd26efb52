package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"riskwizard_backend/internal/feature/auth/domain/entity"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrWrongTokenType = errors.New("wrong token type")

// Claims は発行するJWTのペイロードです。sub にユーザーID、jti にトークンIDを格納します。
type Claims struct {
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Signer はHS256でアクセス/リフレッシュトークンを署名・検証します。
type Signer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewSigner creates a Signer with the given secret and token lifetimes.
func NewSigner(secret string, accessTTL, refreshTTL time.Duration) *Signer {
	return &Signer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// SignAccess creates a short-lived access token.
func (s *Signer) SignAccess(userID, email string) (string, error) {
	token, _, err := s.sign(userID, email, TokenTypeAccess, "", s.accessTTL)
	return token, err
}

// SignRefresh creates a refresh token carrying jti and returns its expiry.
func (s *Signer) SignRefresh(userID, email, jti string) (string, time.Time, error) {
	return s.sign(userID, email, TokenTypeRefresh, jti, s.refreshTTL)
}

func (s *Signer) sign(userID, email, tokenType, jti string, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl).Truncate(time.Second)
	claims := Claims{
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt.UTC(), nil
}

// ParseAccess verifies an access token.
func (s *Signer) ParseAccess(tokenStr string) (*entity.TokenClaims, error) {
	return s.parse(tokenStr, TokenTypeAccess)
}

// ParseRefresh verifies a refresh token.
func (s *Signer) ParseRefresh(tokenStr string) (*entity.TokenClaims, error) {
	return s.parse(tokenStr, TokenTypeRefresh)
}

func (s *Signer) parse(tokenStr, want string) (*entity.TokenClaims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if claims.TokenType != want {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrWrongTokenType, claims.TokenType, want)
	}

	out := &entity.TokenClaims{
		ID:        claims.ID,
		UserID:    claims.Subject,
		Email:     claims.Email,
		TokenType: claims.TokenType,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return out, nil
}
