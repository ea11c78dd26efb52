// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrEmailNotAllowed is returned when the address is not on the configured allow-list.
	ErrEmailNotAllowed = errors.New("email is not allowed to sign in")

	// ErrMagicLinkCreation is returned when any step of issuing a magic link fails.
	ErrMagicLinkCreation = errors.New("failed to create magic link")

	// ErrMailDelivery is returned when the mail collaborator could not send the link.
	ErrMailDelivery = errors.New("failed to deliver magic link email")

	// ErrMagicLinkNotFound is returned by the token store when a token does not exist.
	ErrMagicLinkNotFound = errors.New("magic link not found")

	// ErrMagicLinkAlreadyUsed is returned when marking an already consumed token as used.
	ErrMagicLinkAlreadyUsed = errors.New("magic link already used")

	// ErrInvalidToken is returned when a presented magic link token never existed.
	ErrInvalidToken = errors.New("invalid magic link")

	// ErrExpiredToken is returned when a magic link token is past its window or already used.
	// Both cases share one error so callers cannot tell them apart.
	ErrExpiredToken = errors.New("magic link expired or already used")

	// ErrCredentialIssuance is returned when session credentials could not be minted.
	ErrCredentialIssuance = errors.New("failed to issue session credentials")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")

	// ErrInvalidRefreshToken is returned when a refresh token is invalid, expired or revoked.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrForbidden is returned when an authenticated user lacks the required role.
	ErrForbidden = errors.New("forbidden")
)
