// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account registration and the session protocol.

It issues a short-lived access token and a long-lived refresh token on login,
keeps the single valid refresh token of every user in the session cache, and
rotates that token on every refresh so a replayed token is worthless.

Architecture:

  - Service: Orchestrates SignUp, Login, RefreshAccessToken, Logout and Me.
  - Repository: Postgres for credentials, Redis for sessions.
  - Transport: Cookie changes are returned as [RefreshCookie] directives and
    written by the REST and GraphQL adapters.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/ghibli/internal/platform/apperr"
	"github.com/taibuivan/ghibli/internal/platform/ctxutil"
	"github.com/taibuivan/ghibli/internal/platform/sec"
)

// # Contracts & Types

// TokenCodec mints and verifies the two token kinds.
type TokenCodec interface {
	MintAccessToken(userID int64) (string, error)
	MintRefreshToken(userID int64) (string, error)
	VerifyRefreshToken(token string) (*sec.Claims, error)
	RefreshTTL() time.Duration
}

// PasswordHasher derives and checks one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// Service implements user authentication use cases.
type Service struct {
	users    UserRepository
	sessions SessionCache
	tokens   TokenCodec
	hasher   PasswordHasher
	now      func() time.Time
}

// NewService constructs a new [Service] with its collaborators.
func NewService(users UserRepository, sessions SessionCache, tokens TokenCodec, hasher PasswordHasher) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		hasher:   hasher,
		now:      time.Now,
	}
}

// # Registration Flow

// SignUpInput holds the data required to create an account.
type SignUpInput struct {
	Email    string
	Username string
	Password string
}

/*
SignUp hashes the password and persists a new account.

Description: No token is issued; the caller logs in afterwards. Input must
have passed [SignUpSchema].

Parameters:
  - context: context.Context
  - input: SignUpInput

Returns:
  - *User: Created entity
  - error: ErrEmailTaken or storage errors
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*User, error) {
	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hashedPassword,
	}

	if err := service.users.Create(context, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	// Identifier is either an email or a username.
	Identifier string
	Password   string
}

// LoginResult is the outcome of a login attempt.
//
// Exactly one of Errors or (User, AccessToken, RefreshCookie) is set.
type LoginResult struct {
	User          *User
	AccessToken   string
	RefreshCookie *RefreshCookie
	Errors        []apperr.FieldError
}

func loginFailure(field, message string) *LoginResult {
	return &LoginResult{Errors: []apperr.FieldError{{Field: field, Message: message}}}
}

/*
Login validates credentials and opens a session.

Description: An unknown identifier and a wrong password are reported as
distinct field errors. On success both tokens are minted and the refresh
token replaces any session the user already had.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Session or field errors
  - error: Storage or signing failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	user, err := service.users.FindByEmailOrUsername(context, input.Identifier)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return loginFailure(FieldIdentifier, MessageUnknownIdentifier), nil
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	matches, err := service.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("auth_service_password_verify_failed: %w", err)
	}
	if !matches {
		return loginFailure(FieldPassword, MessageWrongPassword), nil
	}

	accessToken, err := service.tokens.MintAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokens.MintRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	if err := service.sessions.Set(context, SessionKey(user.ID), refreshToken); err != nil {
		return nil, fmt.Errorf("auth_service_session_store_failed: %w", err)
	}

	return &LoginResult{
		User:          user,
		AccessToken:   accessToken,
		RefreshCookie: service.refreshCookie(refreshToken),
	}, nil
}

// # Session Rotation

// RefreshResult carries a fresh access token and the rotated refresh cookie.
type RefreshResult struct {
	AccessToken   string
	RefreshCookie *RefreshCookie
}

/*
RefreshAccessToken exchanges the current refresh token for a new token pair.

Description: Fails closed with (nil, nil) when the token is missing, invalid
or expired, when the user has no session, when the token is not exactly the
stored one, when the user no longer exists, or when a concurrent refresh
rotated the session first. Only store and signing failures are errors.

Parameters:
  - context: context.Context
  - incoming: string (Refresh token from the cookie)

Returns:
  - *RefreshResult: New access token and cookie, or nil
  - error: Storage or signing failures
*/
func (service *Service) RefreshAccessToken(context context.Context, incoming string) (*RefreshResult, error) {
	logger := ctxutil.GetLogger(context)

	if incoming == "" {
		return nil, nil
	}

	claims, err := service.tokens.VerifyRefreshToken(incoming)
	if err != nil {
		logger.DebugContext(context, "refresh_rejected", slog.String("reason", "invalid_token"), slog.Any("error", err))
		return nil, nil
	}

	key := SessionKey(claims.UserID)
	stored, found, err := service.sessions.Get(context, key)
	if err != nil {
		return nil, fmt.Errorf("auth_service_session_lookup_failed: %w", err)
	}
	if !found || stored != incoming {
		logger.DebugContext(context, "refresh_rejected",
			slog.String("reason", "session_mismatch"),
			slog.Int64("user_id", claims.UserID),
			slog.Bool("session_found", found),
		)
		return nil, nil
	}

	if _, err := service.users.FindByID(context, claims.UserID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			logger.DebugContext(context, "refresh_rejected",
				slog.String("reason", "user_not_found"),
				slog.Int64("user_id", claims.UserID),
			)
			return nil, nil
		}
		return nil, fmt.Errorf("auth_service_refresh_user_lookup_failed: %w", err)
	}

	refreshToken, err := service.tokens.MintRefreshToken(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	accessToken, err := service.tokens.MintAccessToken(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	swapped, err := service.sessions.Swap(context, key, incoming, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("auth_service_session_rotate_failed: %w", err)
	}
	if !swapped {
		logger.DebugContext(context, "refresh_rejected",
			slog.String("reason", "rotation_lost"),
			slog.Int64("user_id", claims.UserID),
		)
		return nil, nil
	}

	return &RefreshResult{
		AccessToken:   accessToken,
		RefreshCookie: service.refreshCookie(refreshToken),
	}, nil
}

/*
Logout ends the session of the caller.

Description: Never fails. Anonymous callers get no cookie change. For an
authenticated caller the session entry is deleted and the cookie cleared; a
cache failure is logged and the cookie is cleared anyway.

Parameters:
  - context: context.Context
  - claims: *sec.Claims (nil when anonymous)

Returns:
  - *RefreshCookie: Clearing directive, or nil for anonymous callers
*/
func (service *Service) Logout(context context.Context, claims *sec.Claims) *RefreshCookie {
	if claims == nil {
		return nil
	}

	if err := service.sessions.Del(context, SessionKey(claims.UserID)); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "auth_service_logout_session_delete_failed",
			slog.Int64("user_id", claims.UserID),
			slog.Any("error", err),
		)
	}

	return clearRefreshCookie()
}

/*
Me returns the account behind a verified access token.

Parameters:
  - context: context.Context
  - claims: *sec.Claims (nil when anonymous)

Returns:
  - *User: The account, or nil when anonymous or deleted
  - error: Storage failures
*/
func (service *Service) Me(context context.Context, claims *sec.Claims) (*User, error) {
	if claims == nil {
		return nil, nil
	}

	user, err := service.users.FindByID(context, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth_service_me_failed: %w", err)
	}

	return user, nil
}

func (service *Service) refreshCookie(token string) *RefreshCookie {
	return &RefreshCookie{
		Value:     token,
		ExpiresAt: service.now().Add(service.tokens.RefreshTTL()),
	}
}
