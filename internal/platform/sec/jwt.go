// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, JWT signing)
// from the domain logic. It is injected into the auth service through the
// [auth.TokenCodec] and [auth.PasswordHasher] interfaces.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/ghibli/pkg/uuid"
)

var (
	// ErrInvalidToken is returned when a token fails signature, expiry, or claim checks.
	ErrInvalidToken = errors.New("sec: invalid token")

	// ErrMissingSecret is returned when a signing secret is empty.
	ErrMissingSecret = errors.New("sec: token secret must not be empty")

	// ErrSecretsEqual is returned when the access and refresh secrets are identical.
	ErrSecretsEqual = errors.New("sec: access and refresh secrets must differ")
)

// Claims is the payload embedded in both token kinds.
//
// Only the user ID is carried. The token kind is implied by the secret that
// verifies it, never by a claim.
type Claims struct {
	jwt.RegisteredClaims

	UserID int64 `json:"userId"`
}

// TokenConfig configures a [TokenCodec].
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// tokenKind is the signing material for one class of token.
type tokenKind struct {
	name   string
	secret []byte
	ttl    time.Duration
}

// TokenCodec signs and verifies access and refresh tokens using HS256 with
// two distinct secrets.
//
// # Concurrency
//
// TokenCodec is immutable after construction and safe for concurrent use.
type TokenCodec struct {
	access  tokenKind
	refresh tokenKind
	issuer  string
	now     func() time.Time
}

// NewTokenCodec validates the configuration and returns a ready codec.
func NewTokenCodec(cfg TokenConfig) (*TokenCodec, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, ErrSecretsEqual
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("sec: token lifetimes must be positive (access=%s, refresh=%s)", cfg.AccessTTL, cfg.RefreshTTL)
	}

	return &TokenCodec{
		access:  tokenKind{name: "access", secret: []byte(cfg.AccessSecret), ttl: cfg.AccessTTL},
		refresh: tokenKind{name: "refresh", secret: []byte(cfg.RefreshSecret), ttl: cfg.RefreshTTL},
		issuer:  cfg.Issuer,
		now:     time.Now,
	}, nil
}

// MintAccessToken signs a short-lived access token for the user.
func (codec *TokenCodec) MintAccessToken(userID int64) (string, error) {
	return codec.mint(codec.access, userID)
}

// MintRefreshToken signs a long-lived refresh token for the user.
func (codec *TokenCodec) MintRefreshToken(userID int64) (string, error) {
	return codec.mint(codec.refresh, userID)
}

// VerifyAccessToken checks an access token's signature and expiry.
func (codec *TokenCodec) VerifyAccessToken(token string) (*Claims, error) {
	return codec.verify(codec.access, token)
}

// VerifyRefreshToken checks a refresh token's signature and expiry.
// It never consults the session store.
func (codec *TokenCodec) VerifyRefreshToken(token string) (*Claims, error) {
	return codec.verify(codec.refresh, token)
}

// AccessTTL reports the lifetime of minted access tokens.
func (codec *TokenCodec) AccessTTL() time.Duration { return codec.access.ttl }

// RefreshTTL reports the lifetime of minted refresh tokens.
func (codec *TokenCodec) RefreshTTL() time.Duration { return codec.refresh.ttl }

func (codec *TokenCodec) mint(kind tokenKind, userID int64) (string, error) {
	issuedAt := codec.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// A random ID keeps two tokens minted in the same second distinct.
			ID:        uuid.New(),
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    codec.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(kind.ttl)),
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(kind.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign %s token: %w", kind.name, err)
	}

	return signed, nil
}

func (codec *TokenCodec) verify(kind tokenKind, token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return kind.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(codec.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(codec.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidToken, kind.name, err)
	}

	if !parsed.Valid || claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: %s: missing user", ErrInvalidToken, kind.name)
	}

	return claims, nil
}
