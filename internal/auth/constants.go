// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"errors"

	"github.com/taibuivan/ghibli/internal/platform/apperr"
)

// # Input Fields

const (
	FieldEmail      = "email"
	FieldUsername   = "username"
	FieldPassword   = "password"
	FieldIdentifier = "identifier"
)

// # Field Messages

const (
	MessageUnknownIdentifier = "No user found with this email or username"
	MessageWrongPassword     = "Password does not match"
	MessageEmailTaken        = "Email is already registered"
)

// # Field Constraints

const (
	MaxEmailLength    = 254
	MaxUsernameLength = 50
	MaxPasswordLength = 128
)

// # Errors

var (
	// ErrUserNotFound is returned by a [UserRepository] when no account matches.
	ErrUserNotFound = errors.New("auth: user not found")

	// ErrEmailTaken is returned by [UserRepository.Create] when the email is already registered.
	ErrEmailTaken = apperr.Conflict(MessageEmailTaken, apperr.FieldError{
		Field:   FieldEmail,
		Message: MessageEmailTaken,
	})
)
