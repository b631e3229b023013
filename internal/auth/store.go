// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"strconv"
)

// # Credential Store

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: ErrUserNotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByEmailOrUsername returns the account whose email or username equals
		the identifier. An exact email match takes precedence over a username match.

		Parameters:
		  - context: context.Context
		  - identifier: string

		Returns:
		  - *User: Hydrated entity
		  - error: ErrUserNotFound or database retrieval failures
	*/
	FindByEmailOrUsername(context context.Context, identifier string) (*User, error)

	/*
		Create persists a brand-new user account and fills in its generated ID
		and timestamps.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: ErrEmailTaken or persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Session Cache

// SessionCache holds the single refresh token each user may currently exchange.
//
// Keys are produced by [SessionKey]. Implementations must make every call atomic.
type SessionCache interface {

	/*
		Set stores value under key, overwriting any prior entry.

		Parameters:
		  - context: context.Context
		  - key: string
		  - value: string

		Returns:
		  - error: Store failures
	*/
	Set(context context.Context, key, value string) error

	/*
		Get returns the value stored under key.

		Returns:
		  - string: Stored value
		  - bool: false if the key is absent or expired
		  - error: Store failures
	*/
	Get(context context.Context, key string) (string, bool, error)

	/*
		Del removes the entry under key. Deleting an absent key is not an error.

		Returns:
		  - error: Store failures
	*/
	Del(context context.Context, key string) error

	/*
		Swap replaces the value under key with next only if it currently equals old.

		Returns:
		  - bool: true if the value was replaced
		  - error: Store failures
	*/
	Swap(context context.Context, key, old, next string) (bool, error)
}

// SessionKey returns the session cache key of a user: the decimal user ID.
func SessionKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
