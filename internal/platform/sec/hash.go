// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argon2Algorithm = "argon2id"

	minArgon2Memory      uint32 = 8 * 1024
	minArgon2Time        uint32 = 1
	minArgon2Parallelism uint8  = 1
	minArgon2SaltLength  uint32 = 16
	minArgon2KeyLength   uint32 = 16
)

// ErrMalformedHash is returned when a stored hash is not a valid argon2id PHC string.
var ErrMalformedHash = errors.New("sec: malformed password hash")

// Argon2Params tunes the argon2id cost.
type Argon2Params struct {
	Memory      uint32 // KiB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params are the production hashing costs (64 MiB, 3 passes).
var DefaultArgon2Params = Argon2Params{
	Memory:      64 * 1024,
	Time:        3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// Argon2Hasher hashes and verifies passwords with argon2id.
//
// Hashes are encoded in PHC form:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
//
// so that parameters can be raised later without invalidating stored hashes.
type Argon2Hasher struct {
	params Argon2Params
}

// NewArgon2Hasher validates params and returns a hasher.
func NewArgon2Hasher(params Argon2Params) (*Argon2Hasher, error) {
	switch {
	case params.Memory < minArgon2Memory:
		return nil, fmt.Errorf("sec: argon2 memory must be >= %d KiB", minArgon2Memory)
	case params.Time < minArgon2Time:
		return nil, fmt.Errorf("sec: argon2 time must be >= %d", minArgon2Time)
	case params.Parallelism < minArgon2Parallelism:
		return nil, fmt.Errorf("sec: argon2 parallelism must be >= %d", minArgon2Parallelism)
	case params.SaltLength < minArgon2SaltLength:
		return nil, fmt.Errorf("sec: argon2 salt length must be >= %d", minArgon2SaltLength)
	case params.KeyLength < minArgon2KeyLength:
		return nil, fmt.Errorf("sec: argon2 key length must be >= %d", minArgon2KeyLength)
	}

	return &Argon2Hasher{params: params}, nil
}

// Hash derives a salted argon2id hash of the plain-text password.
func (hasher *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, hasher.params.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("sec: failed to read salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt,
		hasher.params.Time, hasher.params.Memory, hasher.params.Parallelism, hasher.params.KeyLength)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Algorithm,
		argon2.Version,
		hasher.params.Memory,
		hasher.params.Time,
		hasher.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches the encoded hash.
//
// The comparison is constant-time. A malformed hash returns [ErrMalformedHash].
func (hasher *Argon2Hasher) Verify(password, encodedHash string) (bool, error) {
	decoded, err := decodePHC(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), decoded.salt,
		decoded.time, decoded.memory, decoded.parallelism, uint32(len(decoded.key)))

	return subtle.ConstantTimeCompare(computed, decoded.key) == 1, nil
}

type phc struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func decodePHC(encoded string) (*phc, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != argon2Algorithm {
		return nil, ErrMalformedHash
	}

	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrMalformedHash, parts[2])
	}

	decoded := &phc{}
	var parallelism uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &decoded.memory, &decoded.time, &parallelism); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	if decoded.memory < minArgon2Memory || decoded.time < minArgon2Time || parallelism < 1 || parallelism > 255 {
		return nil, fmt.Errorf("%w: parameters out of range", ErrMalformedHash)
	}
	decoded.parallelism = uint8(parallelism)

	var err error
	if decoded.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(decoded.salt) == 0 {
		return nil, fmt.Errorf("%w: salt", ErrMalformedHash)
	}
	if decoded.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(decoded.key) == 0 {
		return nil, fmt.Errorf("%w: key", ErrMalformedHash)
	}

	return decoded, nil
}
