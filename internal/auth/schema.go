// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"strings"

	"github.com/taibuivan/ghibli/internal/platform/validate"
)

// # Input Schemas
//
// Transports run these before calling the [Service].

// SignUpSchema validates [SignUpInput].
var SignUpSchema = validate.Schema[SignUpInput]{
	func(v *validate.Validator, input SignUpInput) {
		v.Required(FieldEmail, input.Email).
			Email(FieldEmail, input.Email).
			MaxLen(FieldEmail, input.Email, MaxEmailLength)
	},
	func(v *validate.Validator, input SignUpInput) {
		v.Required(FieldUsername, input.Username).
			MaxLen(FieldUsername, input.Username, MaxUsernameLength).
			Custom(FieldUsername, strings.TrimSpace(input.Username) != input.Username,
				"Must not start or end with whitespace")
	},
	func(v *validate.Validator, input SignUpInput) {
		v.Required(FieldPassword, input.Password).
			MaxLen(FieldPassword, input.Password, MaxPasswordLength)
	},
}

// LoginSchema validates [LoginInput].
var LoginSchema = validate.Schema[LoginInput]{
	func(v *validate.Validator, input LoginInput) {
		v.Required(FieldIdentifier, input.Identifier)
		v.Required(FieldPassword, input.Password)
	},
}
