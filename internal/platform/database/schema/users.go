// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package schema holds the table and column names of the relational store.

Repositories build their queries from these descriptors so that storage naming
is declared once, apart from validation rules and domain types.
*/
package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table     string
	ID        string
	Username  string
	Email     string
	Password  string
	CreatedAt string
	UpdatedAt string

	// EmailKey is the unique constraint guarding Email.
	EmailKey string
}

// User is the schema definition for users
var User = UserTable{
	Table:     "users",
	ID:        "id",
	Username:  "username",
	Email:     "email",
	Password:  "passwordhash",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	EmailKey:  "users_email_key",
}

// Columns returns all standard column names
func (t UserTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.Password, t.CreatedAt, t.UpdatedAt}
}
