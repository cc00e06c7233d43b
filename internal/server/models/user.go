// Package models defines server-side records read from and written to the
// database, and the shapes the services hand back to transports.
package models

import "time"

// User is a registered account. PasswordHash is populated only when the
// record is read for credential checks and never leaves the service layer.
type User struct {
	UserName     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	JoinAt       time.Time `json:"join_at"`
	LastLoginAt  time.Time `json:"last_login_at"`
}

// UserSummary is a directory listing row.
type UserSummary struct {
	UserName  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserSnippet is the counterpart profile embedded into message records.
type UserSnippet struct {
	UserName  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// LoginStamp is returned after last_login_at has been bumped.
type LoginStamp struct {
	UserName    string    `json:"username"`
	LastLoginAt time.Time `json:"last_login_at"`
}
