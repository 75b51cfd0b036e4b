package models

import "time"

// TokenPurposeAuth is the only purpose currently issued. Tokens carrying any
// other purpose are rejected during verification.
const TokenPurposeAuth = "auth"

// AuthToken is one entry in a user's stored token sequence. Entries are kept
// in issuance order; removing an entry revokes that session.
type AuthToken struct {
	Purpose string `json:"purpose"`
	Token   string `json:"token"`
}

type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Tokens       []AuthToken `json:"-"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
