package domain

import "time"

// LinkedAccount binds one external provider account to exactly one User.
// The (Provider, ProviderAccountID) pair is unique across the store; rows
// are created lazily on the first OAuth sign-in for that pair and never
// reassigned afterwards.
type LinkedAccount struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Provider          string    `json:"provider"`
	ProviderAccountID string    `json:"provider_account_id"`
	AccessToken       string    `json:"-"`
	RefreshToken      string    `json:"-"`
	IDToken           string    `json:"-"`
	ExpiresAt         int64     `json:"-"`
	Scope             string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}
