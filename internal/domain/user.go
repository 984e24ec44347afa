package domain

import (
	"time"

	"github.com/google/uuid"
)

const ProviderGoogle = "google"

type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	PasswordHash  *string   `json:"-"`
	Provider      *string   `json:"provider,omitempty"`
	ProviderID    *string   `json:"-"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	Bio           *string   `json:"bio,omitempty"`
	PlaylistCount int       `json:"playlist_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasPassword reports whether the account carries a local credential.
// Accounts provisioned via Google login have none until a password is set.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
