package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification types.
const (
	NotificationPlaylistLiked = "playlist.liked"
	NotificationPlaylistSaved = "playlist.saved"
	NotificationUserFollowed  = "user.followed"
)

type Notification struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	ActorID    uuid.UUID  `json:"actor_id"`
	Type       string     `json:"type"`
	PlaylistID *uuid.UUID `json:"playlist_id,omitempty"`
	Read       bool       `json:"read"`
	CreatedAt  time.Time  `json:"created_at"`

	// Denormalized actor info for responses.
	ActorUsername string  `json:"actor_username,omitempty"`
	ActorAvatar   *string `json:"actor_avatar,omitempty"`
}

type UserFollow struct {
	FollowerID  uuid.UUID `json:"follower_id"`
	FollowingID uuid.UUID `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
