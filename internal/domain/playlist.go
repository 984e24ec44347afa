package domain

import (
	"time"

	"github.com/google/uuid"
)

type Playlist struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	Tags          []string  `json:"tags"`
	CoverGradient *string   `json:"cover_gradient,omitempty"`
	IsPublic      bool      `json:"is_public"`
	LikesCount    int       `json:"likes_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Denormalized for list/detail responses.
	Username   string  `json:"username,omitempty"`
	UserAvatar *string `json:"user_avatar,omitempty"`
	SongCount  int     `json:"song_count"`
	IsLiked    bool    `json:"is_liked"`
	IsSaved    bool    `json:"is_saved"`
}
