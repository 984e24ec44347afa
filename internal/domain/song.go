package domain

import (
	"time"

	"github.com/google/uuid"
)

type Song struct {
	ID         uuid.UUID `json:"id"`
	PlaylistID uuid.UUID `json:"playlist_id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	URL        string    `json:"url"`
	Platform   string    `json:"platform"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}
