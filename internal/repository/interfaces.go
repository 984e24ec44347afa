package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tmarkovic/crate/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByProvider(ctx context.Context, provider, providerID string) (*domain.User, error)
	LinkProvider(ctx context.Context, id uuid.UUID, provider, providerID string, avatarURL *string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, bio, avatarURL *string) error
	AdjustPlaylistCount(ctx context.Context, id uuid.UUID, delta int) error
	List(ctx context.Context, search string, limit, offset int) ([]domain.User, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlaylistFilter narrows playlist listings. A nil OwnerID means all owners;
// ViewerID marks whose private playlists may be included.
type PlaylistFilter struct {
	OwnerID  *uuid.UUID
	ViewerID *uuid.UUID
	Tag      string
	Sort     string // "recent" or "popular"
	Limit    int
	Offset   int
}

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error)
	List(ctx context.Context, filter PlaylistFilter) ([]domain.Playlist, int, error)
	ListByOwners(ctx context.Context, ownerIDs []uuid.UUID, limit, offset int) ([]domain.Playlist, int, error)
	Update(ctx context.Context, playlist *domain.Playlist) error
	Delete(ctx context.Context, id uuid.UUID) error

	Like(ctx context.Context, userID, playlistID uuid.UUID) (bool, error)
	Unlike(ctx context.Context, userID, playlistID uuid.UUID) (bool, error)
	IsLiked(ctx context.Context, userID, playlistID uuid.UUID) (bool, error)
	Save(ctx context.Context, userID, playlistID uuid.UUID) (bool, error)
	Unsave(ctx context.Context, userID, playlistID uuid.UUID) (bool, error)
	IsSaved(ctx context.Context, userID, playlistID uuid.UUID) (bool, error)
	ListSaved(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Playlist, int, error)
}

type SongRepository interface {
	Create(ctx context.Context, song *domain.Song) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error)
	ListByPlaylist(ctx context.Context, playlistID uuid.UUID) ([]domain.Song, error)
	CountByPlaylist(ctx context.Context, playlistID uuid.UUID) (int, error)
	Update(ctx context.Context, song *domain.Song) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, playlistID uuid.UUID, orderedIDs []uuid.UUID) error
}

type FollowRepository interface {
	Follow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	Unfollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	FollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error)
	ListFollowers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.User, int, error)
	ListFollowing(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.User, int, error)
	SuggestedUsers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.User, int, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Notification, int, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}
