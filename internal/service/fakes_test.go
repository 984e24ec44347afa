package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/tmarkovic/crate/internal/domain"
	"github.com/tmarkovic/crate/internal/repository"
)

// fakeUserRepo is an in-memory repository.UserRepository that enforces the
// same uniqueness rules as the database constraints.
type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User

	// failUsernameAttempts makes Create fail with ErrUsernameTaken this
	// many times regardless of the candidate, to exercise retry loops.
	failUsernameAttempts int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.failUsernameAttempts > 0 {
		f.failUsernameAttempts--
		return domain.ErrUsernameTaken
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailTaken
		}
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
		if user.Provider != nil && u.Provider != nil &&
			*u.Provider == *user.Provider && *u.ProviderID == *user.ProviderID {
			return domain.ErrAccountConflict
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByProvider(ctx context.Context, provider, providerID string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Provider != nil && *u.Provider == provider && u.ProviderID != nil && *u.ProviderID == providerID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) LinkProvider(ctx context.Context, id uuid.UUID, provider, providerID string, avatarURL *string) error {
	u, ok := f.users[id]
	if !ok {
		return nil
	}
	u.Provider = &provider
	u.ProviderID = &providerID
	if u.AvatarURL == nil {
		u.AvatarURL = avatarURL
	}
	return nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, bio, avatarURL *string) error {
	if u, ok := f.users[id]; ok {
		u.Bio = bio
		u.AvatarURL = avatarURL
	}
	return nil
}

func (f *fakeUserRepo) AdjustPlaylistCount(ctx context.Context, id uuid.UUID, delta int) error {
	if u, ok := f.users[id]; ok {
		u.PlaylistCount += delta
	}
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, search string, limit, offset int) ([]domain.User, int, error) {
	var users []domain.User
	for _, u := range f.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, len(users), nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

type likeKey struct {
	userID     uuid.UUID
	playlistID uuid.UUID
}

// fakePlaylistRepo keeps playlists, likes and saves in memory.
type fakePlaylistRepo struct {
	playlists map[uuid.UUID]*domain.Playlist
	likes     map[likeKey]bool
	saves     map[likeKey]bool
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{
		playlists: make(map[uuid.UUID]*domain.Playlist),
		likes:     make(map[likeKey]bool),
		saves:     make(map[likeKey]bool),
	}
}

func (f *fakePlaylistRepo) Create(ctx context.Context, p *domain.Playlist) error {
	clone := *p
	f.playlists[p.ID] = &clone
	return nil
}

func (f *fakePlaylistRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	if p, ok := f.playlists[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, nil
}

func (f *fakePlaylistRepo) List(ctx context.Context, filter repository.PlaylistFilter) ([]domain.Playlist, int, error) {
	var out []domain.Playlist
	for _, p := range f.playlists {
		if filter.OwnerID != nil && p.UserID != *filter.OwnerID {
			continue
		}
		ownerViewing := filter.OwnerID != nil && filter.ViewerID != nil && *filter.OwnerID == *filter.ViewerID
		if !p.IsPublic && !ownerViewing {
			continue
		}
		if filter.Tag != "" && !containsTag(p.Tags, filter.Tag) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, len(out), nil
}

func (f *fakePlaylistRepo) ListByOwners(ctx context.Context, ownerIDs []uuid.UUID, limit, offset int) ([]domain.Playlist, int, error) {
	owners := make(map[uuid.UUID]bool, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = true
	}
	var out []domain.Playlist
	for _, p := range f.playlists {
		if p.IsPublic && owners[p.UserID] {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, len(out), nil
}

func (f *fakePlaylistRepo) Update(ctx context.Context, p *domain.Playlist) error {
	clone := *p
	f.playlists[p.ID] = &clone
	return nil
}

func (f *fakePlaylistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.playlists, id)
	return nil
}

func (f *fakePlaylistRepo) Like(ctx context.Context, userID, playlistID uuid.UUID) (bool, error) {
	key := likeKey{userID, playlistID}
	if f.likes[key] {
		return false, nil
	}
	f.likes[key] = true
	if p, ok := f.playlists[playlistID]; ok {
		p.LikesCount++
	}
	return true, nil
}

func (f *fakePlaylistRepo) Unlike(ctx context.Context, userID, playlistID uuid.UUID) (bool, error) {
	key := likeKey{userID, playlistID}
	if !f.likes[key] {
		return false, nil
	}
	delete(f.likes, key)
	if p, ok := f.playlists[playlistID]; ok {
		p.LikesCount--
	}
	return true, nil
}

func (f *fakePlaylistRepo) IsLiked(ctx context.Context, userID, playlistID uuid.UUID) (bool, error) {
	return f.likes[likeKey{userID, playlistID}], nil
}

func (f *fakePlaylistRepo) Save(ctx context.Context, userID, playlistID uuid.UUID) (bool, error) {
	key := likeKey{userID, playlistID}
	if f.saves[key] {
		return false, nil
	}
	f.saves[key] = true
	return true, nil
}

func (f *fakePlaylistRepo) Unsave(ctx context.Context, userID, playlistID uuid.UUID) (bool, error) {
	key := likeKey{userID, playlistID}
	if !f.saves[key] {
		return false, nil
	}
	delete(f.saves, key)
	return true, nil
}

func (f *fakePlaylistRepo) IsSaved(ctx context.Context, userID, playlistID uuid.UUID) (bool, error) {
	return f.saves[likeKey{userID, playlistID}], nil
}

func (f *fakePlaylistRepo) ListSaved(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Playlist, int, error) {
	var out []domain.Playlist
	for key := range f.saves {
		if key.userID != userID {
			continue
		}
		if p, ok := f.playlists[key.playlistID]; ok {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// fakeSongRepo keeps songs in memory, ordered by position.
type fakeSongRepo struct {
	songs map[uuid.UUID]*domain.Song
}

func newFakeSongRepo() *fakeSongRepo {
	return &fakeSongRepo{songs: make(map[uuid.UUID]*domain.Song)}
}

func (f *fakeSongRepo) Create(ctx context.Context, song *domain.Song) error {
	clone := *song
	f.songs[song.ID] = &clone
	return nil
}

func (f *fakeSongRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	if s, ok := f.songs[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeSongRepo) ListByPlaylist(ctx context.Context, playlistID uuid.UUID) ([]domain.Song, error) {
	var out []domain.Song
	for _, s := range f.songs {
		if s.PlaylistID == playlistID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeSongRepo) CountByPlaylist(ctx context.Context, playlistID uuid.UUID) (int, error) {
	count := 0
	for _, s := range f.songs {
		if s.PlaylistID == playlistID {
			count++
		}
	}
	return count, nil
}

func (f *fakeSongRepo) Update(ctx context.Context, song *domain.Song) error {
	if s, ok := f.songs[song.ID]; ok {
		song.Position = s.Position
	}
	clone := *song
	f.songs[song.ID] = &clone
	return nil
}

func (f *fakeSongRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.songs, id)
	return nil
}

func (f *fakeSongRepo) Reorder(ctx context.Context, playlistID uuid.UUID, orderedIDs []uuid.UUID) error {
	for i, id := range orderedIDs {
		if s, ok := f.songs[id]; ok && s.PlaylistID == playlistID {
			s.Position = i
		}
	}
	return nil
}

// fakeNotificationRepo records created notifications.
type fakeNotificationRepo struct {
	notifications []*domain.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	clone := *n
	f.notifications = append(f.notifications, &clone)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Notification, int, error) {
	var out []domain.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, len(out), nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	for _, n := range f.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	for i, n := range f.notifications {
		if n.ID == id && n.UserID == userID {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeFollowRepo keeps follow edges in memory.
type fakeFollowRepo struct {
	edges map[likeKey]bool // follower -> following
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: make(map[likeKey]bool)}
}

func (f *fakeFollowRepo) Follow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	key := likeKey{followerID, followingID}
	if f.edges[key] {
		return false, nil
	}
	f.edges[key] = true
	return true, nil
}

func (f *fakeFollowRepo) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	key := likeKey{followerID, followingID}
	if !f.edges[key] {
		return false, nil
	}
	delete(f.edges, key)
	return true, nil
}

func (f *fakeFollowRepo) FollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for key := range f.edges {
		if key.userID == followerID {
			ids = append(ids, key.playlistID)
		}
	}
	return ids, nil
}

func (f *fakeFollowRepo) ListFollowers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.User, int, error) {
	return nil, 0, nil
}

func (f *fakeFollowRepo) ListFollowing(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.User, int, error) {
	return nil, 0, nil
}

func (f *fakeFollowRepo) SuggestedUsers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.User, int, error) {
	return nil, 0, nil
}
