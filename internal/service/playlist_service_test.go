package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmarkovic/crate/internal/domain"
)

type playlistFixture struct {
	svc           *PlaylistService
	playlists     *fakePlaylistRepo
	songs         *fakeSongRepo
	users         *fakeUserRepo
	notifications *fakeNotificationRepo
}

func newPlaylistFixture(t *testing.T) *playlistFixture {
	t.Helper()
	f := &playlistFixture{
		playlists:     newFakePlaylistRepo(),
		songs:         newFakeSongRepo(),
		users:         newFakeUserRepo(),
		notifications: &fakeNotificationRepo{},
	}
	f.svc = NewPlaylistService(f.playlists, f.songs, f.users, NewNotificationService(f.notifications, nil))
	return f
}

func (f *playlistFixture) addUser(t *testing.T, username string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, f.users.Create(context.Background(), &domain.User{
		ID:       id,
		Email:    username + "@example.com",
		Username: username,
	}))
	return id
}

func (f *playlistFixture) addPlaylist(t *testing.T, ownerID uuid.UUID, title string, public bool) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, f.playlists.Create(context.Background(), &domain.Playlist{
		ID:        id,
		UserID:    ownerID,
		Title:     title,
		Tags:      []string{},
		IsPublic:  public,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}))
	return id
}

func TestCreatePlaylistDefaults(t *testing.T) {
	f := newPlaylistFixture(t)
	owner := f.addUser(t, "alice")

	playlist, err := f.svc.Create(context.Background(), owner, CreatePlaylistInput{Title: "Late Night"})
	require.NoError(t, err)

	assert.Equal(t, "Late Night", playlist.Title)
	assert.True(t, playlist.IsPublic)
	assert.NotNil(t, playlist.Tags)

	user, err := f.users.GetByID(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 1, user.PlaylistCount)
}

func TestGetPrivatePlaylistVisibility(t *testing.T) {
	f := newPlaylistFixture(t)
	owner := f.addUser(t, "alice")
	stranger := f.addUser(t, "bob")
	id := f.addPlaylist(t, owner, "Secret", false)
	ctx := context.Background()

	// Anonymous and non-owner viewers get not-found, never forbidden.
	_, err := f.svc.Get(ctx, nil, id)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)

	_, err = f.svc.Get(ctx, &stranger, id)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)

	detail, err := f.svc.Get(ctx, &owner, id)
	require.NoError(t, err)
	assert.Equal(t, "Secret", detail.Title)
	assert.NotNil(t, detail.Songs)
}

func TestUpdatePlaylistOwnership(t *testing.T) {
	f := newPlaylistFixture(t)
	owner := f.addUser(t, "alice")
	stranger := f.addUser(t, "bob")
	id := f.addPlaylist(t, owner, "Mix", true)
	ctx := context.Background()

	title := "Renamed"
	_, err := f.svc.Update(ctx, stranger, id, UpdatePlaylistInput{Title: &title})
	assert.ErrorIs(t, err, ErrNotPlaylistOwner)

	updated, err := f.svc.Update(ctx, owner, id, UpdatePlaylistInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestLikePlaylist(t *testing.T) {
	f := newPlaylistFixture(t)
	owner := f.addUser(t, "alice")
	liker := f.addUser(t, "bob")
	id := f.addPlaylist(t, owner, "Mix", true)
	ctx := context.Background()

	count, err := f.svc.Like(ctx, liker, id)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = f.svc.Like(ctx, liker, id)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	// The owner was told about it.
	require.Len(t, f.notifications.notifications, 1)
	n := f.notifications.notifications[0]
	assert.Equal(t, owner, n.UserID)
	assert.Equal(t, liker, n.ActorID)
	assert.Equal(t, domain.NotificationPlaylistLiked, n.Type)

	count, err = f.svc.Unlike(ctx, liker, id)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = f.svc.Unlike(ctx, liker, id)
	assert.ErrorIs(t, err, ErrLikeNotFound)
}

func TestLikeOwnPlaylistEmitsNothing(t *testing.T) {
	f := newPlaylistFixture(t)
	owner := f.addUser(t, "alice")
	id := f.addPlaylist(t, owner, "Mix", true)

	_, err := f.svc.Like(context.Background(), owner, id)
	require.NoError(t, err)
	assert.Empty(t, f.notifications.notifications)
}

func TestSaveAndListSaved(t *testing.T) {
	f := newPlaylistFixture(t)
	owner := f.addUser(t, "alice")
	saver := f.addUser(t, "bob")
	id := f.addPlaylist(t, owner, "Mix", true)
	ctx := context.Background()

	require.NoError(t, f.svc.Save(ctx, saver, id))
	assert.ErrorIs(t, f.svc.Save(ctx, saver, id), ErrAlreadySaved)

	page, err := f.svc.ListSaved(ctx, saver, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Playlists, 1)
	assert.Equal(t, id, page.Playlists[0].ID)
	assert.True(t, page.Playlists[0].IsSaved)

	require.NoError(t, f.svc.Unsave(ctx, saver, id))
	assert.ErrorIs(t, f.svc.Unsave(ctx, saver, id), ErrSaveNotFound)
}

func TestDeletePlaylistAdjustsCount(t *testing.T) {
	f := newPlaylistFixture(t)
	owner := f.addUser(t, "alice")
	ctx := context.Background()

	playlist, err := f.svc.Create(ctx, owner, CreatePlaylistInput{Title: "Mix"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, owner, playlist.ID))

	user, err := f.users.GetByID(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 0, user.PlaylistCount)

	_, err = f.svc.Get(ctx, &owner, playlist.ID)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)
}

func TestListHidesPrivateFromOthers(t *testing.T) {
	f := newPlaylistFixture(t)
	owner := f.addUser(t, "alice")
	f.addPlaylist(t, owner, "Public", true)
	f.addPlaylist(t, owner, "Private", false)
	ctx := context.Background()

	page, err := f.svc.List(ctx, nil, ListPlaylistsInput{Owner: &owner})
	require.NoError(t, err)
	assert.Len(t, page.Playlists, 1)

	page, err = f.svc.List(ctx, &owner, ListPlaylistsInput{Owner: &owner})
	require.NoError(t, err)
	assert.Len(t, page.Playlists, 2)
}
