package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type songFixture struct {
	svc       *SongService
	playlists *fakePlaylistRepo
	songs     *fakeSongRepo
	users     *fakeUserRepo
	ownerID   uuid.UUID
	playlist  uuid.UUID
}

func newSongFixture(t *testing.T) *songFixture {
	t.Helper()
	pf := newPlaylistFixture(t)
	f := &songFixture{
		playlists: pf.playlists,
		songs:     pf.songs,
		users:     pf.users,
	}
	f.svc = NewSongService(f.songs, f.playlists)
	f.ownerID = pf.addUser(t, "alice")
	f.playlist = pf.addPlaylist(t, f.ownerID, "Mix", true)
	return f
}

func (f *songFixture) addSong(t *testing.T, title string) uuid.UUID {
	t.Helper()
	song, err := f.svc.Add(context.Background(), f.ownerID, f.playlist, AddSongInput{
		Title:    title,
		Artist:   "Artist",
		URL:      "https://youtube.com/watch?v=" + title,
		Platform: "youtube",
	})
	require.NoError(t, err)
	return song.ID
}

func TestAddSongAppendsAtEnd(t *testing.T) {
	f := newSongFixture(t)
	first := f.addSong(t, "one")
	second := f.addSong(t, "two")

	songs, err := f.svc.List(context.Background(), &f.ownerID, f.playlist)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, first, songs[0].ID)
	assert.Equal(t, 0, songs[0].Position)
	assert.Equal(t, second, songs[1].ID)
	assert.Equal(t, 1, songs[1].Position)
}

func TestAddSongRequiresOwnership(t *testing.T) {
	f := newSongFixture(t)
	stranger := uuid.New()

	_, err := f.svc.Add(context.Background(), stranger, f.playlist, AddSongInput{Title: "x"})
	assert.ErrorIs(t, err, ErrNotPlaylistOwner)
}

func TestDeleteSongCompactsPositions(t *testing.T) {
	f := newSongFixture(t)
	first := f.addSong(t, "one")
	second := f.addSong(t, "two")
	third := f.addSong(t, "three")
	ctx := context.Background()

	require.NoError(t, f.svc.Delete(ctx, f.ownerID, second))

	songs, err := f.svc.List(ctx, &f.ownerID, f.playlist)
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, first, songs[0].ID)
	assert.Equal(t, 0, songs[0].Position)
	assert.Equal(t, third, songs[1].ID)
	assert.Equal(t, 1, songs[1].Position)
}

func TestReorderSongs(t *testing.T) {
	f := newSongFixture(t)
	first := f.addSong(t, "one")
	second := f.addSong(t, "two")
	third := f.addSong(t, "three")
	ctx := context.Background()

	songs, err := f.svc.Reorder(ctx, f.ownerID, f.playlist, []uuid.UUID{third, first, second})
	require.NoError(t, err)
	require.Len(t, songs, 3)
	assert.Equal(t, third, songs[0].ID)
	assert.Equal(t, first, songs[1].ID)
	assert.Equal(t, second, songs[2].ID)
}

func TestReorderRejectsPartialOrDuplicated(t *testing.T) {
	f := newSongFixture(t)
	first := f.addSong(t, "one")
	f.addSong(t, "two")
	ctx := context.Background()

	_, err := f.svc.Reorder(ctx, f.ownerID, f.playlist, []uuid.UUID{first})
	assert.ErrorIs(t, err, ErrBadSongOrder)

	_, err = f.svc.Reorder(ctx, f.ownerID, f.playlist, []uuid.UUID{first, first})
	assert.ErrorIs(t, err, ErrBadSongOrder)

	_, err = f.svc.Reorder(ctx, f.ownerID, f.playlist, []uuid.UUID{first, uuid.New()})
	assert.ErrorIs(t, err, ErrBadSongOrder)
}

func TestListSongsOnPrivatePlaylist(t *testing.T) {
	pf := newPlaylistFixture(t)
	owner := pf.addUser(t, "alice")
	private := pf.addPlaylist(t, owner, "Secret", false)
	svc := NewSongService(pf.songs, pf.playlists)
	ctx := context.Background()

	_, err := svc.List(ctx, nil, private)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)

	songs, err := svc.List(ctx, &owner, private)
	require.NoError(t, err)
	assert.NotNil(t, songs)
}
