package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tmarkovic/crate/internal/domain"
	"github.com/tmarkovic/crate/internal/repository"
)

var (
	ErrSongNotFound = errors.New("song not found")
	ErrBadSongOrder = errors.New("reorder must include every song exactly once")
)

type SongService struct {
	songRepo     repository.SongRepository
	playlistRepo repository.PlaylistRepository
}

func NewSongService(songRepo repository.SongRepository, playlistRepo repository.PlaylistRepository) *SongService {
	return &SongService{
		songRepo:     songRepo,
		playlistRepo: playlistRepo,
	}
}

type AddSongInput struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	URL      string `json:"url"`
	Platform string `json:"platform"`
}

type UpdateSongInput struct {
	Title    *string `json:"title"`
	Artist   *string `json:"artist"`
	URL      *string `json:"url"`
	Platform *string `json:"platform"`
}

// List returns the playlist's songs in position order. Visibility follows
// the playlist itself.
func (s *SongService) List(ctx context.Context, viewerID *uuid.UUID, playlistID uuid.UUID) ([]domain.Song, error) {
	if _, err := s.visiblePlaylist(ctx, viewerID, playlistID); err != nil {
		return nil, err
	}

	songs, err := s.songRepo.ListByPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []domain.Song{}
	}
	return songs, nil
}

func (s *SongService) Add(ctx context.Context, userID, playlistID uuid.UUID, input AddSongInput) (*domain.Song, error) {
	if _, err := s.ownedPlaylist(ctx, userID, playlistID); err != nil {
		return nil, err
	}

	count, err := s.songRepo.CountByPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	song := &domain.Song{
		ID:         uuid.New(),
		PlaylistID: playlistID,
		Title:      input.Title,
		Artist:     input.Artist,
		URL:        input.URL,
		Platform:   input.Platform,
		Position:   count,
		CreatedAt:  time.Now(),
	}

	if err := s.songRepo.Create(ctx, song); err != nil {
		return nil, fmt.Errorf("adding song: %w", err)
	}

	return song, nil
}

func (s *SongService) Update(ctx context.Context, userID, songID uuid.UUID, input UpdateSongInput) (*domain.Song, error) {
	song, err := s.ownedSong(ctx, userID, songID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		song.Title = *input.Title
	}
	if input.Artist != nil {
		song.Artist = *input.Artist
	}
	if input.URL != nil {
		song.URL = *input.URL
	}
	if input.Platform != nil {
		song.Platform = *input.Platform
	}

	if err := s.songRepo.Update(ctx, song); err != nil {
		return nil, fmt.Errorf("updating song: %w", err)
	}

	return song, nil
}

func (s *SongService) Delete(ctx context.Context, userID, songID uuid.UUID) error {
	song, err := s.ownedSong(ctx, userID, songID)
	if err != nil {
		return err
	}

	if err := s.songRepo.Delete(ctx, songID); err != nil {
		return fmt.Errorf("deleting song: %w", err)
	}

	// Compact positions so the order stays gapless.
	songs, err := s.songRepo.ListByPlaylist(ctx, song.PlaylistID)
	if err != nil {
		return err
	}
	ids := make([]uuid.UUID, len(songs))
	for i, remaining := range songs {
		ids[i] = remaining.ID
	}
	return s.songRepo.Reorder(ctx, song.PlaylistID, ids)
}

// Reorder applies a full permutation of the playlist's songs.
func (s *SongService) Reorder(ctx context.Context, userID, playlistID uuid.UUID, orderedIDs []uuid.UUID) ([]domain.Song, error) {
	if _, err := s.ownedPlaylist(ctx, userID, playlistID); err != nil {
		return nil, err
	}

	songs, err := s.songRepo.ListByPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if len(orderedIDs) != len(songs) {
		return nil, ErrBadSongOrder
	}
	existing := make(map[uuid.UUID]bool, len(songs))
	for _, song := range songs {
		existing[song.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !existing[id] || seen[id] {
			return nil, ErrBadSongOrder
		}
		seen[id] = true
	}

	if err := s.songRepo.Reorder(ctx, playlistID, orderedIDs); err != nil {
		return nil, fmt.Errorf("reordering songs: %w", err)
	}

	return s.songRepo.ListByPlaylist(ctx, playlistID)
}

func (s *SongService) visiblePlaylist(ctx context.Context, viewerID *uuid.UUID, playlistID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, ErrPlaylistNotFound
	}
	if !playlist.IsPublic && (viewerID == nil || *viewerID != playlist.UserID) {
		return nil, ErrPlaylistNotFound
	}
	return playlist, nil
}

func (s *SongService) ownedPlaylist(ctx context.Context, userID, playlistID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, ErrPlaylistNotFound
	}
	if playlist.UserID != userID {
		return nil, ErrNotPlaylistOwner
	}
	return playlist, nil
}

func (s *SongService) ownedSong(ctx context.Context, userID, songID uuid.UUID) (*domain.Song, error) {
	song, err := s.songRepo.GetByID(ctx, songID)
	if err != nil {
		return nil, err
	}
	if song == nil {
		return nil, ErrSongNotFound
	}

	if _, err := s.ownedPlaylist(ctx, userID, song.PlaylistID); err != nil {
		return nil, err
	}
	return song, nil
}
