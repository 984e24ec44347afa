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
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrNotPlaylistOwner = errors.New("not the playlist owner")
	ErrAlreadyLiked     = errors.New("playlist already liked")
	ErrLikeNotFound     = errors.New("like not found")
	ErrAlreadySaved     = errors.New("playlist already saved")
	ErrSaveNotFound     = errors.New("save not found")
)

type PlaylistService struct {
	playlistRepo  repository.PlaylistRepository
	songRepo      repository.SongRepository
	userRepo      repository.UserRepository
	notifications *NotificationService
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, songRepo repository.SongRepository, userRepo repository.UserRepository, notifications *NotificationService) *PlaylistService {
	return &PlaylistService{
		playlistRepo:  playlistRepo,
		songRepo:      songRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

type CreatePlaylistInput struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	CoverGradient string   `json:"cover_gradient"`
	IsPublic      *bool    `json:"is_public"`
}

type UpdatePlaylistInput struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	Tags          *[]string `json:"tags"`
	CoverGradient *string   `json:"cover_gradient"`
	IsPublic      *bool     `json:"is_public"`
}

type ListPlaylistsInput struct {
	Owner *uuid.UUID
	Tag   string
	Sort  string
	Page  int
	Limit int
}

type PlaylistPage struct {
	Playlists  []domain.Playlist `json:"playlists"`
	Pagination Pagination        `json:"pagination"`
}

type PlaylistDetail struct {
	domain.Playlist
	Songs []domain.Song `json:"songs"`
}

// List returns playlists visible to the viewer. A nil viewer sees public
// playlists only; owners additionally see their own private ones.
func (s *PlaylistService) List(ctx context.Context, viewerID *uuid.UUID, input ListPlaylistsInput) (*PlaylistPage, error) {
	page, limit, offset := pageBounds(input.Page, input.Limit)

	playlists, total, err := s.playlistRepo.List(ctx, repository.PlaylistFilter{
		OwnerID:  input.Owner,
		ViewerID: viewerID,
		Tag:      input.Tag,
		Sort:     input.Sort,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}

	if err := s.decorate(ctx, viewerID, playlists); err != nil {
		return nil, err
	}

	return &PlaylistPage{Playlists: playlists, Pagination: paginate(page, limit, total)}, nil
}

func (s *PlaylistService) Create(ctx context.Context, userID uuid.UUID, input CreatePlaylistInput) (*domain.Playlist, error) {
	now := time.Now()

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	playlist := &domain.Playlist{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     input.Title,
		Tags:      tags,
		IsPublic:  isPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Description != "" {
		playlist.Description = &input.Description
	}
	if input.CoverGradient != "" {
		playlist.CoverGradient = &input.CoverGradient
	}

	if err := s.playlistRepo.Create(ctx, playlist); err != nil {
		return nil, fmt.Errorf("creating playlist: %w", err)
	}

	if err := s.userRepo.AdjustPlaylistCount(ctx, userID, 1); err != nil {
		return nil, fmt.Errorf("updating playlist count: %w", err)
	}

	// Re-read for the denormalized owner fields.
	return s.playlistRepo.GetByID(ctx, playlist.ID)
}

// Get returns the playlist with its songs. Private playlists are reported
// as not found to anyone but the owner.
func (s *PlaylistService) Get(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) (*PlaylistDetail, error) {
	playlist, err := s.visiblePlaylist(ctx, viewerID, id)
	if err != nil {
		return nil, err
	}

	songs, err := s.songRepo.ListByPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []domain.Song{}
	}

	if viewerID != nil {
		if playlist.IsLiked, err = s.playlistRepo.IsLiked(ctx, *viewerID, id); err != nil {
			return nil, err
		}
		if playlist.IsSaved, err = s.playlistRepo.IsSaved(ctx, *viewerID, id); err != nil {
			return nil, err
		}
	}

	return &PlaylistDetail{Playlist: *playlist, Songs: songs}, nil
}

func (s *PlaylistService) Update(ctx context.Context, userID, id uuid.UUID, input UpdatePlaylistInput) (*domain.Playlist, error) {
	playlist, err := s.ownedPlaylist(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		playlist.Title = *input.Title
	}
	if input.Description != nil {
		playlist.Description = input.Description
	}
	if input.Tags != nil {
		playlist.Tags = *input.Tags
	}
	if input.CoverGradient != nil {
		playlist.CoverGradient = input.CoverGradient
	}
	if input.IsPublic != nil {
		playlist.IsPublic = *input.IsPublic
	}
	playlist.UpdatedAt = time.Now()

	if err := s.playlistRepo.Update(ctx, playlist); err != nil {
		return nil, fmt.Errorf("updating playlist: %w", err)
	}

	return playlist, nil
}

func (s *PlaylistService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	playlist, err := s.ownedPlaylist(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.playlistRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting playlist: %w", err)
	}

	return s.userRepo.AdjustPlaylistCount(ctx, playlist.UserID, -1)
}

// Like records a like and returns the new like count.
func (s *PlaylistService) Like(ctx context.Context, userID, id uuid.UUID) (int, error) {
	playlist, err := s.visiblePlaylist(ctx, &userID, id)
	if err != nil {
		return 0, err
	}

	ok, err := s.playlistRepo.Like(ctx, userID, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrAlreadyLiked
	}

	s.notifications.Emit(ctx, playlist.UserID, userID, domain.NotificationPlaylistLiked, &id)

	return playlist.LikesCount + 1, nil
}

func (s *PlaylistService) Unlike(ctx context.Context, userID, id uuid.UUID) (int, error) {
	ok, err := s.playlistRepo.Unlike(ctx, userID, id)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrLikeNotFound
	}

	playlist, err := s.playlistRepo.GetByID(ctx, id)
	if err != nil || playlist == nil {
		return 0, err
	}
	return playlist.LikesCount, nil
}

func (s *PlaylistService) Save(ctx context.Context, userID, id uuid.UUID) error {
	playlist, err := s.visiblePlaylist(ctx, &userID, id)
	if err != nil {
		return err
	}

	ok, err := s.playlistRepo.Save(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadySaved
	}

	s.notifications.Emit(ctx, playlist.UserID, userID, domain.NotificationPlaylistSaved, &id)

	return nil
}

func (s *PlaylistService) Unsave(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := s.playlistRepo.Unsave(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSaveNotFound
	}
	return nil
}

func (s *PlaylistService) ListSaved(ctx context.Context, userID uuid.UUID, pageNum, limitNum int) (*PlaylistPage, error) {
	page, limit, offset := pageBounds(pageNum, limitNum)

	playlists, total, err := s.playlistRepo.ListSaved(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	if err := s.decorate(ctx, &userID, playlists); err != nil {
		return nil, err
	}

	return &PlaylistPage{Playlists: playlists, Pagination: paginate(page, limit, total)}, nil
}

func (s *PlaylistService) visiblePlaylist(ctx context.Context, viewerID *uuid.UUID, id uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, id)
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

func (s *PlaylistService) ownedPlaylist(ctx context.Context, userID, id uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(ctx, id)
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

func (s *PlaylistService) decorate(ctx context.Context, viewerID *uuid.UUID, playlists []domain.Playlist) error {
	if viewerID == nil {
		return nil
	}
	for i := range playlists {
		liked, err := s.playlistRepo.IsLiked(ctx, *viewerID, playlists[i].ID)
		if err != nil {
			return err
		}
		saved, err := s.playlistRepo.IsSaved(ctx, *viewerID, playlists[i].ID)
		if err != nil {
			return err
		}
		playlists[i].IsLiked = liked
		playlists[i].IsSaved = saved
	}
	return nil
}
