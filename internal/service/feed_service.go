package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tmarkovic/crate/internal/domain"
	"github.com/tmarkovic/crate/internal/repository"
)

type FeedService struct {
	playlistRepo repository.PlaylistRepository
	followRepo   repository.FollowRepository
}

func NewFeedService(playlistRepo repository.PlaylistRepository, followRepo repository.FollowRepository) *FeedService {
	return &FeedService{
		playlistRepo: playlistRepo,
		followRepo:   followRepo,
	}
}

// Feed is personalized when a principal is bound: recent public playlists
// from followed users plus the viewer's own. Anonymous callers get public
// trending instead.
func (s *FeedService) Feed(ctx context.Context, viewerID *uuid.UUID, pageNum, limitNum int) (*PlaylistPage, error) {
	if viewerID == nil {
		return s.Trending(ctx, pageNum, limitNum)
	}

	page, limit, offset := pageBounds(pageNum, limitNum)

	ownerIDs, err := s.followRepo.FollowingIDs(ctx, *viewerID)
	if err != nil {
		return nil, err
	}
	ownerIDs = append(ownerIDs, *viewerID)

	playlists, total, err := s.playlistRepo.ListByOwners(ctx, ownerIDs, limit, offset)
	if err != nil {
		return nil, err
	}

	return &PlaylistPage{Playlists: playlists, Pagination: paginate(page, limit, total)}, nil
}

// Trending returns public playlists by like count.
func (s *FeedService) Trending(ctx context.Context, pageNum, limitNum int) (*PlaylistPage, error) {
	page, limit, offset := pageBounds(pageNum, limitNum)

	playlists, total, err := s.playlistRepo.List(ctx, repository.PlaylistFilter{
		Sort:   "popular",
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	return &PlaylistPage{Playlists: playlists, Pagination: paginate(page, limit, total)}, nil
}

// ByTag returns public playlists carrying the tag, most liked first.
func (s *FeedService) ByTag(ctx context.Context, tag string, pageNum, limitNum int) (*PlaylistPage, error) {
	page, limit, offset := pageBounds(pageNum, limitNum)

	playlists, total, err := s.playlistRepo.List(ctx, repository.PlaylistFilter{
		Tag:    tag,
		Sort:   "popular",
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	return &PlaylistPage{Playlists: playlists, Pagination: paginate(page, limit, total)}, nil
}

// SuggestedUsers returns users the viewer does not follow yet, most
// followed first.
func (s *FeedService) SuggestedUsers(ctx context.Context, viewerID uuid.UUID, pageNum, limitNum int) (*UserPage, error) {
	page, limit, offset := pageBounds(pageNum, limitNum)

	users, total, err := s.followRepo.SuggestedUsers(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}

	return &UserPage{Users: users, Pagination: paginate(page, limit, total)}, nil
}
