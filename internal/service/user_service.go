package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tmarkovic/crate/internal/domain"
	"github.com/tmarkovic/crate/internal/repository"
)

var (
	ErrNotProfileOwner  = errors.New("can only change your own profile")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrFollowNotFound   = errors.New("follow not found")
)

type UserService struct {
	userRepo      repository.UserRepository
	playlistRepo  repository.PlaylistRepository
	followRepo    repository.FollowRepository
	notifications *NotificationService
}

func NewUserService(userRepo repository.UserRepository, playlistRepo repository.PlaylistRepository, followRepo repository.FollowRepository, notifications *NotificationService) *UserService {
	return &UserService{
		userRepo:      userRepo,
		playlistRepo:  playlistRepo,
		followRepo:    followRepo,
		notifications: notifications,
	}
}

type UpdateProfileInput struct {
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

type UserPage struct {
	Users      []domain.User `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

func (s *UserService) List(ctx context.Context, search string, pageNum, limitNum int) (*UserPage, error) {
	page, limit, offset := pageBounds(pageNum, limitNum)

	users, total, err := s.userRepo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}

	return &UserPage{Users: users, Pagination: paginate(page, limit, total)}, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, callerID, id uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	if callerID != id {
		return nil, ErrNotProfileOwner
	}

	if err := s.userRepo.UpdateProfile(ctx, id, input.Bio, input.AvatarURL); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	if callerID != id {
		return ErrNotProfileOwner
	}
	return s.userRepo.Delete(ctx, id)
}

// Playlists lists a user's playlists; private ones only for the owner.
func (s *UserService) Playlists(ctx context.Context, viewerID *uuid.UUID, ownerID uuid.UUID, pageNum, limitNum int) (*PlaylistPage, error) {
	if _, err := s.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	page, limit, offset := pageBounds(pageNum, limitNum)

	playlists, total, err := s.playlistRepo.List(ctx, repository.PlaylistFilter{
		OwnerID:  &ownerID,
		ViewerID: viewerID,
		Sort:     "recent",
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}

	return &PlaylistPage{Playlists: playlists, Pagination: paginate(page, limit, total)}, nil
}

func (s *UserService) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == followingID {
		return ErrSelfFollow
	}
	if _, err := s.GetByID(ctx, followingID); err != nil {
		return err
	}

	ok, err := s.followRepo.Follow(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadyFollowing
	}

	s.notifications.Emit(ctx, followingID, followerID, domain.NotificationUserFollowed, nil)

	return nil
}

func (s *UserService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	ok, err := s.followRepo.Unfollow(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrFollowNotFound
	}
	return nil
}

func (s *UserService) Followers(ctx context.Context, userID uuid.UUID, pageNum, limitNum int) (*UserPage, error) {
	page, limit, offset := pageBounds(pageNum, limitNum)

	users, total, err := s.followRepo.ListFollowers(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}

	return &UserPage{Users: users, Pagination: paginate(page, limit, total)}, nil
}

func (s *UserService) Following(ctx context.Context, userID uuid.UUID, pageNum, limitNum int) (*UserPage, error) {
	page, limit, offset := pageBounds(pageNum, limitNum)

	users, total, err := s.followRepo.ListFollowing(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}

	return &UserPage{Users: users, Pagination: paginate(page, limit, total)}, nil
}
