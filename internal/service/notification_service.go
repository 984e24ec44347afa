package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/tmarkovic/crate/internal/domain"
	"github.com/tmarkovic/crate/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notifier pushes a notification to its recipient in real time, if the
// recipient is connected.
type Notifier interface {
	NotifyNotification(n *domain.Notification)
}

type NotificationService struct {
	notificationRepo repository.NotificationRepository
	notifier         Notifier
}

func NewNotificationService(notificationRepo repository.NotificationRepository, notifier Notifier) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		notifier:         notifier,
	}
}

// Emit records a notification and pushes it to the recipient. Self-actions
// are dropped, and a failed write never fails the triggering request.
func (s *NotificationService) Emit(ctx context.Context, userID, actorID uuid.UUID, notifType string, playlistID *uuid.UUID) {
	if userID == actorID {
		return
	}

	n := &domain.Notification{
		ID:         uuid.New(),
		UserID:     userID,
		ActorID:    actorID,
		Type:       notifType,
		PlaylistID: playlistID,
		CreatedAt:  time.Now(),
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("notification: create failed for %s: %v", userID, err)
		return
	}

	if s.notifier != nil {
		s.notifier.NotifyNotification(n)
	}
}

type NotificationPage struct {
	Notifications []domain.Notification `json:"notifications"`
	Pagination    Pagination            `json:"pagination"`
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, pageNum, limitNum int) (*NotificationPage, error) {
	page, limit, offset := pageBounds(pageNum, limitNum)

	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}

	return &NotificationPage{
		Notifications: notifications,
		Pagination:    paginate(page, limit, total),
	}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.notificationRepo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.notificationRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}
