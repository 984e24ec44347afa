package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/tmarkovic/crate/internal/service"
	"github.com/tmarkovic/crate/internal/transport/http/middleware"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	resp, err := h.notificationService.List(r.Context(), middleware.UserID(r.Context()), page, limit)
	if err != nil {
		log.Printf("ERROR list notifications: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationService.UnreadCount(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		log.Printf("ERROR unread count: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"unread_count": count})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), id, middleware.UserID(r.Context())); err != nil {
		h.writeNotificationError(w, "mark read", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationService.MarkAllRead(r.Context(), middleware.UserID(r.Context())); err != nil {
		log.Printf("ERROR mark all read: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.notificationService.Delete(r.Context(), id, middleware.UserID(r.Context())); err != nil {
		h.writeNotificationError(w, "delete notification", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification deleted"})
}

func (h *NotificationHandler) writeNotificationError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, service.ErrNotificationNotFound) {
		writeError(w, http.StatusNotFound, "NOTIFICATION_NOT_FOUND", "Notification not found")
		return
	}
	log.Printf("ERROR %s: %v", op, err)
	writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
}
