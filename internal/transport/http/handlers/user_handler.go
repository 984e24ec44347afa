package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/tmarkovic/crate/internal/service"
	"github.com/tmarkovic/crate/internal/transport/http/middleware"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	resp, err := h.userService.List(r.Context(), r.URL.Query().Get("search"), page, limit)
	if err != nil {
		log.Printf("ERROR list users: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		h.writeUserError(w, "get user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		h.writeUserError(w, "get user by username", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var input service.UpdateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), middleware.UserID(r.Context()), id, input)
	if err != nil {
		h.writeUserError(w, "update user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		h.writeUserError(w, "delete user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}

func (h *UserHandler) Playlists(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	page, limit := pageParams(r)

	resp, err := h.userService.Playlists(r.Context(), optionalViewer(r), id, page, limit)
	if err != nil {
		h.writeUserError(w, "user playlists", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.userService.Follow(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		h.writeUserError(w, "follow user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User followed successfully"})
}

func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.userService.Unfollow(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		h.writeUserError(w, "unfollow user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User unfollowed successfully"})
}

func (h *UserHandler) Followers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	page, limit := pageParams(r)

	resp, err := h.userService.Followers(r.Context(), id, page, limit)
	if err != nil {
		h.writeUserError(w, "user followers", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) Following(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	page, limit := pageParams(r)

	resp, err := h.userService.Following(r.Context(), id, page, limit)
	if err != nil {
		h.writeUserError(w, "user following", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) writeUserError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrNotProfileOwner):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Can only change your own profile")
	case errors.Is(err, service.ErrSelfFollow):
		writeError(w, http.StatusBadRequest, "SELF_FOLLOW", "Cannot follow yourself")
	case errors.Is(err, service.ErrAlreadyFollowing):
		writeError(w, http.StatusConflict, "ALREADY_FOLLOWING", "Already following this user")
	case errors.Is(err, service.ErrFollowNotFound):
		writeError(w, http.StatusNotFound, "FOLLOW_NOT_FOUND", "Follow not found")
	default:
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
