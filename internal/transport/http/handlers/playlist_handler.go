package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/tmarkovic/crate/internal/service"
	"github.com/tmarkovic/crate/internal/transport/http/middleware"
	"github.com/tmarkovic/crate/pkg/validator"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// List serves both anonymous and authenticated callers; the optional
// principal decides private-playlist visibility and like/save flags.
func (h *PlaylistHandler) List(w http.ResponseWriter, r *http.Request) {
	viewerID := optionalViewer(r)
	page, limit := pageParams(r)

	input := service.ListPlaylistsInput{
		Tag:   r.URL.Query().Get("tag"),
		Sort:  r.URL.Query().Get("sort"),
		Page:  page,
		Limit: limit,
	}

	if owner := r.URL.Query().Get("user"); owner != "" {
		ownerID, err := uuid.Parse(owner)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
			return
		}
		input.Owner = &ownerID
	}

	resp, err := h.playlistService.List(r.Context(), viewerID, input)
	if err != nil {
		log.Printf("ERROR list playlists: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	var input service.CreatePlaylistInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidatePlaylist(input.Title, input.Tags, input.CoverGradient); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	playlist, err := h.playlistService.Create(r.Context(), userID, input)
	if err != nil {
		log.Printf("ERROR create playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"playlist": playlist})
}

func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.playlistService.Get(r.Context(), optionalViewer(r), id)
	if err != nil {
		h.writePlaylistError(w, "get playlist", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"playlist": detail})
}

func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var input service.UpdatePlaylistInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidatePlaylistUpdate(input.Title, input.Tags, input.CoverGradient); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	playlist, err := h.playlistService.Update(r.Context(), middleware.UserID(r.Context()), id, input)
	if err != nil {
		h.writePlaylistError(w, "update playlist", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"playlist": playlist})
}

func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.playlistService.Delete(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		h.writePlaylistError(w, "delete playlist", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Playlist deleted successfully"})
}

func (h *PlaylistHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	likes, err := h.playlistService.Like(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		h.writePlaylistError(w, "like playlist", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"likes_count": likes})
}

func (h *PlaylistHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	likes, err := h.playlistService.Unlike(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		h.writePlaylistError(w, "unlike playlist", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"likes_count": likes})
}

func (h *PlaylistHandler) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.playlistService.Save(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		h.writePlaylistError(w, "save playlist", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Playlist saved successfully"})
}

func (h *PlaylistHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.playlistService.Unsave(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		h.writePlaylistError(w, "unsave playlist", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Playlist unsaved successfully"})
}

func (h *PlaylistHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	resp, err := h.playlistService.ListSaved(r.Context(), middleware.UserID(r.Context()), page, limit)
	if err != nil {
		log.Printf("ERROR list saved: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *PlaylistHandler) writePlaylistError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrPlaylistNotFound):
		writeError(w, http.StatusNotFound, "PLAYLIST_NOT_FOUND", "Playlist not found")
	case errors.Is(err, service.ErrNotPlaylistOwner):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Can only modify your own playlists")
	case errors.Is(err, service.ErrAlreadyLiked):
		writeError(w, http.StatusConflict, "ALREADY_LIKED", "Already liked this playlist")
	case errors.Is(err, service.ErrLikeNotFound):
		writeError(w, http.StatusNotFound, "LIKE_NOT_FOUND", "Like not found")
	case errors.Is(err, service.ErrAlreadySaved):
		writeError(w, http.StatusConflict, "ALREADY_SAVED", "Already saved this playlist")
	case errors.Is(err, service.ErrSaveNotFound):
		writeError(w, http.StatusNotFound, "SAVE_NOT_FOUND", "Save not found")
	default:
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}

// optionalViewer returns the bound principal, or nil for anonymous callers.
func optionalViewer(r *http.Request) *uuid.UUID {
	if userID, ok := middleware.UserIDOK(r.Context()); ok {
		return &userID
	}
	return nil
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}
