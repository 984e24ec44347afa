package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/tmarkovic/crate/internal/service"
	"github.com/tmarkovic/crate/internal/transport/http/middleware"
	"github.com/tmarkovic/crate/pkg/validator"
)

type SongHandler struct {
	songService *service.SongService
}

func NewSongHandler(songService *service.SongService) *SongHandler {
	return &SongHandler{songService: songService}
}

func (h *SongHandler) List(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	songs, err := h.songService.List(r.Context(), optionalViewer(r), playlistID)
	if err != nil {
		h.writeSongError(w, "list songs", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"songs": songs})
}

func (h *SongHandler) Add(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var input service.AddSongInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateSong(input.Title, input.Artist, input.URL, input.Platform); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	song, err := h.songService.Add(r.Context(), middleware.UserID(r.Context()), playlistID, input)
	if err != nil {
		h.writeSongError(w, "add song", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"song": song})
}

func (h *SongHandler) Update(w http.ResponseWriter, r *http.Request) {
	songID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var input service.UpdateSongInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	song, err := h.songService.Update(r.Context(), middleware.UserID(r.Context()), songID, input)
	if err != nil {
		h.writeSongError(w, "update song", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"song": song})
}

func (h *SongHandler) Delete(w http.ResponseWriter, r *http.Request) {
	songID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.songService.Delete(r.Context(), middleware.UserID(r.Context()), songID); err != nil {
		h.writeSongError(w, "delete song", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Song deleted successfully"})
}

func (h *SongHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	playlistID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var input struct {
		SongIDs []uuid.UUID `json:"song_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	songs, err := h.songService.Reorder(r.Context(), middleware.UserID(r.Context()), playlistID, input.SongIDs)
	if err != nil {
		h.writeSongError(w, "reorder songs", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"songs": songs})
}

func (h *SongHandler) writeSongError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrPlaylistNotFound):
		writeError(w, http.StatusNotFound, "PLAYLIST_NOT_FOUND", "Playlist not found")
	case errors.Is(err, service.ErrSongNotFound):
		writeError(w, http.StatusNotFound, "SONG_NOT_FOUND", "Song not found")
	case errors.Is(err, service.ErrNotPlaylistOwner):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Can only modify your own playlists")
	case errors.Is(err, service.ErrBadSongOrder):
		writeError(w, http.StatusBadRequest, "INVALID_ORDER", "Reorder must include every song exactly once")
	default:
		log.Printf("ERROR %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
