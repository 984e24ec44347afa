package handlers

import (
	"log"
	"net/http"

	"github.com/tmarkovic/crate/internal/service"
	"github.com/tmarkovic/crate/internal/transport/http/middleware"
)

type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// Feed is personalized when a principal is bound, public trending when not.
func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	resp, err := h.feedService.Feed(r.Context(), optionalViewer(r), page, limit)
	if err != nil {
		log.Printf("ERROR feed: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *FeedHandler) Trending(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	resp, err := h.feedService.Trending(r.Context(), page, limit)
	if err != nil {
		log.Printf("ERROR trending: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *FeedHandler) ByTag(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")
	if tag == "" {
		writeError(w, http.StatusBadRequest, "MISSING_TAG", "Tag is required")
		return
	}
	page, limit := pageParams(r)

	resp, err := h.feedService.ByTag(r.Context(), tag, page, limit)
	if err != nil {
		log.Printf("ERROR playlists by tag: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tag":        tag,
		"playlists":  resp.Playlists,
		"pagination": resp.Pagination,
	})
}

func (h *FeedHandler) SuggestedUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	resp, err := h.feedService.SuggestedUsers(r.Context(), middleware.UserID(r.Context()), page, limit)
	if err != nil {
		log.Printf("ERROR suggested users: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
