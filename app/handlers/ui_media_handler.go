package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/oguzk/eticaret/app/models"
	"github.com/oguzk/eticaret/app/repositories"
	"github.com/unrolled/render"
)

type UiMediaHandler struct {
	repo   repositories.UiMediaRepository
	render *render.Render
}

func NewUiMediaHandler(repo repositories.UiMediaRepository, r *render.Render) *UiMediaHandler {
	return &UiMediaHandler{repo, r}
}

// List returns the active media items currently inside their publish
// window, ordered for display.
func (h *UiMediaHandler) List(w http.ResponseWriter, r *http.Request) {
	mediaType := r.URL.Query().Get("type")
	if mediaType != "" && !models.ValidUiMediaType(mediaType) {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid media type"})
		return
	}
	locale := r.URL.Query().Get("locale")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 50
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	items, err := h.repo.ListPublic(r.Context(), mediaType, locale, limit, offset, time.Now())
	if err != nil {
		log.Printf("UiMediaHandler: list failed: %v", err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to load media"})
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}
