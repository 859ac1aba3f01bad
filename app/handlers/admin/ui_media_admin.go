package admin

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/oguzk/eticaret/app/models"
	"github.com/oguzk/eticaret/app/repositories"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type UiMediaAdminHandler struct {
	repo      repositories.UiMediaRepository
	uploadDir string
	render    *render.Render
}

func NewUiMediaAdminHandler(repo repositories.UiMediaRepository, uploadDir string, r *render.Render) *UiMediaAdminHandler {
	return &UiMediaAdminHandler{repo, uploadDir, r}
}

func (h *UiMediaAdminHandler) List(w http.ResponseWriter, r *http.Request) {
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

	items, err := h.repo.ListAdmin(r.Context(), mediaType, locale, limit, offset)
	if err != nil {
		log.Printf("UiMediaAdminHandler: list failed: %v", err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to load media"})
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

type uiMediaRequest struct {
	Type        *string    `json:"type"`
	Title       *string    `json:"title"`
	ImageURL    *string    `json:"image_url"`
	LinkURL     *string    `json:"link_url"`
	SortOrder   *int       `json:"sort_order"`
	IsActive    *bool      `json:"is_active"`
	Locale      *string    `json:"locale"`
	PublishAt   *time.Time `json:"publish_at"`
	UnpublishAt *time.Time `json:"unpublish_at"`
}

func (h *UiMediaAdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req uiMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}
	if req.Type == nil || !models.ValidUiMediaType(*req.Type) {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid media type"})
		return
	}
	if req.ImageURL == nil || *req.ImageURL == "" {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "image_url is required"})
		return
	}
	if req.PublishAt != nil && req.UnpublishAt != nil && !req.PublishAt.Before(*req.UnpublishAt) {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "publish_at must be before unpublish_at"})
		return
	}

	item := &models.UiMedia{
		Type:        *req.Type,
		Title:       req.Title,
		ImageURL:    *req.ImageURL,
		LinkURL:     req.LinkURL,
		IsActive:    true,
		PublishAt:   req.PublishAt,
		UnpublishAt: req.UnpublishAt,
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.Locale != nil {
		item.Locale = *req.Locale
	}

	if err := h.repo.Create(r.Context(), item); err != nil {
		log.Printf("UiMediaAdminHandler: create failed: %v", err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to create media"})
		return
	}
	h.render.JSON(w, http.StatusCreated, map[string]any{"item": item})
}

func (h *UiMediaAdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	item, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.render.JSON(w, http.StatusNotFound, map[string]any{"error": "UI Media not found"})
			return
		}
		log.Printf("UiMediaAdminHandler: get %s failed: %v", id, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to load media"})
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]any{"item": item})
}

func (h *UiMediaAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req uiMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}
	if req.Type != nil && !models.ValidUiMediaType(*req.Type) {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid media type"})
		return
	}

	fields := map[string]any{}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	if req.LinkURL != nil {
		fields["link_url"] = *req.LinkURL
	}
	if req.SortOrder != nil {
		fields["sort_order"] = *req.SortOrder
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.Locale != nil {
		fields["locale"] = *req.Locale
	}
	if req.PublishAt != nil {
		fields["publish_at"] = *req.PublishAt
	}
	if req.UnpublishAt != nil {
		fields["unpublish_at"] = *req.UnpublishAt
	}
	if len(fields) == 0 {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "No fields to update"})
		return
	}

	item, err := h.repo.Update(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.render.JSON(w, http.StatusNotFound, map[string]any{"error": "UI Media not found"})
			return
		}
		log.Printf("UiMediaAdminHandler: update %s failed: %v", id, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to update media"})
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]any{"item": item})
}

// Delete removes the record and makes a best effort attempt at removing
// the uploaded file behind image_url. A missing file never fails the
// request.
func (h *UiMediaAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	item, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.render.JSON(w, http.StatusNotFound, map[string]any{"error": "UI Media not found"})
			return
		}
		log.Printf("UiMediaAdminHandler: get %s failed: %v", id, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to delete media"})
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Printf("UiMediaAdminHandler: delete %s failed: %v", id, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to delete media"})
		return
	}

	if h.uploadDir != "" && item.ImageURL != "" {
		filename := path.Base(item.ImageURL)
		if filename != "." && filename != "/" {
			if err := os.Remove(filepath.Join(h.uploadDir, filename)); err != nil && !os.IsNotExist(err) {
				log.Printf("UiMediaAdminHandler: could not remove file %s: %v", filename, err)
			}
		}
	}

	h.render.JSON(w, http.StatusOK, map[string]any{"message": "UI Media deleted successfully"})
}

type reorderUpdate struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sort_order"`
}

type reorderRequest struct {
	Updates []reorderUpdate `json:"updates"`
}

// Reorder applies each sort_order update one by one. A partial failure
// leaves the earlier rows reordered.
func (h *UiMediaAdminHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Updates) == 0 {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "updates is required"})
		return
	}

	for _, update := range req.Updates {
		if update.ID == "" {
			h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "updates entries need an id"})
			return
		}
		if err := h.repo.UpdateSortOrder(r.Context(), update.ID, update.SortOrder); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				h.render.JSON(w, http.StatusNotFound, map[string]any{"error": "UI Media not found"})
				return
			}
			log.Printf("UiMediaAdminHandler: reorder %s failed: %v", update.ID, err)
			h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to reorder media"})
			return
		}
	}
	h.render.JSON(w, http.StatusOK, map[string]any{"success": true})
}
