package admin

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/oguzk/eticaret/app/models"
	"github.com/oguzk/eticaret/app/repositories"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type ReviewAdminHandler struct {
	repo   repositories.ReviewRepository
	render *render.Render
}

func NewReviewAdminHandler(repo repositories.ReviewRepository, r *render.Render) *ReviewAdminHandler {
	return &ReviewAdminHandler{repo, r}
}

// List returns reviews with customer and product context for moderation,
// plus per-product rating aggregates over the approved set.
func (h *ReviewAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !models.ValidReviewStatus(status) {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid status filter"})
		return
	}
	productID := r.URL.Query().Get("product_id")

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 50
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	rows, total, err := h.repo.ListAdmin(r.Context(), status, productID, limit, offset)
	if err != nil {
		log.Printf("ReviewAdminHandler: list failed: %v", err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to load reviews"})
		return
	}

	stats, err := h.repo.ApprovedStatsByProduct(r.Context())
	if err != nil {
		log.Printf("ReviewAdminHandler: stats failed: %v", err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to load reviews"})
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]any{
		"reviews": rows,
		"count":   total,
		"stats":   stats,
		"limit":   limit,
		"offset":  offset,
	})
}

type updateReviewRequest struct {
	Status *string `json:"status"`
}

// UpdateStatus moves a review between pending, approved and rejected.
func (h *ReviewAdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == nil {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Status is required"})
		return
	}
	if !models.ValidReviewStatus(*req.Status) {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid status"})
		return
	}

	review, err := h.repo.SetStatus(r.Context(), id, *req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.render.JSON(w, http.StatusNotFound, map[string]any{"error": "Review not found"})
			return
		}
		log.Printf("ReviewAdminHandler: update %s failed: %v", id, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to update review"})
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]any{"review": review})
}

func (h *ReviewAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.repo.SoftDelete(r.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.render.JSON(w, http.StatusNotFound, map[string]any{"error": "Review not found"})
			return
		}
		log.Printf("ReviewAdminHandler: delete %s failed: %v", id, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to delete review"})
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]any{"message": "Review deleted successfully"})
}
