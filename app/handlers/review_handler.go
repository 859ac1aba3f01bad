package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/oguzk/eticaret/app/middlewares"
	"github.com/oguzk/eticaret/app/models"
	"github.com/oguzk/eticaret/app/repositories"
	"github.com/unrolled/render"
)

const anonymousReviewer = "Anonim Müşteri"

type ReviewHandler struct {
	repo      repositories.ReviewRepository
	orderRepo repositories.OrderRepository
	render    *render.Render
}

func NewReviewHandler(repo repositories.ReviewRepository, orderRepo repositories.OrderRepository, r *render.Render) *ReviewHandler {
	return &ReviewHandler{repo, orderRepo, r}
}

// maskName shows only the first letter of each name part. A five letter
// name still gets at least two asterisks so short names stay hidden.
func maskName(first, last *string) string {
	mask := func(s string) string {
		runes := []rune(strings.TrimSpace(s))
		if len(runes) == 0 {
			return ""
		}
		stars := len(runes) - 1
		if stars < 2 {
			stars = 2
		}
		return string(runes[0]) + strings.Repeat("*", stars)
	}

	var parts []string
	if first != nil {
		if m := mask(*first); m != "" {
			parts = append(parts, m)
		}
	}
	if last != nil {
		if m := mask(*last); m != "" {
			parts = append(parts, m)
		}
	}
	if len(parts) == 0 {
		return anonymousReviewer
	}
	return strings.Join(parts, " ")
}

type publicReview struct {
	ID                 string  `json:"id"`
	Rating             int     `json:"rating"`
	Title              *string `json:"title"`
	Comment            *string `json:"comment"`
	CustomerName       string  `json:"customer_name"`
	IsVerifiedPurchase bool    `json:"is_verified_purchase"`
	HelpfulCount       int     `json:"helpful_count"`
	CreatedAt          string  `json:"created_at"`
}

// ListByProduct returns a product's reviews with masked reviewer names
// plus the aggregate rating. Status defaults to approved.
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.ReviewStatusApproved
	}
	if !models.ValidReviewStatus(status) {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid status filter"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	rows, err := h.repo.ListPublic(r.Context(), productID, status, limit, offset)
	if err != nil {
		log.Printf("ReviewHandler: list reviews for product %s failed: %v", productID, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to load reviews"})
		return
	}

	stats, err := h.repo.ProductStats(r.Context(), productID)
	if err != nil {
		log.Printf("ReviewHandler: stats for product %s failed: %v", productID, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to load reviews"})
		return
	}

	reviews := make([]publicReview, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, publicReview{
			ID:                 row.ID,
			Rating:             row.Rating,
			Title:              row.Title,
			Comment:            row.Comment,
			CustomerName:       maskName(row.FirstName, row.LastName),
			IsVerifiedPurchase: row.IsVerifiedPurchase,
			HelpfulCount:       row.HelpfulCount,
			CreatedAt:          row.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	h.render.JSON(w, http.StatusOK, map[string]any{
		"reviews": reviews,
		"stats": map[string]any{
			"average_rating": stats.AverageRating,
			"total_reviews":  stats.ReviewCount,
		},
		"limit":  limit,
		"offset": offset,
	})
}

type createReviewRequest struct {
	Rating  int     `json:"rating"`
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}

// Create stores a pending review for the authenticated customer. Only
// customers with a delivered purchase of the product may review it, and
// only once.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	customerID, ok := middlewares.CustomerIDFromContext(r.Context())
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]any{"error": "Authentication required"})
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Rating must be between 1 and 5"})
		return
	}

	verified, err := h.orderRepo.HasDeliveredPurchase(r.Context(), customerID, productID)
	if err != nil {
		log.Printf("ReviewHandler: purchase check failed for customer %s product %s: %v", customerID, productID, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to create review"})
		return
	}
	if !verified {
		h.render.JSON(w, http.StatusForbidden, map[string]any{"error": "Purchase verification failed"})
		return
	}

	exists, err := h.repo.ExistsForCustomerProduct(r.Context(), customerID, productID)
	if err != nil {
		log.Printf("ReviewHandler: duplicate check failed for customer %s product %s: %v", customerID, productID, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to create review"})
		return
	}
	if exists {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Review already exists"})
		return
	}

	review := &models.ProductReview{
		CustomerID:         customerID,
		ProductID:          productID,
		Rating:             req.Rating,
		Title:              req.Title,
		Comment:            req.Comment,
		IsVerifiedPurchase: true,
		Status:             models.ReviewStatusPending,
	}
	if err := h.repo.Create(r.Context(), review); err != nil {
		log.Printf("ReviewHandler: create failed: %v", err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to create review"})
		return
	}

	h.render.JSON(w, http.StatusCreated, map[string]any{
		"message": "Review submitted and awaiting moderation",
		"review":  review,
	})
}
