package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/oguzk/eticaret/app/models"
	"github.com/oguzk/eticaret/app/repositories"
	"github.com/oguzk/eticaret/app/services"
	"github.com/unrolled/render"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ContactHandler struct {
	repo   repositories.ContactRepository
	mailer *services.Mailer
	inbox  string
	render *render.Render
}

func NewContactHandler(repo repositories.ContactRepository, mailer *services.Mailer, inbox string, r *render.Render) *ContactHandler {
	return &ContactHandler{repo, mailer, inbox, r}
}

type contactRequest struct {
	Name    *string `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Subject *string `json:"subject"`
	Message string  `json:"message"`
	OrderID *string `json:"order_id"`
}

// Create handles the public contact form submission.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Validation error",
			"details": "Email and message are required",
		})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Email == "" || req.Message == "" {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Validation error",
			"details": "Email and message are required",
		})
		return
	}
	if !emailPattern.MatchString(req.Email) {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Validation error",
			"details": "Invalid email format",
		})
		return
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		OrderID: req.OrderID,
	}
	if err := h.repo.Create(r.Context(), msg); err != nil {
		log.Printf("ContactHandler: create failed: %v", err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to save contact message"})
		return
	}

	if h.mailer != nil {
		go h.mailer.NotifyContactMessage(h.inbox, msg)
	}

	h.render.JSON(w, http.StatusCreated, map[string]any{
		"message": "Your message has been received",
		"item":    msg,
	})
}

// Fields describes the contact form so storefronts can render it without
// hardcoding the schema.
func (h *ContactHandler) Fields(w http.ResponseWriter, r *http.Request) {
	h.render.JSON(w, http.StatusOK, map[string]any{
		"message": "Contact form schema",
		"fields": map[string]any{
			"required": []string{"email", "message"},
			"optional": []string{"name", "phone", "subject", "order_id"},
		},
	})
}
