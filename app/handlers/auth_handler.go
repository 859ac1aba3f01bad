package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oguzk/eticaret/app/middlewares"
	"github.com/oguzk/eticaret/app/repositories"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	customerRepo repositories.CustomerRepository
	jwtSecret    string
	render       *render.Render
}

func NewAuthHandler(customerRepo repositories.CustomerRepository, jwtSecret string, r *render.Render) *AuthHandler {
	return &AuthHandler{customerRepo, jwtSecret, r}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges valid credentials for a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Email and password are required"})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Email and password are required"})
		return
	}

	customer, err := h.customerRepo.FindByEmail(r.Context(), req.Email)
	if err != nil || !customer.CheckPassword(req.Password) {
		h.render.JSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid email or password"})
		return
	}

	claims := middlewares.Claims{
		CustomerID: customer.ID,
		Role:       customer.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   customer.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		log.Printf("AuthHandler: token signing failed: %v", err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to issue token"})
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]any{
		"token":    signed,
		"customer": customer,
	})
}

// Me returns the authenticated customer's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middlewares.CustomerIDFromContext(r.Context())
	if !ok {
		h.render.JSON(w, http.StatusUnauthorized, map[string]any{"error": "Authentication required"})
		return
	}
	customer, err := h.customerRepo.FindByID(r.Context(), customerID)
	if err != nil {
		h.render.JSON(w, http.StatusNotFound, map[string]any{"error": "Customer not found"})
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]any{"customer": customer})
}
