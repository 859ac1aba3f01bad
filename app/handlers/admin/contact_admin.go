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

type ContactAdminHandler struct {
	repo   repositories.ContactRepository
	render *render.Render
}

func NewContactAdminHandler(repo repositories.ContactRepository, r *render.Render) *ContactAdminHandler {
	return &ContactAdminHandler{repo, r}
}

func validContactStatus(status string) bool {
	switch status {
	case models.ContactStatusNew, models.ContactStatusRead, models.ContactStatusArchived:
		return true
	}
	return false
}

func (h *ContactAdminHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !validContactStatus(status) {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid status filter"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 50
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	items, err := h.repo.List(r.Context(), status, limit, offset)
	if err != nil {
		log.Printf("ContactAdminHandler: list failed: %v", err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to load contact messages"})
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]any{
		"count": len(items),
		"items": items,
	})
}

func (h *ContactAdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	msg, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.render.JSON(w, http.StatusNotFound, map[string]any{"error": "Contact message not found"})
			return
		}
		log.Printf("ContactAdminHandler: get %s failed: %v", id, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to load contact message"})
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]any{"item": msg})
}

// patchableContactFields are the columns an admin may rewrite. Anything
// else in the payload (ids, timestamps, unknown keys) is dropped.
var patchableContactFields = map[string]bool{
	"name":     true,
	"email":    true,
	"phone":    true,
	"subject":  true,
	"message":  true,
	"order_id": true,
	"status":   true,
}

func (h *ContactAdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	fields := make(map[string]any, len(payload))
	for k, v := range payload {
		if patchableContactFields[k] {
			fields[k] = v
		}
	}
	if len(fields) == 0 {
		h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "No updatable fields provided"})
		return
	}
	if status, ok := fields["status"]; ok {
		s, isString := status.(string)
		if !isString || !validContactStatus(s) {
			h.render.JSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid status"})
			return
		}
	}

	msg, err := h.repo.Update(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.render.JSON(w, http.StatusNotFound, map[string]any{"error": "Contact message not found"})
			return
		}
		log.Printf("ContactAdminHandler: update %s failed: %v", id, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to update contact message"})
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]any{"item": msg})
}

func (h *ContactAdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.render.JSON(w, http.StatusNotFound, map[string]any{"error": "Contact message not found"})
			return
		}
		log.Printf("ContactAdminHandler: delete %s failed: %v", id, err)
		h.render.JSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to delete contact message"})
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]any{"message": "Contact message deleted successfully"})
}
