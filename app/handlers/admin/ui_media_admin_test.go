package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/oguzk/eticaret/app/models"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type stubUiMediaRepo struct {
	items      map[string]*models.UiMedia
	sortOrders map[string]int
}

func newStubUiMediaRepo() *stubUiMediaRepo {
	return &stubUiMediaRepo{items: map[string]*models.UiMedia{}, sortOrders: map[string]int{}}
}

func (s *stubUiMediaRepo) ListPublic(ctx context.Context, mediaType, locale string, limit, offset int, now time.Time) ([]models.UiMedia, error) {
	return nil, nil
}

func (s *stubUiMediaRepo) ListAdmin(ctx context.Context, mediaType, locale string, limit, offset int) ([]models.UiMedia, error) {
	var out []models.UiMedia
	for _, m := range s.items {
		out = append(out, *m)
	}
	return out, nil
}

func (s *stubUiMediaRepo) Create(ctx context.Context, item *models.UiMedia) error {
	item.ID = "media-1"
	s.items[item.ID] = item
	return nil
}

func (s *stubUiMediaRepo) GetByID(ctx context.Context, id string) (*models.UiMedia, error) {
	m, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (s *stubUiMediaRepo) Update(ctx context.Context, id string, fields map[string]any) (*models.UiMedia, error) {
	m, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := fields["title"].(string); ok {
		m.Title = &v
	}
	if v, ok := fields["is_active"].(bool); ok {
		m.IsActive = v
	}
	return m, nil
}

func (s *stubUiMediaRepo) Delete(ctx context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *stubUiMediaRepo) UpdateSortOrder(ctx context.Context, id string, sortOrder int) error {
	if _, ok := s.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.sortOrders[id] = sortOrder
	return nil
}

func TestUiMediaCreateValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid carousel", `{"type":"carousel","image_url":"/uploads/a.jpg"}`, http.StatusCreated},
		{"valid banner with window", `{"type":"banner","image_url":"/uploads/b.jpg","publish_at":"2026-01-01T00:00:00Z","unpublish_at":"2026-02-01T00:00:00Z"}`, http.StatusCreated},
		{"invalid type", `{"type":"video","image_url":"/uploads/a.jpg"}`, http.StatusBadRequest},
		{"missing type", `{"image_url":"/uploads/a.jpg"}`, http.StatusBadRequest},
		{"missing image", `{"type":"banner"}`, http.StatusBadRequest},
		{"inverted window", `{"type":"banner","image_url":"/uploads/b.jpg","publish_at":"2026-02-01T00:00:00Z","unpublish_at":"2026-01-01T00:00:00Z"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewUiMediaAdminHandler(newStubUiMediaRepo(), "", render.New())

			req := httptest.NewRequest(http.MethodPost, "/admin/ui-media", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.Create(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestUiMediaReorder(t *testing.T) {
	repo := newStubUiMediaRepo()
	repo.items["a"] = &models.UiMedia{ID: "a", SortOrder: 2}
	repo.items["b"] = &models.UiMedia{ID: "b", SortOrder: 0}
	repo.items["c"] = &models.UiMedia{ID: "c", SortOrder: 1}
	handler := NewUiMediaAdminHandler(repo, "", render.New())

	body := `{"updates":[{"id":"c","sort_order":0},{"id":"a","sort_order":1},{"id":"b","sort_order":2}]}`
	req := httptest.NewRequest(http.MethodPut, "/admin/ui-media/reorder", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Reorder(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp["success"] != true {
		t.Errorf("success = %v, want true", resp["success"])
	}

	want := map[string]int{"c": 0, "a": 1, "b": 2}
	for id, order := range want {
		if repo.sortOrders[id] != order {
			t.Errorf("sort order of %s = %d, want %d", id, repo.sortOrders[id], order)
		}
	}
}

func TestUiMediaReorderUnknownID(t *testing.T) {
	repo := newStubUiMediaRepo()
	repo.items["a"] = &models.UiMedia{ID: "a"}
	handler := NewUiMediaAdminHandler(repo, "", render.New())

	body := `{"updates":[{"id":"a","sort_order":0},{"id":"ghost","sort_order":1}]}`
	req := httptest.NewRequest(http.MethodPut, "/admin/ui-media/reorder", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Reorder(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body %s", rec.Code, rec.Body.String())
	}
}

func TestUiMediaDeleteNotFound(t *testing.T) {
	handler := NewUiMediaAdminHandler(newStubUiMediaRepo(), "", render.New())

	req := httptest.NewRequest(http.MethodDelete, "/admin/ui-media/ghost", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "ghost"})
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp["error"] != "UI Media not found" {
		t.Errorf("error = %v, want UI Media not found", resp["error"])
	}
}
