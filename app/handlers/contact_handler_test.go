package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oguzk/eticaret/app/models"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type stubContactRepo struct {
	created []*models.ContactMessage
	items   map[string]*models.ContactMessage
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{items: map[string]*models.ContactMessage{}}
}

func (s *stubContactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	msg.ID = "msg-1"
	msg.Status = models.ContactStatusNew
	s.created = append(s.created, msg)
	s.items[msg.ID] = msg
	return nil
}

func (s *stubContactRepo) List(ctx context.Context, status string, limit, offset int) ([]models.ContactMessage, error) {
	var out []models.ContactMessage
	for _, m := range s.items {
		if status == "" || m.Status == status {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *stubContactRepo) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	m, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (s *stubContactRepo) Update(ctx context.Context, id string, fields map[string]any) (*models.ContactMessage, error) {
	m, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if status, ok := fields["status"].(string); ok {
		m.Status = status
	}
	return m, nil
}

func (s *stubContactRepo) Delete(ctx context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.items, id)
	return nil
}

func TestContactCreate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantDetails string
	}{
		{
			name:       "valid message",
			body:       `{"email":"ayse@example.com","message":"Siparişim nerede?","subject":"Kargo"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:        "missing email",
			body:        `{"message":"merhaba"}`,
			wantStatus:  http.StatusBadRequest,
			wantDetails: "Email and message are required",
		},
		{
			name:        "missing message",
			body:        `{"email":"ayse@example.com"}`,
			wantStatus:  http.StatusBadRequest,
			wantDetails: "Email and message are required",
		},
		{
			name:        "invalid email",
			body:        `{"email":"not-an-email","message":"merhaba"}`,
			wantStatus:  http.StatusBadRequest,
			wantDetails: "Invalid email format",
		},
		{
			name:        "malformed json",
			body:        `{`,
			wantStatus:  http.StatusBadRequest,
			wantDetails: "Email and message are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubContactRepo()
			handler := NewContactHandler(repo, nil, "", render.New())

			req := httptest.NewRequest(http.MethodPost, "/store/contact", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.Create(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var resp map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid response JSON: %v", err)
			}

			if tt.wantStatus == http.StatusCreated {
				if len(repo.created) != 1 {
					t.Fatalf("created %d messages, want 1", len(repo.created))
				}
				if repo.created[0].Status != models.ContactStatusNew {
					t.Errorf("status = %q, want %q", repo.created[0].Status, models.ContactStatusNew)
				}
				if resp["item"] == nil {
					t.Error("response missing item")
				}
				return
			}

			if resp["error"] != "Validation error" {
				t.Errorf("error = %v, want Validation error", resp["error"])
			}
			if resp["details"] != tt.wantDetails {
				t.Errorf("details = %v, want %q", resp["details"], tt.wantDetails)
			}
			if len(repo.created) != 0 {
				t.Errorf("created %d messages, want 0", len(repo.created))
			}
		})
	}
}

func TestContactFields(t *testing.T) {
	handler := NewContactHandler(newStubContactRepo(), nil, "", render.New())

	req := httptest.NewRequest(http.MethodGet, "/store/contact", nil)
	rec := httptest.NewRecorder()
	handler.Fields(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Message string `json:"message"`
		Fields  struct {
			Required []string `json:"required"`
			Optional []string `json:"optional"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}

	want := []string{"email", "message"}
	if len(resp.Fields.Required) != len(want) {
		t.Fatalf("required = %v, want %v", resp.Fields.Required, want)
	}
	for i, name := range want {
		if resp.Fields.Required[i] != name {
			t.Errorf("required[%d] = %q, want %q", i, resp.Fields.Required[i], name)
		}
	}
	if len(resp.Fields.Optional) == 0 {
		t.Error("optional fields missing")
	}
}
