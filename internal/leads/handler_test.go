package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func setupLeadRouter(t *testing.T) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := NewMemoryRepo()
	h := NewHandler(NewService(repo, nil))

	router := gin.New()
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)
	h.RegisterAdminRoutes(api.Group("/admin"))
	return router, repo
}

func postLead(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestSubmitLeadAccepted(t *testing.T) {
	router, repo := setupLeadRouter(t)

	resp := postLead(router, `{"name":"Bo","email":"bo@x.io","company":"Acme","message":"Hello","source":"welcome_popup"}`)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", resp.Code, resp.Body.String())
	}
	var got struct {
		ID string `json:"id"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&got)
	if got.ID == "" {
		t.Fatalf("expected id in response")
	}
	stored, _ := repo.List(context.Background(), 0, 0)
	if len(stored) != 1 || stored[0].Source != "welcome_popup" || stored[0].Company != "Acme" {
		t.Fatalf("unexpected stored leads %+v", stored)
	}
}

func TestSubmitLeadValidation(t *testing.T) {
	router, repo := setupLeadRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"email":"bo@x.io"}`},
		{name: "missing email", body: `{"name":"Bo"}`},
		{name: "invalid email", body: `{"name":"Bo","email":"bo@"}`},
		{name: "blank name", body: `{"name":"   ","email":"bo@x.io"}`},
		{name: "blank email", body: `{"name":"Bo","email":"  "}`},
		{name: "malformed json", body: `{"name":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postLead(router, tt.body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
		})
	}
	if stored, _ := repo.List(context.Background(), 0, 0); len(stored) != 0 {
		t.Fatalf("invalid leads must not be stored")
	}
}

func TestSubmitLeadUnknownSourceFallsBackToContactPage(t *testing.T) {
	router, repo := setupLeadRouter(t)

	resp := postLead(router, `{"name":" Bo ","email":" bo@x.io ","source":"footer"}`)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", resp.Code, resp.Body.String())
	}
	stored, _ := repo.List(context.Background(), 0, 0)
	if len(stored) != 1 || stored[0].Source != "contact_page" || stored[0].Name != "Bo" || stored[0].Email != "bo@x.io" {
		t.Fatalf("unexpected stored leads %+v", stored)
	}
}

func TestAdminListLeads(t *testing.T) {
	router, repo := setupLeadRouter(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = repo.Create(context.Background(), Lead{ID: "old", CreatedAt: base})
	_ = repo.Create(context.Background(), Lead{ID: "new", CreatedAt: base.Add(time.Hour)})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got struct {
		Items []Lead `json:"items"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&got)
	if len(got.Items) != 2 || got.Items[0].ID != "new" {
		t.Fatalf("unexpected items %+v", got.Items)
	}
}
