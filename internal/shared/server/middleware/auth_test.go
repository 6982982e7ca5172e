package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"audit-backend/internal/shared/auth"
)

func adminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AdminAuth())
	router.GET("/api/v1/admin/leads", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"principal": PrincipalFromContext(c)})
	})
	router.OPTIONS("/api/v1/admin/leads", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestAdminAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/admin/leads", nil)
	resp := httptest.NewRecorder()
	adminRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAdminAuthRejectsMissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads", nil)
	resp := httptest.NewRecorder()
	adminRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAdminAuthRequiresAdminRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := auth.SignJWT(auth.Claims{Sub: "viewer"}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	adminRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestAdminAuthAcceptsAdminToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := auth.SignJWT(auth.Claims{Sub: "ops", Role: auth.RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/leads", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	adminRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
