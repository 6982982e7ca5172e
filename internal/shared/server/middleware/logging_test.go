package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"audit-backend/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID(), Logging())
	router.POST("/api/v1/audits", func(c *gin.Context) {
		c.Set(AuditIDKey, "audit-1")
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	defer telemetry.SetOutput(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/audits", nil)
	req.Header.Set("X-Request-Id", "req-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	required := []string{"request_id", "audit_id", "duration_ms", "status", "route", "level"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["request_id"] != "req-123" {
		t.Fatalf("unexpected request_id: %v", payload["request_id"])
	}
	if payload["audit_id"] != "audit-1" {
		t.Fatalf("unexpected audit_id: %v", payload["audit_id"])
	}
	if payload["route"] != "/api/v1/audits" {
		t.Fatalf("unexpected route: %v", payload["route"])
	}
	if _, ok := payload["lead_id"]; ok {
		t.Fatalf("lead_id should be omitted when unset")
	}
}

func TestLoggingServerErrorsAtErrorLevel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Logging())
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusBadGateway)
	})

	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	defer telemetry.SetOutput(nil)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}
	if payload["level"] != "error" {
		t.Fatalf("expected error level, got %v", payload["level"])
	}
}

func TestRequestIDReplacesInvalidHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	var fromCtx string
	router.GET("/x", func(c *gin.Context) {
		fromCtx = RequestIDFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "has space")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	got := resp.Header().Get("X-Request-Id")
	if got == "" || got == "has space" {
		t.Fatalf("expected generated request id, got %q", got)
	}
	if fromCtx != got {
		t.Fatalf("request context id %q does not match header %q", fromCtx, got)
	}
}
