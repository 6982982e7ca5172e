package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"audit-backend/internal/shared/telemetry"
)

// Context keys handlers set so the request log can correlate records.
const (
	AuditIDKey = "auditId"
	LeadIDKey  = "leadId"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if id := c.GetString(AuditIDKey); id != "" {
			fields["audit_id"] = id
		}
		if id := c.GetString(LeadIDKey); id != "" {
			fields["lead_id"] = id
		}
		if principal := PrincipalFromContext(c); principal != "" {
			fields["principal"] = principal
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			telemetry.Error("request.complete", fields)
			return
		}
		telemetry.Info("request.complete", fields)
	}
}
