package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audit-backend/internal/audits"
	"audit-backend/internal/leads"
	"audit-backend/internal/services/health"
	"audit-backend/internal/shared/config"
	"audit-backend/internal/shared/metrics"
	"audit-backend/internal/shared/server/middleware"
	"audit-backend/internal/shared/server/respond"
	"audit-backend/internal/survey"
)

const submitRateGroup = "SUBMIT"

// RouterDeps collects the handlers the router mounts. Nil handlers are skipped.
type RouterDeps struct {
	Config       config.Config
	Health       *health.Service
	AuditHandler *audits.Handler
	LeadHandler  *leads.Handler
	Limiter      *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		st := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !st.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, st)
	})
	api.GET("/survey/questions", func(c *gin.Context) {
		respond.OK(c, gin.H{"questions": survey.Questions()})
	})

	submit := submitMiddleware(deps)
	admin := api.Group("/admin", middleware.AdminAuth())
	if deps.AuditHandler != nil {
		deps.AuditHandler.RegisterRoutes(api, submit...)
		deps.AuditHandler.RegisterAdminRoutes(admin)
	}
	if deps.LeadHandler != nil {
		deps.LeadHandler.RegisterRoutes(api, submit...)
		deps.LeadHandler.RegisterAdminRoutes(admin)
	}

	return r
}

func submitMiddleware(deps RouterDeps) []gin.HandlerFunc {
	rl := deps.Config.RateLimit
	if rl.SubmitRate <= 0 || rl.SubmitBurst <= 0 {
		return nil
	}
	return []gin.HandlerFunc{middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: submitRateGroup,
		Limiter:      deps.Limiter,
		Rules: map[string]middleware.RateLimitRule{
			submitRateGroup: {Rate: rl.SubmitRate, Burst: rl.SubmitBurst},
		},
	})}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
