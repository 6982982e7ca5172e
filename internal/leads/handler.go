package leads

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"audit-backend/internal/shared/server/middleware"
	"audit-backend/internal/shared/server/respond"
	"audit-backend/internal/survey"
)

// Handler wires HTTP handlers to the lead service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches public lead routes. submit runs before the POST handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, submit ...gin.HandlerFunc) {
	handlers := make([]gin.HandlerFunc, 0, len(submit)+1)
	handlers = append(handlers, submit...)
	rg.POST("/leads", append(handlers, h.submit)...)
}

// RegisterAdminRoutes attaches admin-only lead routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/leads", h.list)
}

type submitRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"required,max=320"`
	Company string `json:"company" binding:"max=200"`
	Message string `json:"message" binding:"max=5000"`
	Source  string `json:"source" binding:"max=64"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid lead", nil)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", []map[string]string{
			{"field": "name", "issue": "required"},
		})
		return
	}
	if !survey.ValidEmail(req.Email) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid email", []map[string]string{
			{"field": "email", "issue": "invalid"},
		})
		return
	}

	lead := h.Svc.Submit(c.Request.Context(), Lead{
		Source:  req.Source,
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Message: req.Message,
	})
	c.Set(middleware.LeadIDKey, lead.ID)
	respond.JSON(c, http.StatusAccepted, gin.H{"id": lead.ID, "status": "received"})
}

func (h *Handler) list(c *gin.Context) {
	limit := 50
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 200 {
		limit = 200
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	leads, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list leads", nil)
		return
	}
	respond.OK(c, gin.H{"items": leads, "limit": limit, "offset": offset})
}
