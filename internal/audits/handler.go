package audits

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"audit-backend/internal/scoring"
	"audit-backend/internal/shared/server/middleware"
	"audit-backend/internal/shared/server/respond"
	"audit-backend/internal/survey"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Handler wires HTTP handlers to the audit service.
type Handler struct {
	Svc        *Service
	BookingURL string
	Now        func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, bookingURL string) *Handler {
	return &Handler{Svc: svc, BookingURL: bookingURL, Now: time.Now}
}

// RegisterRoutes attaches public audit routes. submit runs before the POST handlers.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, submit ...gin.HandlerFunc) {
	rg.POST("/audits", chain(submit, h.submit)...)
	rg.GET("/audits/:id", h.get)
	rg.GET("/audits/:id/report", h.report)
	rg.POST("/audits/:id/contact", chain(submit, h.updateContact)...)
}

// RegisterAdminRoutes attaches admin-only audit routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/audits", h.list)
}

type submitRequest struct {
	Answers           map[string]json.RawMessage `json:"answers"`
	Survey            *scoring.SurveyAnswers     `json:"survey"`
	Source            string                     `json:"source"`
	RevenueGoal       string                     `json:"revenueGoal"`
	ClientAcquisition []string                   `json:"clientAcquisition"`
	Company           string                     `json:"company"`
}

func (r submitRequest) submission() survey.Submission {
	if r.Survey != nil {
		return survey.Submission{
			Answers:           *r.Survey,
			RevenueGoal:       r.RevenueGoal,
			ClientAcquisition: r.ClientAcquisition,
			Company:           r.Company,
		}
	}
	return survey.Collect(r.Answers)
}

func (h *Handler) submit(c *gin.Context) {
	req := submitRequest{}
	if err := decodeOptionalJSON(c.Request.Body, &req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	audit := h.Svc.Submit(c.Request.Context(), req.submission(), req.Source)
	c.Set(middleware.AuditIDKey, audit.ID)

	respond.JSON(c, http.StatusCreated, gin.H{
		"id":        audit.ID,
		"result":    audit.Result,
		"readiness": scoring.ReadinessMessage(audit.Result.OverallScore),
		"createdAt": audit.CreatedAt,
	})
}

func (h *Handler) get(c *gin.Context) {
	audit, ok := h.load(c)
	if !ok {
		return
	}
	respond.OK(c, gin.H{
		"audit":     audit,
		"readiness": scoring.ReadinessMessage(audit.Result.OverallScore),
	})
}

func (h *Handler) report(c *gin.Context) {
	audit, ok := h.load(c)
	if !ok {
		return
	}
	body := RenderReport(audit, h.BookingURL, h.Now())
	respond.Attachment(c, ReportFileName(audit.Answers.BusinessName), "text/plain; charset=utf-8", []byte(body))
}

type contactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone"`
}

func (h *Handler) updateContact(c *gin.Context) {
	auditID, ok := auditIDParam(c)
	if !ok {
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
		return
	}
	if !survey.ValidEmail(req.Email) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid email", []map[string]string{
			{"field": "email", "issue": "invalid"},
		})
		return
	}

	audit, err := h.Svc.UpdateContact(c.Request.Context(), auditID, scoring.ContactInfo{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "audit not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update contact", nil)
		}
		return
	}
	respond.OK(c, gin.H{"id": audit.ID, "contactInfo": audit.Answers.ContactInfo})
}

func (h *Handler) list(c *gin.Context) {
	limit := defaultListLimit
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	audits, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list audits", nil)
		return
	}

	items := make([]gin.H, 0, len(audits))
	for _, a := range audits {
		items = append(items, gin.H{
			"id":           a.ID,
			"source":       a.Source,
			"businessName": a.Answers.BusinessName,
			"contactEmail": a.Answers.ContactInfo.Email,
			"overallScore": a.Result.OverallScore,
			"createdAt":    a.CreatedAt,
		})
	}
	respond.OK(c, gin.H{"items": items, "limit": limit, "offset": offset})
}

func (h *Handler) load(c *gin.Context) (Audit, bool) {
	auditID, ok := auditIDParam(c)
	if !ok {
		return Audit{}, false
	}
	audit, err := h.Svc.Get(c.Request.Context(), auditID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "audit not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch audit", nil)
		}
		return Audit{}, false
	}
	return audit, true
}

// auditIDParam responds 404 for ids that cannot name a stored audit.
func auditIDParam(c *gin.Context) (string, bool) {
	auditID := c.Param("id")
	c.Set(middleware.AuditIDKey, auditID)
	if _, err := uuid.Parse(auditID); err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "audit not found", nil)
		return "", false
	}
	return auditID, true
}

func chain(mw []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(mw)+1)
	out = append(out, mw...)
	return append(out, handler)
}

func decodeOptionalJSON(body io.ReadCloser, out any) error {
	if body == nil {
		return nil
	}
	var errInvalidJSON = errors.New("invalid json body")
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errInvalidJSON
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return errInvalidJSON
	}
	return nil
}
