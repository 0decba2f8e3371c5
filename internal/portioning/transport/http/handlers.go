// Package http exposes the portioning application service over a gin
// router: one handler per calculation endpoint plus health and
// metrics probes.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/caterstack/portioning/internal/portioning/application"
	"github.com/caterstack/portioning/internal/portioning/domain"
	"github.com/caterstack/portioning/pkg/logger"
)

func init() {
	binding.EnableDecoderDisallowUnknownFields = true
}

// Handler serves the portioning HTTP API.
type Handler struct {
	service   *application.Service
	validator *validator.Validate
	logger    *logger.Logger
}

// NewHandler wires a Handler to its application service.
func NewHandler(service *application.Service, log *logger.Logger) *Handler {
	return &Handler{service: service, validator: validator.New(), logger: log}
}

// RegisterRoutes attaches every portioning route to router.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/calculate", h.Calculate)
	router.POST("/check-portions", h.CheckPortions)
	router.POST("/menus/:id/price-check", h.PriceCheck)
	router.GET("/menus/:id/preview", h.Preview)
}

// Calculate handles POST /calculate.
func (h *Handler) Calculate(c *gin.Context) {
	var req application.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	resp, err := h.service.Calculate(c.Request.Context(), req)
	if err != nil {
		h.respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckPortions handles POST /check-portions.
func (h *Handler) CheckPortions(c *gin.Context) {
	var req application.CheckPortionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	resp, err := h.service.CheckPortions(c.Request.Context(), req)
	if err != nil {
		h.respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PriceCheck handles POST /menus/:id/price-check.
func (h *Handler) PriceCheck(c *gin.Context) {
	templateID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu id"})
		return
	}

	var req application.PriceCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	resp, err := h.service.PriceCheck(c.Request.Context(), templateID, req)
	if err != nil {
		h.respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Preview handles GET /menus/:id/preview.
func (h *Handler) Preview(c *gin.Context) {
	templateID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu id"})
		return
	}

	resp, err := h.service.Preview(c.Request.Context(), templateID)
	if err != nil {
		h.respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) respondWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMenuTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDishIDMismatch), errors.Is(err, domain.ErrGuestMixRequired), errors.Is(err, domain.ErrNoPriceTier), errors.Is(err, domain.ErrNoDishes),
		errors.Is(err, domain.ErrInvalidPool), errors.Is(err, domain.ErrInvalidUnit):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("portioning request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// Health reports liveness for the /healthz probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "portioning"})
}
