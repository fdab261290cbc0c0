package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postcraft/backend/internal/features/config/application"
	contentdomain "postcraft/backend/internal/features/content/domain"
	"postcraft/backend/internal/middleware"
)

// ValidateRequest is the body of POST /api/validate.
type ValidateRequest struct {
	Platform    string `json:"platform"`
	ContentType string `json:"contentType"`
}

// ValidateResponse reports whether a platform and content type pair exists.
type ValidateResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// OptionsHandler holds the options service.
type OptionsHandler struct {
	optionsService application.OptionsService
	logger         *zap.Logger
}

// NewOptionsHandler creates a new OptionsHandler.
func NewOptionsHandler(optionsService application.OptionsService, logger *zap.Logger) *OptionsHandler {
	return &OptionsHandler{optionsService: optionsService, logger: logger}
}

// GetOptionsHandler lists platforms and content types from the templates.
func (h *OptionsHandler) GetOptionsHandler(c *gin.Context) {
	opts, err := h.optionsService.Options(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load options",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load options"})
		return
	}
	c.JSON(http.StatusOK, opts)
}

// GetPlatformsHandler lists every platform alias and its credential group.
func (h *OptionsHandler) GetPlatformsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"platforms": h.optionsService.Platforms()})
}

// GetModelsHandler lists the fallback chain and the edit model.
func (h *OptionsHandler) GetModelsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.optionsService.Models())
}

// ValidateHandler checks a platform and content type against the templates.
func (h *OptionsHandler) ValidateHandler(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ValidateResponse{Error: "Invalid request body"})
		return
	}

	err := h.optionsService.Validate(c.Request.Context(), req.ContentType, req.Platform)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, ValidateResponse{Valid: true})
	case contentdomain.IsInputError(err):
		var de *contentdomain.Error
		message := err.Error()
		if errors.As(err, &de) {
			message = de.Message
		}
		c.JSON(http.StatusBadRequest, ValidateResponse{Error: message})
	default:
		h.logger.Error("Failed to validate options",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ValidateResponse{Error: "Failed to load prompt configuration"})
	}
}
