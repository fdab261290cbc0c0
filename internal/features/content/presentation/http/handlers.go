package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postcraft/backend/internal/features/content/application"
	"postcraft/backend/internal/features/content/domain"
	"postcraft/backend/internal/middleware"
)

const (
	generateFailedMessage = "Failed to generate content"
	editFailedMessage     = "Failed to process edit request"
)

// ContentHandler holds the content service.
type ContentHandler struct {
	contentService application.ContentService
	legacyErrors   bool
	logger         *zap.Logger
}

// NewContentHandler creates a new ContentHandler. With legacyErrors set every
// failure is a bare 500 carrying only the generic message.
func NewContentHandler(contentService application.ContentService, legacyErrors bool, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		legacyErrors:   legacyErrors,
		logger:         logger,
	}
}

// GenerateHandler handles the request to generate new platform content.
func (h *ContentHandler) GenerateHandler(c *gin.Context) {
	var req domain.GenerateRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, "Error in generate endpoint", generateFailedMessage, err)
		return
	}

	content, err := h.contentService.Generate(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, "Error in generate endpoint", generateFailedMessage, err)
		return
	}

	c.JSON(http.StatusOK, domain.ContentResponse{Content: content})
}

// ChatHandler handles the request to edit existing content.
func (h *ContentHandler) ChatHandler(c *gin.Context) {
	var req domain.EditRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, "Error in chat endpoint", editFailedMessage, err)
		return
	}

	content, err := h.contentService.Edit(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, "Error in chat endpoint", editFailedMessage, err)
		return
	}

	c.JSON(http.StatusOK, domain.ContentResponse{Content: content})
}

// bindJSON decodes the body into req. An empty body leaves req zeroed so the
// missing fields fail downstream like absent ones.
func bindJSON(c *gin.Context, req any) error {
	err := c.ShouldBindJSON(req)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return domain.Wrapf(domain.ErrInvalidRequest, err, "Invalid request body")
}

// fail logs the full error and responds with the generic message only.
func (h *ContentHandler) fail(c *gin.Context, logMessage, publicMessage string, err error) {
	h.logger.Error(logMessage,
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("code", string(domain.CodeOf(err))),
		zap.Error(err))
	_ = c.Error(err)

	if h.legacyErrors {
		c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: publicMessage})
		return
	}
	c.JSON(ErrorStatus(err), domain.ErrorResponse{Error: publicMessage, Code: domain.CodeOf(err)})
}

// ErrorStatus maps an error kind to its HTTP status.
func ErrorStatus(err error) int {
	switch {
	case domain.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAllModelsRateLimited):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrCancelled):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
