package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/gin-gonic/gin"
	"github.com/wizerservices/tripz-api/internal/ai"
	"github.com/wizerservices/tripz-api/internal/logger"
	"github.com/wizerservices/tripz-api/internal/models"
	"github.com/wizerservices/tripz-api/internal/schema"
	"go.uber.org/zap"
)

// requiredParam returns the trimmed query parameter or an error naming it.
func requiredParam(c *gin.Context, name string) (string, error) {
	value := strings.TrimSpace(c.Query(name))
	if value == "" {
		return "", fmt.Errorf("missing required parameter %q", name)
	}
	return value, nil
}

// parseIntParam parses a required, non-negative integer query parameter.
func parseIntParam(c *gin.Context, name string) (int, error) {
	value, err := requiredParam(c, name)
	if err != nil {
		return 0, err
	}
	if !govalidator.IsInt(value) {
		return 0, fmt.Errorf("parameter %q must be an integer", name)
	}
	parsed, err := govalidator.ToInt(value)
	if err != nil {
		return 0, fmt.Errorf("parameter %q is out of range", name)
	}
	if parsed < 0 || parsed > int64(^uint32(0)>>1) {
		return 0, fmt.Errorf("parameter %q is out of range", name)
	}
	return int(parsed), nil
}

func requestLogger(c *gin.Context) *zap.Logger {
	id, _ := c.Get("request_id")
	requestID, _ := id.(string)
	return logger.WithRequestID(requestID)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error(), Code: models.ErrCodeBadRequest})
}

// respondError maps a pipeline failure onto an HTTP status and error body.
func respondError(c *gin.Context, op string, err error) {
	log := requestLogger(c).With(zap.String("op", op), zap.Error(err))

	var (
		pErr *ai.ProviderError
		vErr *schema.ValidationError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn("request timed out")
		c.JSON(http.StatusGatewayTimeout, models.ErrorResponse{
			Error: "The request timed out",
			Code:  models.ErrCodeTimeout,
		})
	case errors.As(err, &pErr):
		log.Error("upstream provider failed", zap.String("provider", pErr.Provider), zap.Int("upstream_status", pErr.StatusCode))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: fmt.Sprintf("The %s provider is unavailable", pErr.Provider),
			Code:  models.ErrCodeProviderUnavailable,
		})
	case errors.As(err, &vErr):
		log.Error("model output did not match the schema", zap.String("path", vErr.Path))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: "The language model returned an invalid response",
			Code:  models.ErrCodeInvalidModelOutput,
		})
	default:
		log.Error("request failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Internal server error",
			Code:  models.ErrCodeInternal,
		})
	}
}
