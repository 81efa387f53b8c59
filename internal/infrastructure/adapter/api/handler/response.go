package handler

import (
	"errors"

	domainerr "github.com/contactbot/payment-processor/internal/domain/error"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// respondError writes the standardized error body for err
func respondError(c *gin.Context, status int, err error, message string) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}

// logFields returns the structured fields of a domain error, or just its message
func logFields(err error) map[string]any {
	var withFields interface{ LogFields() map[string]any }
	if errors.As(err, &withFields) {
		fields := withFields.LogFields()
		if _, ok := fields["error"]; !ok {
			fields["error"] = err.Error()
		}
		return fields
	}
	return map[string]any{"error": err.Error()}
}
