package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	domainerr "github.com/contactbot/payment-processor/internal/domain/error"
	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/domain/port/usecase"
	"github.com/contactbot/payment-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// MaxNotificationSize caps the accepted notification body
const MaxNotificationSize = 64 << 10

// notificationAck is the body the gateway expects on success
const notificationAck = "OK"

// NotificationHandler receives status callbacks from the payment gateway
type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	validate            *validator.Validate
	logger              coreport.Logger
}

// NewNotificationHandler creates a new notification handler instance
func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, logger coreport.Logger) *NotificationHandler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		validate:            v,
		logger:              logger,
	}
}

// ReceiveNotification handles the POST /api/v2/Notification endpoint
func (h *NotificationHandler) ReceiveNotification(c *gin.Context) {
	raw, req, err := h.decode(c.Request.Body)
	if err != nil {
		h.logger.Warn("Invalid gateway notification", logFields(err))
		respondError(c, http.StatusBadRequest, err, "Invalid notification")
		return
	}

	_, err = h.notificationUseCase.ProcessNotification(c.Request.Context(), req.ToEntity(raw))
	switch {
	case err == nil:
		c.String(http.StatusOK, notificationAck)
	case domainerr.IsAuthenticationError(err):
		respondError(c, http.StatusForbidden, err, "Invalid token")
	default:
		respondError(c, http.StatusInternalServerError, err, "Notification could not be processed")
	}
}

// decode reads the body strictly: unknown fields, trailing data and
// schema violations are all validation errors
func (h *NotificationHandler) decode(body io.Reader) ([]byte, *dto.NotificationRequest, error) {
	raw, err := io.ReadAll(io.LimitReader(body, MaxNotificationSize+1))
	if err != nil {
		return nil, nil, domainerr.NewValidationError("notification", "unreadable body", err)
	}
	if len(raw) > MaxNotificationSize {
		return nil, nil, domainerr.NewValidationError("notification", "body too large", nil)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()

	var req dto.NotificationRequest
	if err := decoder.Decode(&req); err != nil {
		return nil, nil, domainerr.NewValidationError("notification", "malformed body", err)
	}
	if decoder.More() {
		return nil, nil, domainerr.NewValidationError("notification", "trailing data after body", nil)
	}

	if err := h.validate.Struct(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			reason := fmt.Sprintf("field %s failed %s", fieldErrs[0].Field(), fieldErrs[0].Tag())
			return nil, nil, domainerr.NewValidationError("notification", reason, err)
		}
		return nil, nil, domainerr.NewValidationError("notification", "invalid body", err)
	}
	if !req.DataIsObject() {
		return nil, nil, domainerr.NewValidationError("notification", "field DATA must be an object", nil)
	}

	return raw, &req, nil
}
