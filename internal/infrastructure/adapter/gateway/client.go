package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	errs "github.com/contactbot/payment-processor/internal/domain/error"
	coreport "github.com/contactbot/payment-processor/internal/domain/port/core"
	"github.com/contactbot/payment-processor/internal/domain/port/gateway"
	"github.com/contactbot/payment-processor/internal/domain/signature"
	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
)

// Gateway operations, also used as endpoint paths
const (
	OperationInit               = "Init"
	OperationSendClosingReceipt = "SendClosingReceipt"
)

// DefaultTimeout bounds a single gateway round trip when none is configured
const DefaultTimeout = 10 * time.Second

// Config contains the terminal credentials and transport settings
type Config struct {
	BaseURL     string
	TerminalKey string
	Password    string
	Timeout     time.Duration
}

// Client talks to the acquiring gateway over its JSON API
type Client struct {
	http     *resty.Client
	config   Config
	validate *validator.Validate
	logger   coreport.Logger
}

// NewClient creates a gateway client for the configured terminal
func NewClient(config Config, logger coreport.Logger) *Client {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:     httpClient,
		config:   config,
		validate: validator.New(),
		logger:   logger.With(map[string]any{"source": "gateway"}),
	}
}

// InitiatePayment calls Init and returns the validated answer
func (c *Client) InitiatePayment(ctx context.Context, req gateway.InitPaymentRequest) (*gateway.InitPaymentResult, error) {
	body := &initRequest{
		TerminalKey:     c.config.TerminalKey,
		Amount:          req.Amount,
		OrderID:         req.OrderID,
		Description:     req.Description,
		NotificationURL: req.NotificationURL,
	}
	if req.Receipt != nil {
		receipt := toReceiptDTO(*req.Receipt)
		body.Receipt = &receipt
	}
	body.Token = signature.Token(body.signingPayload(), c.config.Password)

	var resp initResponse
	if err := c.post(ctx, OperationInit, body, &resp); err != nil {
		return nil, err
	}

	c.logger.Info("Payment initiated at gateway", map[string]any{
		"order_id":   resp.OrderID,
		"payment_id": resp.PaymentID,
		"status":     resp.Status,
	})

	return &gateway.InitPaymentResult{
		OrderID:    resp.OrderID,
		PaymentID:  resp.PaymentID,
		Status:     entity.TransactionStatus(resp.Status),
		Amount:     resp.Amount,
		PaymentURL: resp.PaymentURL,
	}, nil
}

// SendClosingReceipt sends the receipt for a confirmed payment
func (c *Client) SendClosingReceipt(ctx context.Context, paymentID string, receipt entity.Receipt) (bool, error) {
	body := &closingReceiptRequest{
		TerminalKey: c.config.TerminalKey,
		PaymentID:   paymentID,
		Receipt:     toReceiptDTO(receipt),
	}
	body.Token = signature.Token(body.signingPayload(), c.config.Password)

	var resp closingReceiptResponse
	if err := c.post(ctx, OperationSendClosingReceipt, body, &resp); err != nil {
		return false, err
	}

	c.logger.Info("Closing receipt sent", map[string]any{"payment_id": paymentID})
	return true, nil
}

// post sends body to the operation endpoint and decodes the answer into out.
// An answer is accepted only if it decodes, reports Success and passes validation.
func (c *Client) post(ctx context.Context, operation string, body any, out response) error {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/" + operation)
	if err != nil {
		return c.fail(errs.NewGatewayError(operation, 0, "", "request failed", err))
	}

	c.logger.Debug("Gateway responded", map[string]any{
		"operation":   operation,
		"status_code": resp.StatusCode(),
		"duration":    time.Since(start).String(),
	})

	if !resp.IsSuccess() {
		return c.fail(errs.NewGatewayError(operation, resp.StatusCode(), "", "unexpected http status", nil))
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return c.fail(errs.NewGatewayError(operation, resp.StatusCode(), "", "undecodable response body", err))
	}

	base := out.base()
	if !base.Success {
		message := base.Message
		if base.Details != "" {
			message += " (" + base.Details + ")"
		}
		return c.fail(errs.NewGatewayError(operation, resp.StatusCode(), base.ErrorCode, message, nil))
	}

	if err := c.validate.Struct(out); err != nil {
		return c.fail(errs.NewGatewayError(operation, resp.StatusCode(), base.ErrorCode, "invalid response body", err))
	}
	return nil
}

func (c *Client) fail(err error) error {
	fields := map[string]any{"error": err.Error()}
	var gwErr *errs.GatewayError
	if errors.As(err, &gwErr) {
		fields = gwErr.LogFields()
	}
	c.logger.Error("Gateway call failed", fields)
	return err
}

var _ gateway.PaymentGateway = (*Client)(nil)
