package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	chargesPath       = "/v1/charges"
	subscriptionsPath = "/v1/subscriptions"
)

// HTTPGateway talks JSON over HTTPS to the payment provider
type HTTPGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// Ensure HTTPGateway implements Gateway
var _ Gateway = (*HTTPGateway)(nil)

// NewHTTPGateway creates a gateway client from configuration
func NewHTTPGateway(cfg config.PaymentConfig, logger *zap.Logger) *HTTPGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPGateway{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// CreateCharge submits a one-off charge to the provider
func (g *HTTPGateway) CreateCharge(ctx context.Context, req *CreateChargeRequest) (*CreateChargeResponse, error) {
	if !req.Method.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("unsupported payment method %q", req.Method))
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "charge amount must be positive")
	}

	var resp CreateChargeResponse
	if err := g.post(ctx, chargesPath, req, &resp); err != nil {
		return nil, err
	}

	g.logger.Info("Charge created",
		zap.String("charge_id", resp.ChargeID),
		zap.String("method", string(req.Method)),
		zap.String("status", string(resp.Status)),
	)
	return &resp, nil
}

// CreateSubscription starts a recurring charge with the provider
func (g *HTTPGateway) CreateSubscription(ctx context.Context, req *CreateSubscriptionRequest) (*CreateSubscriptionResponse, error) {
	if !req.Method.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("unsupported payment method %q", req.Method))
	}
	if !req.Interval.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("unsupported billing interval %q", req.Interval))
	}

	var resp CreateSubscriptionResponse
	if err := g.post(ctx, subscriptionsPath, req, &resp); err != nil {
		return nil, err
	}

	g.logger.Info("Subscription created",
		zap.String("subscription_id", resp.SubscriptionID),
		zap.String("plan", req.PlanCode),
	)
	return &resp, nil
}

// gatewayError is the provider's error envelope
type gatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (g *HTTPGateway) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return shared.WrapGateway(fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return shared.WrapGateway(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	httpResp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return shared.WrapGateway(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return shared.WrapGateway(fmt.Errorf("read response: %w", err))
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		var gwErr gatewayError
		if json.Unmarshal(respBody, &gwErr) == nil && gwErr.Message != "" {
			return shared.WrapGateway(fmt.Errorf("gateway returned %d: %s (%s)", httpResp.StatusCode, gwErr.Message, gwErr.Code))
		}
		return shared.WrapGateway(fmt.Errorf("gateway returned %d", httpResp.StatusCode))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return shared.WrapGateway(fmt.Errorf("parse response: %w", err))
	}
	return nil
}
