package billing

import (
	"context"
	"fmt"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/infrastructure/payment"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCurrency = "BRL"

// PaymentService submits charges and subscriptions to the payment gateway
// on behalf of a tenant. The gateway itself is opaque; this layer owns the
// reference-id scheme and amount checks.
type PaymentService struct {
	gateway payment.Gateway
	logger  *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(gateway payment.Gateway, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		gateway: gateway,
		logger:  logger,
	}
}

// CreateCharge submits a one-off charge. Card methods require a card token;
// pix and boleto return a checkout URL or QR payload instead.
func (s *PaymentService) CreateCharge(ctx context.Context, tenantID uuid.UUID, req *CreateChargeRequest) (*ChargeResponse, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrMissingTenant
	}
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Charge amount must be positive")
	}
	method := payment.Method(req.Method)
	if (method == payment.MethodCredit || method == payment.MethodDebit) && req.CardToken == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Card payments require a card token")
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	referenceID := buildReferenceID(tenantID)

	result, err := s.gateway.CreateCharge(ctx, &payment.CreateChargeRequest{
		ReferenceID:   referenceID,
		Method:        method,
		Amount:        req.Amount,
		Currency:      currency,
		Description:   req.Description,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerDoc:   shared.NormalizeDocument(req.CustomerDoc),
		CardToken:     req.CardToken,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("charge accepted by gateway",
		zap.String("tenant_id", tenantID.String()),
		zap.String("charge_id", result.ChargeID),
		zap.String("method", req.Method),
		zap.String("amount", req.Amount.String()))

	return &ChargeResponse{
		ChargeID:    result.ChargeID,
		ReferenceID: referenceID,
		Status:      string(result.Status),
		Method:      req.Method,
		Amount:      req.Amount,
		Currency:    currency,
		PaymentURL:  result.PaymentURL,
		QRCodeData:  result.QRCodeData,
		ExpiresAt:   result.ExpiresAt,
	}, nil
}

// CreateSubscription submits a recurring charge for one of the plans.
func (s *PaymentService) CreateSubscription(ctx context.Context, tenantID uuid.UUID, req *CreateSubscriptionRequest) (*SubscriptionResponse, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrMissingTenant
	}
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Subscription amount must be positive")
	}
	method := payment.Method(req.Method)
	if (method == payment.MethodCredit || method == payment.MethodDebit) && req.CardToken == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Card payments require a card token")
	}

	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	referenceID := buildReferenceID(tenantID)

	result, err := s.gateway.CreateSubscription(ctx, &payment.CreateSubscriptionRequest{
		ReferenceID:   referenceID,
		PlanCode:      req.PlanCode,
		Method:        method,
		Amount:        req.Amount,
		Currency:      currency,
		Interval:      payment.Interval(req.Interval),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CardToken:     req.CardToken,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("subscription accepted by gateway",
		zap.String("tenant_id", tenantID.String()),
		zap.String("subscription_id", result.SubscriptionID),
		zap.String("plan_code", req.PlanCode))

	return &SubscriptionResponse{
		SubscriptionID: result.SubscriptionID,
		ReferenceID:    referenceID,
		Status:         string(result.Status),
		PlanCode:       req.PlanCode,
		Amount:         req.Amount,
		Interval:       req.Interval,
		NextBillingAt:  result.NextBillingAt,
	}, nil
}

// buildReferenceID ties every gateway object back to the originating tenant.
func buildReferenceID(tenantID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", tenantID, uuid.New())
}
