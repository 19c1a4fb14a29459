package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateChargeRequest represents a request to charge a customer once.
type CreateChargeRequest struct {
	Method        string          `json:"method" binding:"required,oneof=credit debit pix boleto"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency" binding:"omitempty,len=3"`
	Description   string          `json:"description" binding:"max=200"`
	CustomerName  string          `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerEmail string          `json:"customer_email" binding:"required,email"`
	CustomerDoc   string          `json:"customer_document" binding:"max=25"`
	CardToken     string          `json:"card_token" binding:"max=100"`
}

// ChargeResponse represents a gateway-accepted charge in API responses
type ChargeResponse struct {
	ChargeID    string          `json:"charge_id"`
	ReferenceID string          `json:"reference_id"`
	Status      string          `json:"status"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	PaymentURL  string          `json:"payment_url,omitempty"`
	QRCodeData  string          `json:"qr_code_data,omitempty"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
}

// CreateSubscriptionRequest represents a request to start a recurring charge.
type CreateSubscriptionRequest struct {
	PlanCode      string          `json:"plan_code" binding:"required,min=1,max=50"`
	Method        string          `json:"method" binding:"required,oneof=credit debit pix boleto"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency" binding:"omitempty,len=3"`
	Interval      string          `json:"interval" binding:"required,oneof=monthly yearly"`
	CustomerName  string          `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerEmail string          `json:"customer_email" binding:"required,email"`
	CardToken     string          `json:"card_token" binding:"max=100"`
}

// SubscriptionResponse represents a gateway-accepted subscription
type SubscriptionResponse struct {
	SubscriptionID string          `json:"subscription_id"`
	ReferenceID    string          `json:"reference_id"`
	Status         string          `json:"status"`
	PlanCode       string          `json:"plan_code"`
	Amount         decimal.Decimal `json:"amount"`
	Interval       string          `json:"interval"`
	NextBillingAt  *time.Time      `json:"next_billing_at,omitempty"`
}
