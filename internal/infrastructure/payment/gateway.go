// Package payment integrates with the external payment gateway used for
// charges and recurring subscriptions.
package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Method identifies how a charge is collected
type Method string

const (
	MethodCredit Method = "credit"
	MethodDebit  Method = "debit"
	MethodPix    Method = "pix"
	MethodBoleto Method = "boleto"
)

// IsValid reports whether the method is one of the supported kinds
func (m Method) IsValid() bool {
	switch m {
	case MethodCredit, MethodDebit, MethodPix, MethodBoleto:
		return true
	}
	return false
}

// Interval identifies the subscription billing cycle
type Interval string

const (
	IntervalMonthly Interval = "monthly"
	IntervalYearly  Interval = "yearly"
)

// IsValid reports whether the interval is supported
func (i Interval) IsValid() bool {
	return i == IntervalMonthly || i == IntervalYearly
}

// ChargeStatus is the gateway-side state of a charge
type ChargeStatus string

const (
	ChargeStatusPending  ChargeStatus = "pending"
	ChargeStatusPaid     ChargeStatus = "paid"
	ChargeStatusFailed   ChargeStatus = "failed"
	ChargeStatusCanceled ChargeStatus = "canceled"
)

// CreateChargeRequest is a one-off charge submission
type CreateChargeRequest struct {
	ReferenceID   string          `json:"reference_id"`
	Method        Method          `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description,omitempty"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerDoc   string          `json:"customer_document,omitempty"`
	CardToken     string          `json:"card_token,omitempty"`
}

// CreateChargeResponse is the gateway's answer to a charge submission
type CreateChargeResponse struct {
	ChargeID   string       `json:"charge_id"`
	Status     ChargeStatus `json:"status"`
	PaymentURL string       `json:"payment_url,omitempty"` // boleto/pix checkout
	QRCodeData string       `json:"qr_code_data,omitempty"`
	ExpiresAt  *time.Time   `json:"expires_at,omitempty"`
}

// CreateSubscriptionRequest starts a recurring charge
type CreateSubscriptionRequest struct {
	ReferenceID   string          `json:"reference_id"`
	PlanCode      string          `json:"plan_code"`
	Method        Method          `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Interval      Interval        `json:"interval"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CardToken     string          `json:"card_token,omitempty"`
}

// CreateSubscriptionResponse is the gateway's answer to a subscription request
type CreateSubscriptionResponse struct {
	SubscriptionID string       `json:"subscription_id"`
	Status         ChargeStatus `json:"status"`
	NextBillingAt  *time.Time   `json:"next_billing_at,omitempty"`
}

// Gateway is the outbound port to the payment provider
type Gateway interface {
	CreateCharge(ctx context.Context, req *CreateChargeRequest) (*CreateChargeResponse, error)
	CreateSubscription(ctx context.Context, req *CreateSubscriptionRequest) (*CreateSubscriptionResponse, error)
}
