package gateway

import (
	"context"

	"staybook/pkg/money"
)

// InitiateRequest asks the gateway to open a checkout session for a
// payment reference.
type InitiateRequest struct {
	Amount    money.Amount `json:"amount"`
	Currency  string       `json:"currency"`
	Email     string       `json:"email"`
	Reference string       `json:"tx_ref"`
	ReturnURL string       `json:"return_url,omitempty"`
}

type InitiateResult struct {
	CheckoutURL string
	Raw         map[string]any
}

// VerifyResult reports the gateway's view of a transaction.
type VerifyResult struct {
	Succeeded     bool
	TransactionID string
	Raw           map[string]any
}

// Gateway abstracts the external payment provider so the payment service
// can be tested without network calls.
type Gateway interface {
	Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error)
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}
