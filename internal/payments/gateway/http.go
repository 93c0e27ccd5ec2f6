package gateway

import (
	"context"
	"fmt"
	"net/http"

	"staybook/pkg/client"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
)

type httpGateway struct {
	client    *client.HttpClient
	secretKey string
	log       *logger.Logger
}

// NewHTTPGateway talks to a Chapa-style REST gateway: POST to initialize
// a transaction, GET to verify it, bearer-token auth.
func NewHTTPGateway(httpClient *client.HttpClient, secretKey string, log *logger.Logger) Gateway {
	return &httpGateway{
		client:    httpClient,
		secretKey: secretKey,
		log:       log,
	}
}

type initiateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status        string `json:"status"`
		TransactionID string `json:"reference"`
	} `json:"data"`
}

func (g *httpGateway) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + g.secretKey,
	}
}

func (g *httpGateway) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	resp, err := g.client.POST(ctx, "/transaction/initialize", req, g.headers())
	if err != nil {
		g.log.Error("payment gateway initiate request failed",
			"reference", req.Reference,
			"error", err,
		)
		return nil, apperrors.Unavailable("payment gateway")
	}

	if resp.StatusCode != http.StatusOK {
		g.log.Error("payment gateway rejected initiate",
			"reference", req.Reference,
			"status_code", resp.StatusCode,
		)
		return nil, apperrors.Internal(
			fmt.Sprintf("Payment gateway returned status %d", resp.StatusCode), nil)
	}

	var body initiateResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, apperrors.Internal("Failed to decode gateway response", err)
	}

	var raw map[string]any
	_ = resp.DecodeJSON(&raw)

	return &InitiateResult{
		CheckoutURL: body.Data.CheckoutURL,
		Raw:         raw,
	}, nil
}

func (g *httpGateway) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	resp, err := g.client.GET(ctx, "/transaction/verify/"+reference, g.headers())
	if err != nil {
		g.log.Error("payment gateway verify request failed",
			"reference", reference,
			"error", err,
		)
		return nil, apperrors.Unavailable("payment gateway")
	}

	if resp.StatusCode != http.StatusOK {
		g.log.Error("payment gateway rejected verify",
			"reference", reference,
			"status_code", resp.StatusCode,
		)
		return nil, apperrors.Internal(
			fmt.Sprintf("Payment gateway returned status %d", resp.StatusCode), nil)
	}

	var body verifyResponse
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, apperrors.Internal("Failed to decode gateway response", err)
	}

	var raw map[string]any
	_ = resp.DecodeJSON(&raw)

	return &VerifyResult{
		Succeeded:     body.Status == "success" && body.Data.Status == "success",
		TransactionID: body.Data.TransactionID,
		Raw:           raw,
	}, nil
}
