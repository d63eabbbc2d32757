package paymentgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/corray333/storefront/internal/service/models/payment"
	"github.com/spf13/viper"
)

// Client talks to the external electronic payment gateway.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a gateway client with a bounded request timeout.
func NewClient() *Client {
	timeout := viper.GetDuration("paymentgw.timeout")
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: viper.GetString("paymentgw.base_url"),
		apiKey:  viper.GetString("paymentgw.api_key"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWith creates a gateway client against an explicit endpoint.
func NewClientWith(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type createChargeRequest struct {
	OrderID       int64  `json:"orderId"`
	AmountCents   int64  `json:"amountCents"`
	Currency      string `json:"currency"`
	CustomerName  string `json:"customerName,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
}

type createChargeResponse struct {
	Reference string `json:"reference"`
	ActionURL string `json:"actionUrl"`
}

// CreateCharge registers a charge for the order at the gateway and
// returns the gateway reference plus the URL the customer completes
// payment at. Any transport or server failure surfaces as
// payment.ErrGatewayUnavailable so the checkout aborts cleanly.
func (c *Client) CreateCharge(
	ctx context.Context,
	orderID int64,
	amountCents int64,
	currency string,
	customerName string,
	customerPhone string,
) (*payment.Charge, error) {
	body, err := json.Marshal(createChargeRequest{
		OrderID:       orderID,
		AmountCents:   amountCents,
		Currency:      currency,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal charge request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/charges",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: unexpected status %d", payment.ErrGatewayUnavailable, resp.StatusCode)
	}

	var chargeResp createChargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&chargeResp); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", payment.ErrGatewayUnavailable, err)
	}

	return &payment.Charge{
		Reference: chargeResp.Reference,
		ActionURL: chargeResp.ActionURL,
	}, nil
}
