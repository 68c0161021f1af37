// Package mercadopago is the payment gateway adapter. It speaks the REST API
// of MercadoPago: checkout preferences and payment lookups, authenticated
// with a bearer access token.
package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL  = "https://api.mercadopago.com"
	DefaultTimeout  = 10 * time.Second
	DefaultCurrency = "CLP"
)

// Config configures Client. Zero values fall back to the defaults above.
type Config struct {
	BaseURL     string
	AccessToken string
	Currency    string
	Timeout     time.Duration
}

// Client implements ports.PaymentGatewayClient.
type Client struct {
	baseURL     string
	accessToken string
	currency    string
	http        *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, errs.NewValueIsRequiredError("gateway access token")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("gateway base url", err)
	}
	currency := cfg.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:     baseURL,
		accessToken: strings.TrimSpace(cfg.AccessToken),
		currency:    currency,
		http:        &http.Client{Timeout: timeout},
	}, nil
}

type preferenceItem struct {
	Title      string      `json:"title"`
	Quantity   int         `json:"quantity"`
	CurrencyID string      `json:"currency_id"`
	UnitPrice  json.Number `json:"unit_price"`
}

type backURLs struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
	Pending string `json:"pending,omitempty"`
}

type payer struct {
	Email string `json:"email,omitempty"`
}

type preferenceRequest struct {
	Items             []preferenceItem `json:"items"`
	ExternalReference string           `json:"external_reference"`
	Payer             *payer           `json:"payer,omitempty"`
	BackURLs          backURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return,omitempty"`
	NotificationURL   string           `json:"notification_url,omitempty"`
}

type preferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

type paymentResponse struct {
	ID                json.Number     `json:"id"`
	PreferenceID      string          `json:"preference_id"`
	Status            string          `json:"status"`
	TransactionAmount decimal.Decimal `json:"transaction_amount"`
	Order             struct {
		ID json.Number `json:"id"`
	} `json:"order"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// CreatePreference requests a hosted checkout. The preference id and the
// checkout URL are required in the answer; anything else is a Gateway error.
func (c *Client) CreatePreference(ctx context.Context, req ports.PreferenceRequest) (ports.Preference, error) {
	const operation = "create preference"

	body := preferenceRequest{
		ExternalReference: req.ExternalReference,
		BackURLs: backURLs{
			Success: req.SuccessURL,
			Failure: req.FailureURL,
			Pending: req.PendingURL,
		},
		NotificationURL: req.NotificationURL,
	}
	if req.SuccessURL != "" {
		body.AutoReturn = "approved"
	}
	if req.PayerEmail != "" {
		body.Payer = &payer{Email: req.PayerEmail}
	}
	for _, item := range req.Items {
		body.Items = append(body.Items, preferenceItem{
			Title:      item.Title,
			Quantity:   item.Quantity,
			CurrencyID: c.currency,
			UnitPrice:  json.Number(item.UnitPrice.StringFixed(2)),
		})
	}

	var resp preferenceResponse
	if _, err := c.do(ctx, http.MethodPost, "/checkout/preferences", body, &resp); err != nil {
		return ports.Preference{}, errs.NewGatewayError(operation, err)
	}
	if resp.ID == "" {
		return ports.Preference{}, errs.NewGatewayError(operation, errors.New("response has no preference id"))
	}

	checkoutURL := resp.InitPoint
	if checkoutURL == "" {
		checkoutURL = resp.SandboxInitPoint
	}

	return ports.Preference{
		PreferenceID: resp.ID,
		CheckoutURL:  checkoutURL,
	}, nil
}

// FetchPayment reads the canonical payment. The raw response body is kept on
// the result for audit.
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (payment.CanonicalPayment, error) {
	operation := "fetch payment " + paymentID

	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return payment.CanonicalPayment{}, errs.NewValueIsRequiredError("payment id")
	}

	var resp paymentResponse
	raw, err := c.do(ctx, http.MethodGet, "/v1/payments/"+url.PathEscape(paymentID), nil, &resp)
	if err != nil {
		return payment.CanonicalPayment{}, errs.NewGatewayError(operation, err)
	}

	status, err := payment.ParseStatus(resp.Status)
	if err != nil {
		return payment.CanonicalPayment{}, errs.NewGatewayError(operation, err)
	}

	canonical := payment.CanonicalPayment{
		PaymentID:       resp.ID.String(),
		PreferenceID:    resp.PreferenceID,
		MerchantOrderID: resp.Order.ID.String(),
		Status:          status,
		Amount:          resp.TransactionAmount,
		Raw:             raw,
	}
	if err = canonical.Validate(); err != nil {
		return payment.CanonicalPayment{}, errs.NewGatewayError(operation, err)
	}

	return canonical, nil
}

// do sends a JSON request and decodes a JSON answer into out. It returns the
// raw answer body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) ([]byte, error) {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	if err = json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return raw, nil
}
