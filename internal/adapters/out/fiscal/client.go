// Package fiscal submits tax documents to the fiscal authority's reception
// endpoint and returns the tracking id it assigns.
package fiscal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"checkout/internal/pkg/errs"
)

const DefaultTimeout = 15 * time.Second

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implements ports.FiscalAuthorityClient.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("fiscal authority url")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: baseURL + "/documents",
		apiKey:   strings.TrimSpace(cfg.APIKey),
		http:     &http.Client{Timeout: timeout},
	}, nil
}

type submission struct {
	Folio    string `json:"folio"`
	Document string `json:"document"`
}

type receipt struct {
	TrackID string `json:"track_id"`
}

// SendDocument posts the XML document. Every failure, an empty tracking id
// included, is a Gateway error.
func (c *Client) SendDocument(ctx context.Context, folio string, xml string) (string, error) {
	operation := "send document " + folio

	payload, err := json.Marshal(submission{Folio: folio, Document: xml})
	if err != nil {
		return "", errs.NewGatewayError(operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errs.NewGatewayError(operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errs.NewGatewayError(operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errs.NewGatewayError(operation, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", errs.NewGatewayError(operation, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var r receipt
	if err = json.Unmarshal(body, &r); err != nil {
		return "", errs.NewGatewayError(operation, fmt.Errorf("decode receipt: %w", err))
	}
	if strings.TrimSpace(r.TrackID) == "" {
		return "", errs.NewGatewayError(operation, errors.New("receipt has no track id"))
	}

	return r.TrackID, nil
}
