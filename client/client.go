// Package client submits quote requests to the backend. It runs the same
// validation rule set as the server, encodes selected photos and classifies
// the outcome so the caller can render it without any UI side channel.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rockitout/drywallbackend/dto"
	"github.com/rockitout/drywallbackend/validation"
)

// Outcome classifies a submission attempt.
type Outcome int

const (
	// OutcomeSuccess: accepted by the server; the caller should clear the
	// form and any selected images.
	OutcomeSuccess Outcome = iota
	// OutcomeValidationError: a field failed local validation; the caller
	// keeps the form state so the user can correct it.
	OutcomeValidationError
	// OutcomeTransportError: the endpoint was unreachable or returned a
	// failure; the caller keeps the form state so the user can retry.
	OutcomeTransportError
)

// Result is the explicit submission result the caller renders.
type Result struct {
	Outcome Outcome
	Message string // server acknowledgment or validation message
	Field   string // violated field, for OutcomeValidationError
	Err     error  // underlying cause, for OutcomeTransportError
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func New(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// NewWithHTTPClient is mostly for tests.
func NewWithHTTPClient(endpoint string, hc *http.Client) *Client {
	return &Client{endpoint: endpoint, httpClient: hc}
}

// Submit validates locally, then serializes and posts the request. No
// network call is made when validation fails.
func (c *Client) Submit(ctx context.Context, req *dto.CreateQuoteRequestDTO) Result {
	if ferr := validation.Validate(req); ferr != nil {
		return Result{Outcome: OutcomeValidationError, Field: ferr.Field, Message: ferr.Message}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return Result{Outcome: OutcomeTransportError, Err: fmt.Errorf("serialize request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{Outcome: OutcomeTransportError, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{Outcome: OutcomeTransportError, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody dto.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		msg := errBody.Error
		if msg == "" {
			msg = resp.Status
		}
		return Result{
			Outcome: OutcomeTransportError,
			Message: msg,
			Err:     fmt.Errorf("server returned %d: %s", resp.StatusCode, msg),
		}
	}

	var ack dto.QuoteRequestResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return Result{Outcome: OutcomeTransportError, Err: fmt.Errorf("decode response: %w", err)}
	}

	return Result{Outcome: OutcomeSuccess, Message: ack.Message}
}
