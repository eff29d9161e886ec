package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/medexpertise/portal/internal/common"
	"github.com/medexpertise/portal/internal/logging"
)

// TokenSource yields the current bearer token, or "" when signed out.
// session.Store satisfies it.
type TokenSource interface {
	Token() string
}

type Rest struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

// NewRest builds the REST client. timeout 0 leaves requests without a
// deadline, matching how the web portal behaves under a slow backend.
func NewRest(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *Rest {
	return &Rest{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

func (r *Rest) Post(ctx context.Context, path string, body map[string]string) (*Envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if token := r.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		r.log.Warn(ctx, "request failed", "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", common.ErrUnavailable, err)
	}

	env := DecodeEnvelope(resp.StatusCode, raw)
	r.log.Debug(ctx, "response received", "path", path, "request_id", requestID, "status_code", resp.StatusCode)

	return env, classify(resp.StatusCode)
}

// classify maps an HTTP status to the portal's error taxonomy. 2xx is nil;
// everything else is terminal for the submit attempt.
func classify(statusCode int) error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case statusCode == http.StatusUnprocessableEntity:
		return common.ErrValidation
	case statusCode >= 500:
		return common.ErrServer
	default:
		return fmt.Errorf("unexpected status %d", statusCode)
	}
}

// Ping probes the backend health route.
func (r *Rest) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/up", nil)
	if err != nil {
		return err
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return common.ErrServer
	}
	return nil
}
