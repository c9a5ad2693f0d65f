package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tadreeb/models"
)

type tokenContextKey struct{}

// WithToken attaches the caller's bearer token to the context so the
// checkout collaborator call can carry their session.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFrom extracts the bearer token attached by WithToken, empty when
// the caller is unauthenticated.
func TokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenContextKey{}).(string)
	return tok
}

// RawResponse is the collaborator's unparsed answer to a checkout-session
// request. Interpretation of the body (redirect vs inline success vs
// failure) belongs to services/checkout, so every provider funnels through
// the same extraction rules.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Client creates a checkout session with an external payment collaborator.
type Client interface {
	CreateSession(ctx context.Context, req models.CheckoutRequest) (RawResponse, error)
}

// HTTPClient talks to the platform's own checkout collaborator.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
	// Token returns the caller's bearer token, empty when unauthenticated.
	Token func(ctx context.Context) string
}

func NewHTTPClient(baseURL string, token func(ctx context.Context) string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Token:   token,
	}
}

func (c *HTTPClient) CreateSession(ctx context.Context, req models.CheckoutRequest) (RawResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return RawResponse{}, fmt.Errorf("failed to marshal checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/checkout-session", bytes.NewReader(payload))
	if err != nil {
		return RawResponse{}, fmt.Errorf("failed to build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.Token != nil {
		if tok := c.Token(ctx); tok != "" {
			httpReq.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return RawResponse{}, fmt.Errorf("checkout session request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RawResponse{}, fmt.Errorf("failed to read checkout response: %w", err)
	}

	return RawResponse{StatusCode: resp.StatusCode, Body: body}, nil
}
