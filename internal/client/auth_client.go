package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	appConfig "qa-checklist-api/internal/config"
	"qa-checklist-api/internal/metrics"
)

// AuthUserInfo is the identity returned by the provider after a code
// exchange
type AuthUserInfo struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
}

// AuthClientInterface defines the identity-provider operations the API
// depends on
type AuthClientInterface interface {
	ExchangeCode(ctx context.Context, code string) (*AuthUserInfo, error)
	ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error)
}

// AuthClient talks to the external identity provider over HTTP
type AuthClient struct {
	httpClient   *http.Client
	providerURL  string
	clientID     string
	clientSecret string
	redirectURL  string
	metrics      *metrics.Metrics
}

// NewAuthClient creates a new identity-provider client
func NewAuthClient(cfg *appConfig.AuthConfig, m *metrics.Metrics) *AuthClient {
	timeout := cfg.ProviderTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &AuthClient{
		httpClient:   &http.Client{Timeout: timeout},
		providerURL:  cfg.ProviderURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURL:  cfg.RedirectURL,
		metrics:      m,
	}
}

// ExchangeCode exchanges an authorization code for the provider's user
// identity
func (c *AuthClient) ExchangeCode(ctx context.Context, code string) (*AuthUserInfo, error) {
	payload := map[string]string{
		"grant_type":    "authorization_code",
		"code":          code,
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"redirect_uri":  c.redirectURL,
	}

	var result struct {
		User AuthUserInfo `json:"user"`
	}
	if err := c.post(ctx, "/oauth/token", payload, &result); err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}
	if result.User.UserID == uuid.Nil {
		return nil, fmt.Errorf("provider returned no user identity")
	}
	return &result.User, nil
}

// ValidateToken asks the provider whether a session token is still valid,
// so revoked tokens are rejected
func (c *AuthClient) ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	payload := map[string]string{"token": tokenStr}

	var result struct {
		Valid  bool      `json:"valid"`
		UserID uuid.UUID `json:"userId"`
	}
	if err := c.post(ctx, "/oauth/introspect", payload, &result); err != nil {
		return uuid.Nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !result.Valid || result.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("token is not valid")
	}
	return result.UserID, nil
}

// post sends a JSON request to the provider and decodes the JSON response
func (c *AuthClient) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := c.providerURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(path, http.MethodPost, statusCode, duration, err)
	}

	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
