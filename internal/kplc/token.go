package kplc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"invoicedl/internal/config"
)

// TokenClient implements TokenSource against the KPLC token endpoint.
type TokenClient struct {
	baseURL    string
	basicCred  string
	scope      string
	httpClient *http.Client
}

var _ TokenSource = (*TokenClient)(nil)

// NewTokenClient builds a client from configuration. The Basic credential is
// derived from the configured client id/secret pair.
func NewTokenClient(cfg config.KPLCConfig) *TokenClient {
	return &TokenClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		basicCred:  base64.StdEncoding.EncodeToString([]byte(cfg.ClientID + ":" + cfg.ClientSecret)),
		scope:      cfg.Scope,
		httpClient: newHTTPClient(cfg),
	}
}

// Acquire performs the client-credentials grant and returns the bearer token.
// Any non-200 status, or a response without an access token, is an *AuthError.
func (c *TokenClient) Acquire(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", c.scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("new token request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+c.basicCred)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Only the diagnostic text is bounded; tokens themselves have no size cap.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &AuthError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.AccessToken == "" {
		return "", &AuthError{Status: resp.StatusCode, Body: "response carries no access_token"}
	}
	return payload.AccessToken, nil
}
