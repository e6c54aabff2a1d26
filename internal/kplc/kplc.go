package kplc

// Package kplc contains outbound clients for the KPLC self-service API: the
// token endpoint (client-credentials grant) and the nuruDocuments PDF endpoint.

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"invoicedl/internal/config"
	"invoicedl/internal/model"
)

// TokenSource acquires a short-lived bearer credential. The credential is held
// in memory for one job and never persisted.
type TokenSource interface {
	Acquire(ctx context.Context) (string, error)
}

// DocumentFetcher retrieves one invoice PDF to a local path, skipping paths
// that already exist.
type DocumentFetcher interface {
	Fetch(ctx context.Context, invoiceID, bearer, targetPath string) (model.FetchStatus, error)
}

// AuthError reports a failed token acquisition.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("Failed to get token: %d, %s", e.Status, e.Body)
}

// newHTTPClient builds the shared client for both endpoints. Certificate
// verification is on unless the config explicitly opts out for debugging.
func newHTTPClient(cfg config.KPLCConfig) *http.Client {
	timeout := time.Duration(cfg.HTTPTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	c := &http.Client{Timeout: timeout}
	if cfg.TLSInsecure {
		c.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return c
}
