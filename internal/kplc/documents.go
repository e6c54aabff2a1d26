package kplc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"invoicedl/internal/config"
	"invoicedl/internal/model"
)

// DocumentClient implements DocumentFetcher against the nuruDocuments endpoint.
type DocumentClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ DocumentFetcher = (*DocumentClient)(nil)

// NewDocumentClient builds a client from configuration.
func NewDocumentClient(cfg config.KPLCConfig) *DocumentClient {
	return &DocumentClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: newHTTPClient(cfg),
	}
}

// Fetch retrieves the PDF for invoiceID into targetPath.
//
// If targetPath already exists the fetch is skipped without contacting the
// server; a re-run over a partially completed folder does no redundant work.
// The body is written to a ".part" sibling and renamed into place, so an
// existing file is always a complete one.
func (c *DocumentClient) Fetch(ctx context.Context, invoiceID, bearer, targetPath string) (model.FetchStatus, error) {
	if _, err := os.Stat(targetPath); err == nil {
		return model.StatusSkipped, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		// Only a confirmed absence may proceed to the network; any other stat
		// trouble (permissions, bad parent) is a local failure in its own right.
		return model.StatusTransportError, fmt.Errorf("check target %s: %w", targetPath, err)
	}

	url := fmt.Sprintf("%s/nuruDocuments/4/%s/pdf", c.baseURL, invoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.StatusTransportError, fmt.Errorf("new document request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.StatusTransportError, fmt.Errorf("fetch invoice %s: %w", invoiceID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnprocessableEntity:
		// The server's "no such invoice" signal; nothing is written.
		return model.StatusMissing, nil
	case resp.StatusCode != http.StatusOK:
		return model.StatusTransportError, fmt.Errorf("fetch invoice %s: unexpected status %s", invoiceID, resp.Status)
	}

	if err := writeFileAtomic(targetPath, resp.Body); err != nil {
		return model.StatusTransportError, fmt.Errorf("write invoice %s: %w", invoiceID, err)
	}
	return model.StatusDownloaded, nil
}

func writeFileAtomic(path string, r io.Reader) error {
	part := path + ".part"
	f, err := os.Create(part)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(part)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(part)
		return err
	}
	return os.Rename(part, path)
}
