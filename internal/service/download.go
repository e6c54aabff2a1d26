package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"invoicedl/internal/kplc"
	"invoicedl/internal/metrics"
	"invoicedl/internal/model"
	"invoicedl/internal/repository"
	"invoicedl/internal/storage"
)

// DownloadService runs invoice download jobs and reports progress as
// ResultRecords.
type DownloadService interface {
	// RunAccount executes the job for a single account: token, index lookup,
	// sequential idempotent fetches, and record synthesis.
	RunAccount(ctx context.Context, req model.AccountRequest) []model.ResultRecord

	// RunBatch iterates accounts in input order and streams their records,
	// followed by one terminal summary record. The stream is finite and
	// non-restartable; the channel closes after the terminal record. A single
	// account's failure never aborts the batch.
	RunBatch(ctx context.Context, accounts []string, month, saveFolder string) <-chan model.ResultRecord
}

// Deps wires the collaborators of the download service. Archive and Metrics
// are optional.
type Deps struct {
	Repo    repository.InvoiceRepository
	Tokens  kplc.TokenSource
	Fetcher kplc.DocumentFetcher
	Archive storage.Storage
	Metrics *metrics.Batch
	Logger  *slog.Logger
}

type downloadService struct {
	repo    repository.InvoiceRepository
	tokens  kplc.TokenSource
	fetcher kplc.DocumentFetcher
	archive storage.Storage
	metrics *metrics.Batch
	logger  *slog.Logger
}

// NewDownloadService constructs a DownloadService.
func NewDownloadService(deps Deps) DownloadService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &downloadService{
		repo:    deps.Repo,
		tokens:  deps.Tokens,
		fetcher: deps.Fetcher,
		archive: deps.Archive,
		metrics: deps.Metrics,
		logger:  logger,
	}
}

func (s *downloadService) RunAccount(ctx context.Context, req model.AccountRequest) []model.ResultRecord {
	if err := os.MkdirAll(req.SaveFolder, 0o755); err != nil {
		return s.failAccount(req.AccountNumber, fmt.Errorf("create save folder: %w", err))
	}

	bearer, err := s.tokens.Acquire(ctx)
	if err != nil {
		return s.failAccount(req.AccountNumber, err)
	}

	index, err := s.repo.Lookup(ctx, req.AccountNumber, req.Month)
	if err != nil {
		return s.failAccount(req.AccountNumber, err)
	}

	s.logger.Info("resolved invoice index",
		"account", req.AccountNumber, "month", req.Month,
		"customer", index.CustomerName, "invoices", len(index.InvoiceIDs))

	var outcome model.AccountOutcome
	for i, invoiceID := range index.InvoiceIDs {
		if ctx.Err() != nil {
			// Cooperative cancellation between fetches: the rest of this
			// account's invoices were not downloaded this run.
			outcome.Errors += len(index.InvoiceIDs) - i
			s.logger.Warn("job cancelled", "account", req.AccountNumber, "remaining", len(index.InvoiceIDs)-i)
			break
		}

		filename := model.ArtifactFilename(index.CustomerName, req.AccountNumber, invoiceID)
		target := filepath.Join(req.SaveFolder, filename)

		status, err := s.fetcher.Fetch(ctx, invoiceID, bearer, target)
		switch status {
		case model.StatusDownloaded:
			outcome.Downloaded++
			s.mirror(ctx, req.Month, filename, target)
		case model.StatusSkipped:
			outcome.Skipped++
			s.logger.Debug("file exists, skipping", "path", target)
		case model.StatusMissing:
			outcome.Errors++
			s.logger.Warn("invoice not found on server", "account", req.AccountNumber, "invoice_id", invoiceID)
		default:
			outcome.Errors++
			s.logger.Error("invoice download failed", "account", req.AccountNumber, "invoice_id", invoiceID, "error", err)
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveOutcome(req.AccountNumber, outcome)
	}
	return accountRecords(req.AccountNumber, outcome)
}

func (s *downloadService) RunBatch(ctx context.Context, accounts []string, month, saveFolder string) <-chan model.ResultRecord {
	out := make(chan model.ResultRecord)

	go func() {
		defer close(out)

		anySuccess := false
		for _, account := range accounts {
			req := model.AccountRequest{AccountNumber: account, Month: month, SaveFolder: saveFolder}
			for _, rec := range s.RunAccount(ctx, req) {
				if rec.Severity == model.SeveritySuccess {
					anySuccess = true
				}
				// A consumer that stops ranging must not strand this goroutine.
				select {
				case out <- rec:
				case <-ctx.Done():
					return
				}
			}
		}

		terminal := model.ResultRecord{Message: "No invoices downloaded.", Severity: model.SeverityError}
		if anySuccess {
			terminal = model.ResultRecord{Message: "Download successful.", Severity: model.SeveritySuccess}
		}
		select {
		case out <- terminal:
		case <-ctx.Done():
		}
	}()

	return out
}

// failAccount turns a job-fatal error (auth, lookup, folder) into the single
// error record for that account.
func (s *downloadService) failAccount(account string, err error) []model.ResultRecord {
	s.logger.Error("account job failed", "account", account, "error", err)
	if s.metrics != nil {
		s.metrics.ObserveAccountFailure()
	}
	return []model.ResultRecord{{
		Message:  fmt.Sprintf("%s: %v", account, err),
		Severity: model.SeverityError,
	}}
}

// mirror uploads a freshly downloaded PDF to the archive bucket, if one is
// configured. Archive trouble never counts against the account's outcome.
func (s *downloadService) mirror(ctx context.Context, month, filename, path string) {
	if s.archive == nil {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		s.logger.Warn("archive mirror: open failed", "path", path, "error", err)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		s.logger.Warn("archive mirror: stat failed", "path", path, "error", err)
		return
	}

	key := month + "/" + filename
	if _, err := s.archive.Put(ctx, key, f, fi.Size(), storage.PutOptions{ContentType: "application/pdf"}); err != nil {
		s.logger.Warn("archive mirror: upload failed", "key", key, "error", err)
	}
}

// accountRecords synthesizes the per-account records in bucket order:
// success, warn, error, then the defensive info record when nothing applied.
func accountRecords(account string, o model.AccountOutcome) []model.ResultRecord {
	var records []model.ResultRecord
	if o.Downloaded > 0 {
		records = append(records, model.ResultRecord{
			Message:  fmt.Sprintf("Downloaded for account %s (%d invoice(s))", account, o.Downloaded),
			Severity: model.SeveritySuccess,
		})
	}
	if o.Skipped > 0 {
		records = append(records, model.ResultRecord{
			Message:  fmt.Sprintf("Invoice Already Exists for account %s (%d invoice(s))", account, o.Skipped),
			Severity: model.SeverityWarn,
		})
	}
	if o.Errors > 0 {
		records = append(records, model.ResultRecord{
			Message:  fmt.Sprintf("Failed downloads for account %s (%d)", account, o.Errors),
			Severity: model.SeverityError,
		})
	}
	if len(records) == 0 {
		// Unreachable while the lookup refuses empty indexes.
		records = append(records, model.ResultRecord{
			Message:  fmt.Sprintf("No files downloaded for account %s", account),
			Severity: model.SeverityInfo,
		})
	}
	return records
}
