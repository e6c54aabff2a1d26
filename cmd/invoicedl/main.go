package main

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"invoicedl/internal/config"
	"invoicedl/internal/database"
	"invoicedl/internal/kplc"
	"invoicedl/internal/logging"
	"invoicedl/internal/metrics"
	"invoicedl/internal/model"
	oteltrace "invoicedl/internal/otel"
	"invoicedl/internal/report"
	"invoicedl/internal/repository/oracle"
	"invoicedl/internal/service"
	"invoicedl/internal/storage"
)

var monthPattern = regexp.MustCompile(`^[0-9]{6}$`)

var (
	flagAccounts     string
	flagAccountsFile string
	flagMonth        string
	flagOut          string
	flagReport       string
)

var rootCmd = &cobra.Command{
	Use:   "invoicedl",
	Short: "Download KPLC billing invoices for a set of accounts and a billing month",
	Long: `invoicedl resolves the invoices the billing system emitted for each account
in a given month and downloads their PDFs to a folder. Re-running over the
same folder skips files that are already present.

Connection settings come from the environment (a .env file is auto-loaded);
see DB_*, KPLC_*, and the optional MINIO_*/PUSHGATEWAY_URL variables.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagAccounts, "accounts", "", "comma-separated account numbers")
	rootCmd.Flags().StringVar(&flagAccountsFile, "accounts-file", "", "YAML file listing account numbers")
	rootCmd.Flags().StringVar(&flagMonth, "month", "", "billing month as yyyymm, e.g. 202407")
	rootCmd.Flags().StringVar(&flagOut, "out", "", "folder to save PDFs into")
	rootCmd.Flags().StringVar(&flagReport, "report", "", "optional path for an XLSX batch report")
	_ = rootCmd.MarkFlagRequired("month")
	_ = rootCmd.MarkFlagRequired("out")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	accounts, err := resolveAccounts()
	if err != nil {
		return err
	}
	if !monthPattern.MatchString(flagMonth) {
		return fmt.Errorf("invalid month %q: expected yyyymm", flagMonth)
	}

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	runID := uuid.New().String()
	logger.Info("starting batch", "run_id", runID, "accounts", len(accounts), "month", flagMonth)

	shutdownTracing, err := oteltrace.Init(ctx, logger)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := database.NewOracle(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to billing database: %w", err)
	}
	defer db.Close()

	var archive storage.Storage
	if cfg.MinIO.Endpoint != "" {
		archive, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return fmt.Errorf("initialize archive storage: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	batchMetrics, err := metrics.NewBatch(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	svc := service.NewDownloadService(service.Deps{
		Repo:    oracle.NewInvoiceOracle(db, logger.With("component", "repository")),
		Tokens:  kplc.NewTokenClient(cfg.KPLC),
		Fetcher: kplc.NewDocumentClient(cfg.KPLC),
		Archive: archive,
		Metrics: batchMetrics,
		Logger:  logger.With("component", "service"),
	})

	var records []model.ResultRecord
	for rec := range svc.RunBatch(ctx, accounts, flagMonth, flagOut) {
		fmt.Printf("%s %s\n", severityTag(rec.Severity), rec.Message)
		records = append(records, rec)
	}

	if cfg.PushgatewayURL != "" {
		if err := batchMetrics.Push(ctx, cfg.PushgatewayURL, runID); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}

	if flagReport != "" {
		if err := report.WriteXLSX(flagReport, runID, flagMonth, records); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Info("report written", "path", flagReport)
	}

	// The terminal record decides the exit status.
	if last := records[len(records)-1]; last.Severity == model.SeverityError {
		return fmt.Errorf("%s", last.Message)
	}
	return nil
}

// resolveAccounts merges the --accounts flag and --accounts-file, preserving
// order: flag entries first, then file entries.
func resolveAccounts() ([]string, error) {
	var accounts []string
	for _, a := range strings.Split(flagAccounts, ",") {
		if a = strings.TrimSpace(a); a != "" {
			accounts = append(accounts, a)
		}
	}
	if flagAccountsFile != "" {
		fromFile, err := config.LoadAccounts(flagAccountsFile)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, fromFile...)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("no accounts given: use --accounts or --accounts-file")
	}
	return accounts, nil
}

func severityTag(s model.Severity) string {
	switch s {
	case model.SeveritySuccess:
		return "[ OK ]"
	case model.SeverityWarn:
		return "[WARN]"
	case model.SeverityError:
		return "[FAIL]"
	default:
		return "[INFO]"
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
