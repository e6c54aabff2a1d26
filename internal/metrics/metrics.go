package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"invoicedl/internal/model"
)

// Batch holds the counters for one batch run. A batch job has no scrape
// surface, so the counters live on an injected registry and are pushed to a
// Pushgateway when one is configured.
type Batch struct {
	registry prometheus.Gatherer

	invoiceOutcomes *prometheus.CounterVec
	accountFailures prometheus.Counter
}

// NewBatch creates the batch counters and registers them on reg.
func NewBatch(reg *prometheus.Registry) (*Batch, error) {
	b := &Batch{
		registry: reg,
		invoiceOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invoicedl_invoices_total",
				Help: "Invoice fetch outcomes per account.",
			},
			[]string{"account", "outcome"},
		),
		accountFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "invoicedl_account_failures_total",
				Help: "Accounts whose job failed before any fetch (auth, lookup, or folder errors).",
			},
		),
	}

	if err := reg.Register(b.invoiceOutcomes); err != nil {
		return nil, err
	}
	if err := reg.Register(b.accountFailures); err != nil {
		return nil, err
	}
	return b, nil
}

// ObserveOutcome records one account's tallied fetch results.
func (b *Batch) ObserveOutcome(account string, outcome model.AccountOutcome) {
	b.invoiceOutcomes.WithLabelValues(account, "downloaded").Add(float64(outcome.Downloaded))
	b.invoiceOutcomes.WithLabelValues(account, "skipped").Add(float64(outcome.Skipped))
	b.invoiceOutcomes.WithLabelValues(account, "errors").Add(float64(outcome.Errors))
}

// ObserveAccountFailure records a job that short-circuited before fetching.
func (b *Batch) ObserveAccountFailure() {
	b.accountFailures.Inc()
}

// Push sends the counters to a Pushgateway, grouped by the batch run id.
func (b *Batch) Push(ctx context.Context, gatewayURL, runID string) error {
	return push.New(gatewayURL, "invoicedl").
		Gatherer(b.registry).
		Grouping("run_id", runID).
		PushContext(ctx)
}
