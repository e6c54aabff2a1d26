package model

// Package model contains the domain types of the download pipeline.
// Pure data with no persistence or transport dependencies, usable across layers.

// AccountRequest describes one account's download job. Immutable for the
// lifetime of the job.
type AccountRequest struct {
	AccountNumber string
	Month         string // six-digit YYYYMM key
	SaveFolder    string
}

// InvoiceIndex is the result of resolving (account, month) against the billing
// database: the customer's display name and the notice ids emitted that month,
// in row order. InvoiceIDs is never empty; a lookup with no rows fails instead
// of producing an index.
type InvoiceIndex struct {
	CustomerName string
	InvoiceIDs   []string
}

// FetchStatus is the outcome of a single document fetch.
type FetchStatus string

const (
	// StatusDownloaded means the PDF was retrieved and written to disk.
	StatusDownloaded FetchStatus = "downloaded"
	// StatusSkipped means the target file already existed; no request was made.
	StatusSkipped FetchStatus = "skipped"
	// StatusMissing means the server reported no document for the invoice id (HTTP 422).
	StatusMissing FetchStatus = "missing"
	// StatusTransportError covers any other HTTP, transport, or filesystem failure.
	StatusTransportError FetchStatus = "transport_error"
)

// AccountOutcome tallies per-invoice results for one account.
// When the index lookup succeeded, Downloaded+Skipped+Errors equals the number
// of invoice ids.
type AccountOutcome struct {
	Downloaded int
	Skipped    int
	Errors     int
}

// Total returns the number of invoices accounted for.
func (o AccountOutcome) Total() int {
	return o.Downloaded + o.Skipped + o.Errors
}

// Severity classifies a ResultRecord for the consuming front-end.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarn    Severity = "warn"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// ResultRecord is one human-readable progress line emitted to the caller.
type ResultRecord struct {
	Message  string
	Severity Severity
}
