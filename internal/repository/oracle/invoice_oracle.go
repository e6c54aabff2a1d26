package oracle

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"invoicedl/internal/model"
	"invoicedl/internal/repository"
)

// noticeQuery joins notices to their billing period and payment form so that a
// customer reference plus a YYYYMM key selects exactly that month's notices.
// The text is kept verbatim for compatibility with the billing database; only
// bound placeholders carry caller input.
const noticeQuery = `
        SELECT FULL_NAME AS CUSTOMER_NAME, GPF.REFERENCE AS ACCOUNT_NUMBER, GN.ID_NOTICE
        FROM INCMS_ADMINIS.GCCB_NOTICE GN
            INNER JOIN INCMS_ADMINIS.GCCB_NOTICE_BILL GNB ON GN.ID_NOTICE = GNB.ID_NOTICE
            INNER JOIN INCMS_ADMINIS.GCCOM_BILL GB ON GNB.ID_BILL = GB.ID_BILL
            INNER JOIN INCMS_ADMINIS.GCCOM_BILLING_PERIOD GBP ON GB.ID_BILLING_PERIOD = GBP.ID_BILLING_PERIOD
            INNER JOIN INCMS_ADMINIS.GCCOM_PAYMENT_FORM GPF ON GB.ID_PAYMENT_FORM = GPF.ID_PAYMENT_FORM
            INNER JOIN INCMS_ADMINIS.GCCD_RELATIONSHIP GR ON GPF.ID_CUSTOMER = GR.ID_RELATIONSHIP
        WHERE GPF.REFERENCE = :account_number AND TO_CHAR(GBP.INITIAL_DATE, 'yyyymm') = :month
`

// InvoiceOracle is the Oracle implementation of repository.InvoiceRepository.
// It uses database/sql with named bind parameters and contains no business logic.
type InvoiceOracle struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewInvoiceOracle creates a new InvoiceOracle repository.
func NewInvoiceOracle(db *sql.DB, logger *slog.Logger) *InvoiceOracle {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvoiceOracle{db: db, logger: logger}
}

var _ repository.InvoiceRepository = (*InvoiceOracle)(nil)

// Lookup executes the notice query for (account, month). All rows share the
// customer name, taken from the first row; ids are returned in row order
// without deduplication, matching what the billing system emits.
func (r *InvoiceOracle) Lookup(ctx context.Context, accountNumber, month string) (*model.InvoiceIndex, error) {
	rows, err := r.db.QueryContext(ctx, noticeQuery,
		sql.Named("account_number", accountNumber),
		sql.Named("month", month),
	)
	if err != nil {
		return nil, fmt.Errorf("query notices: %w", err)
	}
	defer rows.Close()

	var index model.InvoiceIndex
	seen := make(map[string]bool)
	for rows.Next() {
		var customerName, accountRef, noticeID string
		if err := rows.Scan(&customerName, &accountRef, &noticeID); err != nil {
			return nil, fmt.Errorf("scan notice row: %w", err)
		}
		if index.CustomerName == "" {
			index.CustomerName = customerName
		}
		if seen[noticeID] {
			// No uniqueness constraint is visible on the notice join; keep the
			// duplicate but make it observable.
			r.logger.Warn("duplicate notice id in result set",
				"account", accountNumber, "month", month, "notice_id", noticeID)
		}
		seen[noticeID] = true
		index.InvoiceIDs = append(index.InvoiceIDs, noticeID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notice rows: %w", err)
	}

	if len(index.InvoiceIDs) == 0 {
		return nil, &repository.NotFoundError{AccountNumber: accountNumber, Month: month}
	}
	return &index, nil
}
