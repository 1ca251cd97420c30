package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Counter names in document_counters.
const (
	CounterPMOCReport = "pmoc_report"
	CounterReceipt    = "receipt"
)

// Document number prefixes.
const (
	PMOCPrefix    = "PMOC"
	ReceiptPrefix = "REC"
)

// nextCounterValue increments a named counter and returns the new value.
//
// It must run inside the transaction that inserts the numbered document. The
// upsert takes a row lock on the counter, so concurrent creators queue behind
// each other until commit or rollback; a rolled back insert gives its number
// back to the next caller.
func nextCounterValue(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	var value int64
	err := tx.QueryRow(ctx,
		`INSERT INTO document_counters (name, last_value) VALUES ($1, 1)
		 ON CONFLICT (name) DO UPDATE SET last_value = document_counters.last_value + 1
		 RETURNING last_value`,
		name,
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("failed to advance counter %s: %w", name, err)
	}
	return value, nil
}

// FormatDocumentNumber renders prefix-NNNNNN.
func FormatDocumentNumber(prefix string, n int64) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}
