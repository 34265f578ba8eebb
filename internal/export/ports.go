// Package export defines the outbound port for the external ledger. The
// ledger is an append-only journal: rows are added when payment items are
// created or updated, never removed.
package export

import (
	"context"

	"homeledger/internal/core"
)

// LedgerWriter appends one payment item to the external ledger and returns
// an implementation-specific row reference.
type LedgerWriter interface {
	Append(ctx context.Context, item core.PaymentItem) (rowRef string, err error)
}
