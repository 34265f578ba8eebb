// Package recognizer defines the port for receipt and invoice recognition.
// Implementations extract an amount, vendor, and date from an uploaded
// document; the worker writes the result back onto the document row.
package recognizer

import (
	"context"

	"homeledger/internal/core"
)

// Result is the extracted content of one document. Empty fields mean the
// recognizer could not find that value.
type Result struct {
	Amount string
	Vendor string
	Date   string
}

// Recognizer extracts structured data from an uploaded document.
type Recognizer interface {
	// Recognize processes a document and returns its extracted content.
	Recognize(ctx context.Context, doc core.Document) (Result, error)

	// HealthCheck reports whether the recognition backend is reachable.
	HealthCheck(ctx context.Context) (bool, error)

	// Name identifies the implementation in logs.
	Name() string
}
