package recognizer

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"homeledger/internal/core"
)

// amountInName matches an amount embedded in a file name, e.g.
// "receipt_2350.jpg" or "invoice-1,200.pdf".
var amountInName = regexp.MustCompile(`(\d[\d,]*)\s*\.(?:jpg|jpeg|png|pdf)$`)

// dateInName matches a YYYY-MM-DD date embedded in a file name.
var dateInName = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// MockRecognizer is a deterministic fallback implementation. It parses
// whatever it can out of the file name so the document pipeline keeps
// moving when no real recognition backend is configured.
type MockRecognizer struct{}

func NewMockRecognizer() *MockRecognizer {
	return &MockRecognizer{}
}

func (m *MockRecognizer) Recognize(ctx context.Context, doc core.Document) (Result, error) {
	slog.WarnContext(ctx, "Mock recognizer processing document (degraded mode)",
		"document_id", doc.ID,
		"file_name", doc.FileName)

	var res Result
	name := doc.FileName
	if date := dateInName.FindString(name); date != "" {
		res.Date = date
		// Strip the date so its digits are not mistaken for an amount.
		name = dateInName.ReplaceAllString(name, "")
	}
	if match := amountInName.FindStringSubmatch(name); match != nil {
		res.Amount = strings.ReplaceAll(match[1], ",", "")
	}

	// The vendor is the file name with extension and extracted markers removed.
	vendor := name
	if idx := strings.LastIndex(vendor, "."); idx > 0 {
		vendor = vendor[:idx]
	}
	vendor = strings.TrimRight(vendor, "0123456789,")
	vendor = strings.Trim(vendor, "-_ .")
	res.Vendor = vendor

	return res, nil
}

// HealthCheck always returns false: the mock is a degraded state, not a
// real backend.
func (m *MockRecognizer) HealthCheck(ctx context.Context) (bool, error) {
	return false, nil
}

func (m *MockRecognizer) Name() string {
	return "mock"
}
