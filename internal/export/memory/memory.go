// Package memory is an in-process LedgerWriter for development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"homeledger/internal/core"
	"homeledger/internal/export"
)

type Store struct {
	mu    sync.Mutex
	items []core.PaymentItem
}

var _ export.LedgerWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Append stores the item and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, item core.PaymentItem) (string, error) {
	if err := item.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Items returns a copy of everything appended so far.
func (s *Store) Items() []core.PaymentItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.PaymentItem(nil), s.items...)
}
