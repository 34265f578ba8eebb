package worker

import (
	"context"
	"errors"
	"testing"

	"homeledger/internal/amqp"
	"homeledger/internal/core"
	"homeledger/internal/recognizer"
	"homeledger/internal/storage"
)

type stubScanStore struct {
	docs       map[string]core.Document
	recognized map[string]recognizer.Result
	failed     []string
}

func newStubScanStore(docs ...core.Document) *stubScanStore {
	s := &stubScanStore{
		docs:       make(map[string]core.Document),
		recognized: make(map[string]recognizer.Result),
	}
	for _, d := range docs {
		s.docs[d.ID] = d
	}
	return s
}

func (s *stubScanStore) GetDocument(_ context.Context, id string) (core.Document, error) {
	doc, ok := s.docs[id]
	if !ok {
		return core.Document{}, storage.ErrNotFound
	}
	return doc, nil
}

func (s *stubScanStore) ListDocuments(_ context.Context) ([]core.Document, error) {
	var docs []core.Document
	for _, d := range s.docs {
		docs = append(docs, d)
	}
	return docs, nil
}

func (s *stubScanStore) MarkDocumentRecognized(_ context.Context, id, amount, vendor, date string) error {
	s.recognized[id] = recognizer.Result{Amount: amount, Vendor: vendor, Date: date}
	return nil
}

func (s *stubScanStore) MarkDocumentFailed(_ context.Context, id string) error {
	s.failed = append(s.failed, id)
	return nil
}

type failingRecognizer struct{}

func (failingRecognizer) Recognize(context.Context, core.Document) (recognizer.Result, error) {
	return recognizer.Result{}, errors.New("backend unreachable")
}

func (failingRecognizer) HealthCheck(context.Context) (bool, error) { return false, nil }

func (failingRecognizer) Name() string { return "failing" }

func TestScanWorker_HandleScanMessage(t *testing.T) {
	store := newStubScanStore(core.Document{
		ID:       "doc-1",
		FileName: "receipt_2350.jpg",
		Status:   core.DocumentPending,
	})
	worker := NewScanWorker(store, recognizer.NewMockRecognizer())

	msg := &amqp.DocumentScanMessage{DocumentID: "doc-1"}
	if err := worker.HandleScanMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleScanMessage() error = %v", err)
	}

	result, ok := store.recognized["doc-1"]
	if !ok {
		t.Fatal("document should be marked recognized")
	}
	if result.Amount != "2350" {
		t.Errorf("recognized amount = %q, want 2350", result.Amount)
	}
	if result.Vendor != "receipt" {
		t.Errorf("recognized vendor = %q, want receipt", result.Vendor)
	}
}

func TestScanWorker_HandleScanMessageMissingDocument(t *testing.T) {
	worker := NewScanWorker(newStubScanStore(), recognizer.NewMockRecognizer())

	msg := &amqp.DocumentScanMessage{DocumentID: "nope"}
	err := worker.HandleScanMessage(context.Background(), msg)
	if err == nil {
		t.Fatal("HandleScanMessage should fail for a missing document")
	}
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestScanWorker_HandleScanMessageSkipsProcessed(t *testing.T) {
	store := newStubScanStore(core.Document{
		ID:       "doc-1",
		FileName: "receipt_2350.jpg",
		Status:   core.DocumentRecognized,
	})
	worker := NewScanWorker(store, recognizer.NewMockRecognizer())

	msg := &amqp.DocumentScanMessage{DocumentID: "doc-1"}
	if err := worker.HandleScanMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleScanMessage() error = %v", err)
	}
	if len(store.recognized) != 0 {
		t.Error("already processed document must not be re-recognized")
	}
}

func TestScanWorker_RecognizerFailureMarksDocument(t *testing.T) {
	store := newStubScanStore(core.Document{
		ID:       "doc-1",
		FileName: "scan.pdf",
		Status:   core.DocumentPending,
	})
	worker := NewScanWorker(store, failingRecognizer{})

	msg := &amqp.DocumentScanMessage{DocumentID: "doc-1"}
	if err := worker.HandleScanMessage(context.Background(), msg); err == nil {
		t.Fatal("HandleScanMessage should propagate recognizer failure")
	}
	if len(store.failed) != 1 || store.failed[0] != "doc-1" {
		t.Errorf("failed ids = %v, want [doc-1]", store.failed)
	}
}

func TestScanWorker_ProcessPendingDocuments(t *testing.T) {
	store := newStubScanStore(
		core.Document{ID: "a", FileName: "invoice-1,200.pdf", Status: core.DocumentPending},
		core.Document{ID: "b", FileName: "done.jpg", Status: core.DocumentRecognized},
		core.Document{ID: "c", FileName: "costco-890.png", Status: core.DocumentPending},
	)
	worker := NewScanWorker(store, recognizer.NewMockRecognizer())

	if err := worker.ProcessPendingDocuments(context.Background()); err != nil {
		t.Fatalf("ProcessPendingDocuments() error = %v", err)
	}

	if len(store.recognized) != 2 {
		t.Fatalf("recognized %d documents, want 2", len(store.recognized))
	}
	if got := store.recognized["a"].Amount; got != "1200" {
		t.Errorf("document a amount = %q, want 1200", got)
	}
	if got := store.recognized["c"].Amount; got != "890" {
		t.Errorf("document c amount = %q, want 890", got)
	}
}
