package amqp

import (
	"encoding/json"
	"time"
)

// LedgerExportMessage is a lightweight message queueing a payment item for
// ledger export. It carries only the ID and version; the worker fetches the
// full item from the database.
type LedgerExportMessage struct {
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerExportMessage creates a new export message with just ID and version
func NewLedgerExportMessage(id, version int64) *LedgerExportMessage {
	return &LedgerExportMessage{
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerExportMessageFromJSON creates a message from JSON bytes
func LedgerExportMessageFromJSON(data []byte) (*LedgerExportMessage, error) {
	var msg LedgerExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DocumentScanMessage queues an uploaded document for recognition. The worker
// fetches the document metadata from the database by ID.
type DocumentScanMessage struct {
	DocumentID string    `json:"document_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewDocumentScanMessage creates a new scan message for a document
func NewDocumentScanMessage(documentID string) *DocumentScanMessage {
	return &DocumentScanMessage{
		DocumentID: documentID,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *DocumentScanMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DocumentScanMessageFromJSON creates a message from JSON bytes
func DocumentScanMessageFromJSON(data []byte) (*DocumentScanMessage, error) {
	var msg DocumentScanMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
