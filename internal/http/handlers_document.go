package http

import (
	"log/slog"
	"net/http"
	"strings"

	"homeledger/internal/core"
)

type uploadDocumentRequest struct {
	FileName    string `json:"file_name"`
	FileURL     string `json:"file_url"`
	ContentType string `json:"content_type"`
}

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	var req uploadDocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.FileName = sanitizeInput(req.FileName)
	if req.FileName == "" {
		writeError(w, http.StatusUnprocessableEntity, "file_name is required")
		return
	}

	doc, err := s.documents.UploadDocument(r.Context(), req.FileName, strings.TrimSpace(req.FileURL), strings.TrimSpace(req.ContentType))
	if err != nil {
		slog.ErrorContext(r.Context(), "Upload document error", "error", err, "file_name", req.FileName)
		writeError(w, http.StatusInternalServerError, "failed to register document")
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.documents.ListDocuments(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List documents error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	if docs == nil {
		docs = []core.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing document id")
		return
	}

	doc, err := s.documents.GetDocument(r.Context(), id)
	if err != nil {
		writeError(w, storageStatus(err), "document not found")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
