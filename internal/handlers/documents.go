package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gimbotech/certifier/internal/store"
)

// listDocuments returns the uploaded valuation sources, newest first
func (r *Router) listDocuments(w http.ResponseWriter, req *http.Request) {
	docs, err := r.store.ListRawDocuments(req.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch documents")
		return
	}
	respondJSON(w, http.StatusOK, docs)
}

// getDocument returns one source document with its parsed field snapshot
func (r *Router) getDocument(w http.ResponseWriter, req *http.Request) {
	doc, err := r.store.RawDocumentByID(req.Context(), pathID(req))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Document not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch document")
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// deleteDocument removes the record and the stored source PDF
func (r *Router) deleteDocument(w http.ResponseWriter, req *http.Request) {
	doc, err := r.store.RawDocumentByID(req.Context(), pathID(req))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Document not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch document")
		return
	}

	if err := r.store.DeleteRawDocument(req.Context(), doc.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}

	if err := r.blobs.Delete(doc.BlobPath); err != nil {
		log.Printf("⚠️ Failed to release document blob %s: %v", doc.BlobPath, err)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      doc.ID,
	})
}
