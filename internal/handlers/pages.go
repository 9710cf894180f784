package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gimbotech/certifier/internal/store"
	"github.com/gimbotech/certifier/internal/web"
)

// uploadPage serves the generation form
func (r *Router) uploadPage(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.Templates.ExecuteTemplate(w, "upload.html", nil); err != nil {
		log.Printf("❌ Failed to render upload page: %v", err)
	}
}

// previewPage shows one issued certificate with its download links.
// The QR verification link lands here as well.
func (r *Router) previewPage(w http.ResponseWriter, req *http.Request) {
	cert, err := r.store.CertificateByID(req.Context(), pathID(req))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Certificate not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch certificate", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.Templates.ExecuteTemplate(w, "preview.html", cert); err != nil {
		log.Printf("❌ Failed to render preview page: %v", err)
	}
}
