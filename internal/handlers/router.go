package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gimbotech/certifier/internal/config"
	"github.com/gimbotech/certifier/internal/events"
	"github.com/gimbotech/certifier/internal/middleware"
	"github.com/gimbotech/certifier/internal/storage"
	"github.com/gimbotech/certifier/internal/store"
	"github.com/gimbotech/certifier/internal/workflow"
	"github.com/gorilla/mux"
)

// Router wraps the mux router and the service collaborators
type Router struct {
	*mux.Router
	store *store.Store
	wf    *workflow.Workflow
	blobs *storage.Store
	hub   *events.Hub
	cfg   *config.Config
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(st *store.Store, wf *workflow.Workflow, blobs *storage.Store, hub *events.Hub, cfg *config.Config) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		store:  st,
		wf:     wf,
		blobs:  blobs,
		hub:    hub,
		cfg:    cfg,
	}

	r.Use(middleware.Logging)

	requireAuth := middleware.Auth(cfg.JWTSecret)
	protect := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")

	// Certificate routes
	certs := r.PathPrefix("/api/certificates").Subrouter()
	certs.HandleFunc("", r.createCertificate).Methods("POST")
	certs.HandleFunc("", r.listCertificates).Methods("GET")
	certs.HandleFunc("/register.pdf", r.certificateRegister).Methods("GET")
	certs.HandleFunc("/{id:[0-9]+}", r.getCertificate).Methods("GET")
	certs.Handle("/{id:[0-9]+}", protect(r.deleteCertificate)).Methods("DELETE")
	certs.HandleFunc("/{id:[0-9]+}/imeis", r.updateImeis).Methods("PUT")
	certs.HandleFunc("/{id:[0-9]+}/download/{variant:docx|pdf}", r.downloadCertificate).Methods("GET")
	certs.HandleFunc("/{id:[0-9]+}/qr", r.certificateQR).Methods("GET")

	// Template routes
	tpls := r.PathPrefix("/api/templates").Subrouter()
	tpls.HandleFunc("", r.createTemplate).Methods("POST")
	tpls.HandleFunc("", r.listTemplates).Methods("GET")
	tpls.HandleFunc("/{id:[0-9]+}", r.getTemplate).Methods("GET")
	tpls.Handle("/{id:[0-9]+}", protect(r.deleteTemplate)).Methods("DELETE")

	// Source document routes
	docs := r.PathPrefix("/api/documents").Subrouter()
	docs.HandleFunc("", r.listDocuments).Methods("GET")
	docs.HandleFunc("/{id:[0-9]+}", r.getDocument).Methods("GET")
	docs.Handle("/{id:[0-9]+}", protect(r.deleteDocument)).Methods("DELETE")

	// Event stream for the dashboard
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		events.ServeWs(hub, w, req)
	})

	// Web pages
	r.HandleFunc("/", r.uploadPage).Methods("GET")
	r.HandleFunc("/certificates/{id:[0-9]+}", r.previewPage).Methods("GET")
	r.HandleFunc("/certificates/{id:[0-9]+}/verify", r.previewPage).Methods("GET")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"listeners": r.hub.ClientCount(),
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
