package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gimbotech/certifier/internal/models"
	"github.com/gimbotech/certifier/internal/render"
	"github.com/gimbotech/certifier/internal/storage"
	"github.com/gimbotech/certifier/internal/store"
	"gorm.io/datatypes"
)

// createTemplate stores a reusable certificate template after checking
// that it is a readable DOCX and recording its placeholder names.
func (r *Router) createTemplate(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	name, data, err := readFormFile(req, "template_docx")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Template file is required (template_docx)")
		return
	}
	if !strings.EqualFold(filepath.Ext(name), ".docx") {
		respondError(w, http.StatusBadRequest, "Template must be a .docx file")
		return
	}

	placeholders, err := render.Placeholders(data)
	if err != nil {
		if errors.Is(err, render.ErrInvalidTemplate) {
			respondError(w, http.StatusUnprocessableEntity, "Uploaded file is not a readable DOCX")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to inspect template")
		return
	}

	blobPath, err := r.blobs.Save(storage.CategoryTemplates, name, data)
	if err != nil {
		log.Printf("❌ Failed to store template blob: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to store template")
		return
	}

	names, _ := json.Marshal(placeholders)
	tpl := models.CertificateTemplate{
		Name:         name,
		BlobPath:     blobPath,
		Placeholders: datatypes.JSON(names),
	}

	if err := r.store.CreateTemplate(req.Context(), &tpl); err != nil {
		if derr := r.blobs.Delete(blobPath); derr != nil {
			log.Printf("⚠️ Failed to release orphan template blob %s: %v", blobPath, derr)
		}
		respondError(w, http.StatusInternalServerError, "Failed to record template")
		return
	}

	respondJSON(w, http.StatusCreated, tpl)
}

func (r *Router) listTemplates(w http.ResponseWriter, req *http.Request) {
	tpls, err := r.store.ListTemplates(req.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch templates")
		return
	}
	respondJSON(w, http.StatusOK, tpls)
}

// getTemplate returns one template record with its placeholder names
func (r *Router) getTemplate(w http.ResponseWriter, req *http.Request) {
	tpl, err := r.store.TemplateByID(req.Context(), pathID(req))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Template not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch template")
		return
	}
	respondJSON(w, http.StatusOK, tpl)
}

// deleteTemplate removes the record and its blob. Certificates that
// reference it keep their rendered payloads but can no longer be
// regenerated.
func (r *Router) deleteTemplate(w http.ResponseWriter, req *http.Request) {
	tpl, err := r.store.TemplateByID(req.Context(), pathID(req))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Template not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch template")
		return
	}

	if err := r.store.DeleteTemplate(req.Context(), tpl.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	if err := r.blobs.Delete(tpl.BlobPath); err != nil {
		log.Printf("⚠️ Failed to release template blob %s: %v", tpl.BlobPath, err)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      tpl.ID,
	})
}
