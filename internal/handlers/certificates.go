package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gimbotech/certifier/internal/extract"
	"github.com/gimbotech/certifier/internal/report"
	"github.com/gimbotech/certifier/internal/store"
	"github.com/gimbotech/certifier/internal/workflow"
	"github.com/gorilla/mux"
)

// Uploads above this size are rejected outright
const maxUploadBytes = 32 << 20

func pathID(req *http.Request) uint {
	id, _ := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	return uint(id)
}

func readFormFile(req *http.Request, field string) (string, []byte, error) {
	file, header, err := req.FormFile(field)
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}

// createCertificate runs the full pipeline for one uploaded valuation:
// extract, parse, fill the template and record the issued certificate.
func (r *Router) createCertificate(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	pdfName, pdfBytes, err := readFormFile(req, "pdf_file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Valuation PDF is required (pdf_file)")
		return
	}

	input := workflow.GenerateInput{
		PDFName:  pdfName,
		PDFBytes: pdfBytes,
		Imei1:    req.FormValue("imei1"),
		Imei2:    req.FormValue("imei2"),
	}

	if name, data, err := readFormFile(req, "certificate_docx"); err == nil {
		input.TemplateName = name
		input.TemplateBytes = data
	}

	if raw := req.FormValue("start_number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "start_number must be a positive integer")
			return
		}
		input.StartNumber = &n
	}

	cert, err := r.wf.Generate(req.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrInvalidUpload), errors.Is(err, workflow.ErrTemplateRequired):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, extract.ErrInvalidPDF):
			respondError(w, http.StatusUnprocessableEntity, "Uploaded file is not a readable PDF")
		default:
			log.Printf("❌ Certificate generation failed: %v", err)
			respondError(w, http.StatusInternalServerError, "Certificate generation failed")
		}
		return
	}

	respondJSON(w, http.StatusCreated, cert)
}

// listCertificates returns the issued register, newest numbers first
func (r *Router) listCertificates(w http.ResponseWriter, req *http.Request) {
	certs, err := r.store.ListCertificates(req.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch certificates")
		return
	}
	respondJSON(w, http.StatusOK, certs)
}

func (r *Router) getCertificate(w http.ResponseWriter, req *http.Request) {
	cert, err := r.store.CertificateByID(req.Context(), pathID(req))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Certificate not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch certificate")
		return
	}
	respondJSON(w, http.StatusOK, cert)
}

// UpdateImeisRequest carries the only fields editable after issue
type UpdateImeisRequest struct {
	Imei1 string `json:"imei1"`
	Imei2 string `json:"imei2"`
}

// updateImeis sets the tracker serials and re-renders the document while
// keeping the certificate number and dates.
func (r *Router) updateImeis(w http.ResponseWriter, req *http.Request) {
	var body UpdateImeisRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	cert, err := r.store.CertificateByID(req.Context(), pathID(req))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Certificate not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch certificate")
		return
	}

	cert.Imei1 = body.Imei1
	cert.Imei2 = body.Imei2

	if err := r.wf.Regenerate(req.Context(), cert); err != nil {
		if errors.Is(err, workflow.ErrRegenerationUnavailable) {
			respondError(w, http.StatusConflict, "Source template is gone, certificate cannot be re-rendered")
			return
		}
		log.Printf("❌ Regeneration of certificate %d failed: %v", cert.CertificateNumber, err)
		respondError(w, http.StatusInternalServerError, "Regeneration failed")
		return
	}

	respondJSON(w, http.StatusOK, cert)
}

// deleteCertificate removes the record and releases both payload files
func (r *Router) deleteCertificate(w http.ResponseWriter, req *http.Request) {
	cert, err := r.store.CertificateByID(req.Context(), pathID(req))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Certificate not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch certificate")
		return
	}

	if err := r.store.DeleteCertificate(req.Context(), cert.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete certificate")
		return
	}

	for _, path := range []string{cert.DocxPath, cert.PdfPath} {
		if path == "" {
			continue
		}
		if err := r.blobs.Delete(path); err != nil {
			log.Printf("⚠️ Failed to release payload %s: %v", path, err)
		}
	}

	r.hub.Notify("certificate.deleted", map[string]interface{}{
		"id":                 cert.ID,
		"certificate_number": cert.CertificateNumber,
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      cert.ID,
	})
}

// downloadCertificate streams the DOCX or PDF payload as an attachment
func (r *Router) downloadCertificate(w http.ResponseWriter, req *http.Request) {
	cert, err := r.store.CertificateByID(req.Context(), pathID(req))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Certificate not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch certificate")
		return
	}

	variant := mux.Vars(req)["variant"]
	var path, contentType string
	switch variant {
	case "docx":
		path = cert.DocxPath
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "pdf":
		path = cert.PdfPath
		contentType = "application/pdf"
	}

	if path == "" {
		respondError(w, http.StatusNotFound, fmt.Sprintf("No %s payload for this certificate", variant))
		return
	}

	data, err := r.blobs.Read(path)
	if err != nil {
		log.Printf("❌ Payload %s unreadable: %v", path, err)
		respondError(w, http.StatusInternalServerError, "Payload unreadable")
		return
	}

	filename := fmt.Sprintf("CERT-%d.%s", cert.CertificateNumber, variant)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// certificateQR returns the verification QR code as a PNG
func (r *Router) certificateQR(w http.ResponseWriter, req *http.Request) {
	cert, err := r.store.CertificateByID(req.Context(), pathID(req))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Certificate not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch certificate")
		return
	}

	png, err := report.QRCode(r.cfg.BaseURL, cert)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// certificateRegister renders the whole issued register as a PDF table
func (r *Router) certificateRegister(w http.ResponseWriter, req *http.Request) {
	certs, err := r.store.ListCertificates(req.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch certificates")
		return
	}

	data, err := report.RegisterPDF(r.cfg.BaseURL, certs)
	if err != nil {
		log.Printf("❌ Register rendering failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to render register")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="certificate-register.pdf"`)
	w.Write(data)
}
