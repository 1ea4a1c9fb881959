package httpadapter

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jfaulkner/taxdesk/internal/core/domain"
	"github.com/jfaulkner/taxdesk/internal/core/fields"
	"github.com/jfaulkner/taxdesk/internal/core/ports"
)

// maxUploadBytes caps the multipart memory buffer; larger files spill to
// temp files.
const maxUploadBytes = 32 << 20

func (rt *Router) documentsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDocument(w, r)
	case http.MethodGet:
		rt.listDocuments(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart form is required"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	taxYear, err := strconv.Atoi(r.FormValue("tax_year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "tax_year must be a number"})
		return
	}

	doc, err := rt.uploader.Upload(r.Context(), ports.UploadRequest{
		ClientID:     r.FormValue("client_id"),
		TaxYear:      taxYear,
		FileName:     fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		DocumentType: domain.DocumentType(r.FormValue("document_type")),
		UploadedBy:   r.FormValue("uploaded_by"),
		Body:         file,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordUpload(serviceName, string(doc.DocumentType), doc.RequiresReview)
	}
	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "client_id is required"})
		return
	}
	taxYear, err := strconv.Atoi(r.URL.Query().Get("tax_year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "tax_year must be a number"})
		return
	}

	docs, err := rt.documents.ListByClient(r.Context(), clientID, taxYear)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (rt *Router) documentSubtree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	switch sub {
	case "":
		rt.getDocumentByID(w, r, id)
	case "fields":
		rt.listDocumentFields(w, r, id)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
	}
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request, id string) {
	doc, err := rt.documents.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

type fieldResponse struct {
	domain.ExtractedField
	Label string `json:"label"`
}

func (rt *Router) listDocumentFields(w http.ResponseWriter, r *http.Request, documentID string) {
	rows, err := rt.fields.ListByDocument(r.Context(), documentID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]fieldResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, fieldResponse{
			ExtractedField: row,
			Label:          fields.Label(row.FieldName),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"fields": out})
}
