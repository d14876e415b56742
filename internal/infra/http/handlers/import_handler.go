package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/xavierca1/barsaude-crm/internal/infra/http/middleware"
	"github.com/xavierca1/barsaude-crm/internal/usecase"
)

// ImportHandler takes the bulk-distribution CSV. The body is either raw
// text/csv or a multipart form with a "file" field; an optional
// "salespeople" query lists names to distribute the rows over.
type ImportHandler struct {
	Import *usecase.ImportLeadsUseCase
}

func NewImportHandler(importUC *usecase.ImportLeadsUseCase) *ImportHandler {
	return &ImportHandler{Import: importUC}
}

func (h *ImportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var body io.Reader = r.Body

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file field"})
			return
		}
		defer file.Close()
		body = file
	}

	var salespeople []string
	if raw := r.URL.Query().Get("salespeople"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				salespeople = append(salespeople, name)
			}
		}
	}

	report, err := h.Import.Execute(r.Context(), body, salespeople)
	if err != nil {
		respondError(w, err)
		return
	}

	for i := 0; i < report.Queued; i++ {
		middleware.RecordImportRow("queued")
	}
	for range report.Skipped {
		middleware.RecordImportRow("skipped")
	}

	respondJSON(w, http.StatusAccepted, report)
}
