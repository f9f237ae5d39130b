package handlers

import (
	"net/http"

	"heartmatch-backend/internal/middleware"
	"heartmatch-backend/internal/services"
)

// ExportHandler handles account export HTTP requests
type ExportHandler struct {
	exportService *services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Export handles POST /api/v1/export
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	upload, err := h.exportService.Export(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, userID, "export account")
		return
	}

	respondJSON(w, http.StatusOK, upload)
}
