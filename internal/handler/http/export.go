package http

import (
	"io"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/export"
	"github.com/zenithly-hr/payroll-backend-go/internal/handler/http/response"
)

type ExportHandler interface {
	ExportRun(w http.ResponseWriter, r *http.Request)
	DownloadStoredExport(w http.ResponseWriter, r *http.Request)
	DeleteStoredExport(w http.ResponseWriter, r *http.Request)
}

type exportHandlerImpl struct {
	exportService export.ExportService
}

func NewExportHandler(exportService export.ExportService) ExportHandler {
	return &exportHandlerImpl{exportService: exportService}
}

// ExportRun renders one locked run with the requested profile. The default
// delivery is a direct download; ?save=true stores the file instead and
// returns its path and URL.
func (h *exportHandlerImpl) ExportRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	req := export.ExportRunRequest{
		RunID:   runID,
		Profile: r.URL.Query().Get("profile"),
	}

	file, err := h.exportService.ExportRun(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if r.URL.Query().Get("save") == "true" {
		stored, err := h.exportService.SaveExport(r.Context(), file)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Created(w, "Export file stored", stored)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Content)
}

// DownloadStoredExport streams a previously saved export file as a download.
func (h *exportHandlerImpl) DownloadStoredExport(w http.ResponseWriter, r *http.Request) {
	storedPath := r.URL.Query().Get("path")
	if storedPath == "" {
		response.BadRequest(w, "path is required", nil)
		return
	}

	file, err := h.exportService.OpenStoredExport(r.Context(), storedPath)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+path.Base(storedPath)+"\"")
	io.Copy(w, file)
}

func (h *exportHandlerImpl) DeleteStoredExport(w http.ResponseWriter, r *http.Request) {
	storedPath := r.URL.Query().Get("path")
	if storedPath == "" {
		response.BadRequest(w, "path is required", nil)
		return
	}

	if err := h.exportService.DeleteStoredExport(r.Context(), storedPath); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Export file deleted", nil)
}
