package export

import (
	"context"
	"io"
)

// ExportService renders locked payroll runs into fixed-column delimited files.
type ExportService interface {
	// ExportRun fetches the run's entries and renders them with the named profile.
	ExportRun(ctx context.Context, req ExportRunRequest) (ExportFile, error)

	// SaveExport persists a produced file through the configured storage and
	// returns the stored path and a retrievable URL.
	SaveExport(ctx context.Context, file ExportFile) (StoredExportResponse, error)

	// OpenStoredExport streams a previously saved export file.
	OpenStoredExport(ctx context.Context, path string) (io.ReadCloser, error)

	// DeleteStoredExport removes a previously saved export file.
	DeleteStoredExport(ctx context.Context, path string) error
}
