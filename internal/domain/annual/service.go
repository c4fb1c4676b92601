package annual

import "context"

// AnnualService aggregates locked payroll entries into per-employee tax
// summaries for a financial year and persists them.
type AnnualService interface {
	// GenerateSummaries recomputes and upserts the organization's summaries
	// for one financial year. Safe to re-run: the natural key makes a repeat
	// invocation overwrite, never duplicate.
	GenerateSummaries(ctx context.Context, req GenerateSummariesRequest) (GenerateSummariesResponse, error)

	// ListSummaries returns the persisted summaries of one financial year.
	ListSummaries(ctx context.Context, financialYear string) (ListSummariesResponse, error)
}
