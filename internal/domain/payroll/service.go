package payroll

import "context"

// PayrollService exposes read access to locked runs and their entries.
// Run generation and locking belong to the upstream payroll processor.
type PayrollService interface {
	// ListLockedRuns returns the organization's locked runs within an
	// inclusive pay-period range.
	ListLockedRuns(ctx context.Context, req ListRunsRequest) ([]RunResponse, error)

	// ListRunEntries returns all entries of one run.
	ListRunEntries(ctx context.Context, runID string) (ListEntriesResponse, error)
}
