package payroll

import "context"

// PayrollRepository defines data access methods for payroll runs and entries.
// All methods include organizationID parameter to prevent cross-organization data access.
type PayrollRepository interface {
	// Runs
	GetRunByID(ctx context.Context, id string, organizationID string) (PayrollRun, error)
	GetLockedRunsByPeriod(ctx context.Context, organizationID string, periodStart, periodEnd string) ([]PayrollRun, error)

	// Entries
	GetEntriesByRunID(ctx context.Context, runID string, organizationID string) ([]PayrollEntry, error)
	GetEntriesByRunIDs(ctx context.Context, organizationID string, runIDs []string) ([]PayrollEntry, error)
}
