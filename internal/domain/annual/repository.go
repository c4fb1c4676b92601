package annual

import "context"

// TaxSummaryRepository defines data access for annual tax summaries.
// All methods include organizationID to prevent cross-organization data access.
type TaxSummaryRepository interface {
	// UpsertSummary inserts the record, or replaces the non-key fields of an
	// existing row with the same (employee_id, organization_id, financial_year).
	UpsertSummary(ctx context.Context, summary TaxSummary) (TaxSummary, error)

	// ListByFinancialYear returns every persisted summary of one year.
	ListByFinancialYear(ctx context.Context, organizationID string, financialYear string) ([]TaxSummary, error)
}
