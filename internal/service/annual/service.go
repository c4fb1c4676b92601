package annual

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/annual"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/payroll"
)

type AnnualServiceImpl struct {
	payrollRepo payroll.PayrollRepository
	summaryRepo annual.TaxSummaryRepository
}

func NewAnnualService(
	payrollRepo payroll.PayrollRepository,
	summaryRepo annual.TaxSummaryRepository,
) annual.AnnualService {
	return &AnnualServiceImpl{
		payrollRepo: payrollRepo,
		summaryRepo: summaryRepo,
	}
}

// Helper to get organization_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (organizationID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", "", fmt.Errorf("organization_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return organizationID, userID, nil
}

func (s *AnnualServiceImpl) GenerateSummaries(ctx context.Context, req annual.GenerateSummariesRequest) (annual.GenerateSummariesResponse, error) {
	if err := req.Validate(); err != nil {
		return annual.GenerateSummariesResponse{}, err
	}

	organizationID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return annual.GenerateSummariesResponse{}, err
	}

	fy, err := annual.ParseFinancialYear(req.FinancialYear)
	if err != nil {
		return annual.GenerateSummariesResponse{}, err
	}
	periodStart, periodEnd := fy.Window()

	// Preconditions fail before any persistence is attempted.
	runs, err := s.payrollRepo.GetLockedRunsByPeriod(ctx, organizationID, periodStart, periodEnd)
	if err != nil {
		return annual.GenerateSummariesResponse{}, fmt.Errorf("failed to get locked runs: %w", err)
	}
	if len(runs) == 0 {
		return annual.GenerateSummariesResponse{}, annual.ErrNoLockedRuns
	}

	runIDs := make([]string, 0, len(runs))
	for _, run := range runs {
		runIDs = append(runIDs, run.ID)
	}

	entries, err := s.payrollRepo.GetEntriesByRunIDs(ctx, organizationID, runIDs)
	if err != nil {
		return annual.GenerateSummariesResponse{}, fmt.Errorf("failed to get payroll entries: %w", err)
	}
	if len(entries) == 0 {
		return annual.GenerateSummariesResponse{}, annual.ErrNoEntriesFound
	}

	// One timestamp for the whole batch.
	generatedAt := time.Now()
	grouped := groupByEmployee(entries, organizationID, req.FinancialYear, generatedAt)

	// Sequential, non-transactional upsert loop. Each record's natural key
	// scopes its effect, so records written before a failure stay committed
	// and a full retry is a harmless overwrite.
	resp := annual.GenerateSummariesResponse{
		FinancialYear: req.FinancialYear,
		RunsIncluded:  len(runs),
	}
	for _, summary := range grouped {
		persisted, upsertErr := s.summaryRepo.UpsertSummary(ctx, summary)
		if upsertErr != nil {
			resp.Results = append(resp.Results, annual.UpsertResult{
				EmployeeID: summary.EmployeeID,
				Persisted:  false,
				Error:      upsertErr.Error(),
			})
			return resp, fmt.Errorf("failed to upsert tax summary for employee %s: %w", summary.EmployeeID, upsertErr)
		}
		resp.Results = append(resp.Results, annual.UpsertResult{EmployeeID: summary.EmployeeID, Persisted: true})
		resp.Summaries = append(resp.Summaries, mapToSummaryRow(persisted))
		resp.PersistedCount++
	}

	return resp, nil
}

func (s *AnnualServiceImpl) ListSummaries(ctx context.Context, financialYear string) (annual.ListSummariesResponse, error) {
	if _, err := annual.ParseFinancialYear(financialYear); err != nil {
		return annual.ListSummariesResponse{}, err
	}

	organizationID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return annual.ListSummariesResponse{}, err
	}

	summaries, err := s.summaryRepo.ListByFinancialYear(ctx, organizationID, financialYear)
	if err != nil {
		return annual.ListSummariesResponse{}, err
	}

	resp := annual.ListSummariesResponse{FinancialYear: financialYear}
	for _, summary := range summaries {
		resp.Summaries = append(resp.Summaries, mapToSummaryRow(summary))
	}
	return resp, nil
}

// groupByEmployee sums gross earnings and TDS per employee. Entries split
// across runs fold into the same totals as a single combined run would;
// emission order carries no meaning downstream.
func groupByEmployee(entries []payroll.PayrollEntry, organizationID, financialYear string, generatedAt time.Time) []annual.TaxSummary {
	byEmployee := make(map[string]*annual.TaxSummary)
	for _, entry := range entries {
		summary, ok := byEmployee[entry.EmployeeID]
		if !ok {
			summary = &annual.TaxSummary{
				EmployeeID:     entry.EmployeeID,
				OrganizationID: organizationID,
				FinancialYear:  financialYear,
				GeneratedAt:    generatedAt,
				EmployeeName:   entry.EmployeeName,
			}
			byEmployee[entry.EmployeeID] = summary
		}
		summary.TotalSalary = summary.TotalSalary.Add(entry.GrossEarnings)
		if entry.TDSAmount != nil {
			summary.TotalTDS = summary.TotalTDS.Add(*entry.TDSAmount)
		}
	}

	result := make([]annual.TaxSummary, 0, len(byEmployee))
	for _, summary := range byEmployee {
		result = append(result, *summary)
	}
	return result
}

func mapToSummaryRow(s annual.TaxSummary) annual.TaxSummaryRow {
	employeeName := ""
	if s.EmployeeName != nil {
		employeeName = *s.EmployeeName
	}

	return annual.TaxSummaryRow{
		EmployeeID:    s.EmployeeID,
		EmployeeName:  employeeName,
		FinancialYear: s.FinancialYear,
		TotalSalary:   s.TotalSalary,
		TotalTDS:      s.TotalTDS,
		GeneratedAt:   s.GeneratedAt.Format(time.RFC3339),
	}
}
