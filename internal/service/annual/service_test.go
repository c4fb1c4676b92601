package annual

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/annual"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/zenithly-hr/payroll-backend-go/internal/pkg/jwt"
)

const testOrgID = "org-1"

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// authedContext mints an access token through the JWT service and verifies it
// back into a request context, the round trip the Verifier middleware performs.
func authedContext(t *testing.T, organizationID string) context.Context {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret", "15m")
	tokenString, _, err := jwtService.GenerateAccessToken("user-1", organizationID, "payroll_admin")
	require.NoError(t, err)
	token, err := jwtauth.VerifyToken(jwtService.JWTAuth(), tokenString)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// ========== FAKES ==========

type fakePayrollRepo struct {
	runs    []payroll.PayrollRun
	entries []payroll.PayrollEntry
}

func (f *fakePayrollRepo) GetRunByID(ctx context.Context, id string, organizationID string) (payroll.PayrollRun, error) {
	for _, run := range f.runs {
		if run.ID == id && run.OrganizationID == organizationID {
			return run, nil
		}
	}
	return payroll.PayrollRun{}, payroll.ErrRunNotFound
}

func (f *fakePayrollRepo) GetLockedRunsByPeriod(ctx context.Context, organizationID string, periodStart, periodEnd string) ([]payroll.PayrollRun, error) {
	var result []payroll.PayrollRun
	for _, run := range f.runs {
		if run.OrganizationID == organizationID &&
			run.Status == payroll.RunStatusLocked &&
			run.PayPeriod >= periodStart && run.PayPeriod <= periodEnd {
			result = append(result, run)
		}
	}
	return result, nil
}

func (f *fakePayrollRepo) GetEntriesByRunID(ctx context.Context, runID string, organizationID string) ([]payroll.PayrollEntry, error) {
	var result []payroll.PayrollEntry
	for _, entry := range f.entries {
		if entry.RunID == runID && entry.OrganizationID == organizationID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (f *fakePayrollRepo) GetEntriesByRunIDs(ctx context.Context, organizationID string, runIDs []string) ([]payroll.PayrollEntry, error) {
	ids := make(map[string]bool, len(runIDs))
	for _, id := range runIDs {
		ids[id] = true
	}
	var result []payroll.PayrollEntry
	for _, entry := range f.entries {
		if entry.OrganizationID == organizationID && ids[entry.RunID] {
			result = append(result, entry)
		}
	}
	return result, nil
}

type fakeSummaryRepo struct {
	store    map[string]annual.TaxSummary
	failFor  map[string]error
	attempts int
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{
		store:   make(map[string]annual.TaxSummary),
		failFor: make(map[string]error),
	}
}

func summaryKey(employeeID, organizationID, financialYear string) string {
	return employeeID + "|" + organizationID + "|" + financialYear
}

func (f *fakeSummaryRepo) UpsertSummary(ctx context.Context, summary annual.TaxSummary) (annual.TaxSummary, error) {
	f.attempts++
	if err, ok := f.failFor[summary.EmployeeID]; ok {
		return annual.TaxSummary{}, err
	}
	key := summaryKey(summary.EmployeeID, summary.OrganizationID, summary.FinancialYear)
	if existing, ok := f.store[key]; ok {
		summary.ID = existing.ID
	} else {
		summary.ID = fmt.Sprintf("summary-%d", len(f.store)+1)
	}
	f.store[key] = summary
	return summary, nil
}

func (f *fakeSummaryRepo) ListByFinancialYear(ctx context.Context, organizationID string, financialYear string) ([]annual.TaxSummary, error) {
	var result []annual.TaxSummary
	for _, summary := range f.store {
		if summary.OrganizationID == organizationID && summary.FinancialYear == financialYear {
			result = append(result, summary)
		}
	}
	return result, nil
}

func lockedRun(id, payPeriod string) payroll.PayrollRun {
	return payroll.PayrollRun{
		ID:             id,
		OrganizationID: testOrgID,
		PayPeriod:      payPeriod,
		Status:         payroll.RunStatusLocked,
	}
}

func entry(runID, employeeID string, gross int64, tds *decimal.Decimal) payroll.PayrollEntry {
	return payroll.PayrollEntry{
		RunID:          runID,
		OrganizationID: testOrgID,
		EmployeeID:     employeeID,
		GrossEarnings:  dec(gross),
		TDSAmount:      tds,
	}
}

// ========== TESTS ==========

func TestGenerateSummaries_SumsAcrossRuns(t *testing.T) {
	ctx := authedContext(t, testOrgID)
	payrollRepo := &fakePayrollRepo{
		runs: []payroll.PayrollRun{
			lockedRun("run-apr", "2023-04-01"),
			lockedRun("run-may", "2023-05-01"),
		},
		entries: []payroll.PayrollEntry{
			entry("run-apr", "emp-1", 60000, decPtr(3000)),
			entry("run-may", "emp-1", 62000, decPtr(3200)),
		},
	}
	summaryRepo := newFakeSummaryRepo()
	svc := NewAnnualService(payrollRepo, summaryRepo)

	resp, err := svc.GenerateSummaries(ctx, annual.GenerateSummariesRequest{FinancialYear: "2023-2024"})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.RunsIncluded)
	assert.Equal(t, 1, resp.PersistedCount)
	require.Len(t, resp.Summaries, 1)
	assert.Equal(t, "122000", resp.Summaries[0].TotalSalary.String())
	assert.Equal(t, "6200", resp.Summaries[0].TotalTDS.String())

	stored := summaryRepo.store[summaryKey("emp-1", testOrgID, "2023-2024")]
	assert.Equal(t, "122000", stored.TotalSalary.String())
	assert.Equal(t, "6200", stored.TotalTDS.String())
}

func TestGenerateSummaries_AbsentTDSCountsAsZero(t *testing.T) {
	ctx := authedContext(t, testOrgID)
	payrollRepo := &fakePayrollRepo{
		runs: []payroll.PayrollRun{lockedRun("run-apr", "2023-04-01")},
		entries: []payroll.PayrollEntry{
			entry("run-apr", "emp-1", 45000, nil),
		},
	}
	summaryRepo := newFakeSummaryRepo()
	svc := NewAnnualService(payrollRepo, summaryRepo)

	resp, err := svc.GenerateSummaries(ctx, annual.GenerateSummariesRequest{FinancialYear: "2023-2024"})
	require.NoError(t, err)

	require.Len(t, resp.Summaries, 1)
	assert.Equal(t, "45000", resp.Summaries[0].TotalSalary.String())
	assert.Equal(t, "0", resp.Summaries[0].TotalTDS.String())
}

func TestGenerateSummaries_NoLockedRuns(t *testing.T) {
	ctx := authedContext(t, testOrgID)
	svc := NewAnnualService(&fakePayrollRepo{}, newFakeSummaryRepo())

	_, err := svc.GenerateSummaries(ctx, annual.GenerateSummariesRequest{FinancialYear: "2023-2024"})
	assert.ErrorIs(t, err, annual.ErrNoLockedRuns)
}

func TestGenerateSummaries_NoEntries(t *testing.T) {
	ctx := authedContext(t, testOrgID)
	payrollRepo := &fakePayrollRepo{
		runs: []payroll.PayrollRun{lockedRun("run-apr", "2023-04-01")},
	}
	summaryRepo := newFakeSummaryRepo()
	svc := NewAnnualService(payrollRepo, summaryRepo)

	_, err := svc.GenerateSummaries(ctx, annual.GenerateSummariesRequest{FinancialYear: "2023-2024"})
	assert.ErrorIs(t, err, annual.ErrNoEntriesFound)
	assert.Zero(t, summaryRepo.attempts, "preconditions must fail before any persistence")
}

func TestGenerateSummaries_InvalidLabel(t *testing.T) {
	ctx := authedContext(t, testOrgID)
	svc := NewAnnualService(&fakePayrollRepo{}, newFakeSummaryRepo())

	for _, label := range []string{"2023-2025", "2024-2023", "2023", ""} {
		_, err := svc.GenerateSummaries(ctx, annual.GenerateSummariesRequest{FinancialYear: label})
		assert.Error(t, err, "label %q", label)
	}
}

func TestGenerateSummaries_RerunOverwrites(t *testing.T) {
	ctx := authedContext(t, testOrgID)
	payrollRepo := &fakePayrollRepo{
		runs: []payroll.PayrollRun{lockedRun("run-apr", "2023-04-01")},
		entries: []payroll.PayrollEntry{
			entry("run-apr", "emp-1", 60000, decPtr(3000)),
		},
	}
	summaryRepo := newFakeSummaryRepo()
	svc := NewAnnualService(payrollRepo, summaryRepo)

	req := annual.GenerateSummariesRequest{FinancialYear: "2023-2024"}
	_, err := svc.GenerateSummaries(ctx, req)
	require.NoError(t, err)
	_, err = svc.GenerateSummaries(ctx, req)
	require.NoError(t, err)

	// Second run replaced the record, it did not duplicate or double-count.
	assert.Len(t, summaryRepo.store, 1)
	assert.Equal(t, 2, summaryRepo.attempts)
	stored := summaryRepo.store[summaryKey("emp-1", testOrgID, "2023-2024")]
	assert.Equal(t, "60000", stored.TotalSalary.String())
	assert.Equal(t, "3000", stored.TotalTDS.String())
}

func TestGenerateSummaries_AdditivityAcrossRunSplits(t *testing.T) {
	ctx := authedContext(t, testOrgID)
	req := annual.GenerateSummariesRequest{FinancialYear: "2023-2024"}

	combined := &fakePayrollRepo{
		runs: []payroll.PayrollRun{lockedRun("run-1", "2023-04-01")},
		entries: []payroll.PayrollEntry{
			entry("run-1", "emp-1", 122000, decPtr(6200)),
		},
	}
	split := &fakePayrollRepo{
		runs: []payroll.PayrollRun{
			lockedRun("run-1", "2023-04-01"),
			lockedRun("run-2", "2023-05-01"),
		},
		entries: []payroll.PayrollEntry{
			entry("run-1", "emp-1", 60000, decPtr(3000)),
			entry("run-2", "emp-1", 62000, decPtr(3200)),
		},
	}

	combinedRepo := newFakeSummaryRepo()
	_, err := NewAnnualService(combined, combinedRepo).GenerateSummaries(ctx, req)
	require.NoError(t, err)

	splitRepo := newFakeSummaryRepo()
	_, err = NewAnnualService(split, splitRepo).GenerateSummaries(ctx, req)
	require.NoError(t, err)

	key := summaryKey("emp-1", testOrgID, "2023-2024")
	assert.Equal(t, combinedRepo.store[key].TotalSalary.String(), splitRepo.store[key].TotalSalary.String())
	assert.Equal(t, combinedRepo.store[key].TotalTDS.String(), splitRepo.store[key].TotalTDS.String())
}

func TestGenerateSummaries_PartialBatchOnUpsertFailure(t *testing.T) {
	ctx := authedContext(t, testOrgID)
	payrollRepo := &fakePayrollRepo{
		runs: []payroll.PayrollRun{lockedRun("run-apr", "2023-04-01")},
		entries: []payroll.PayrollEntry{
			entry("run-apr", "emp-1", 10000, nil),
			entry("run-apr", "emp-2", 20000, nil),
			entry("run-apr", "emp-3", 30000, nil),
		},
	}
	summaryRepo := newFakeSummaryRepo()
	summaryRepo.failFor["emp-2"] = errors.New("connection reset")
	svc := NewAnnualService(payrollRepo, summaryRepo)

	resp, err := svc.GenerateSummaries(ctx, annual.GenerateSummariesRequest{FinancialYear: "2023-2024"})
	require.Error(t, err)

	// The loop stops at the failed record; earlier upserts stay committed.
	require.NotEmpty(t, resp.Results)
	last := resp.Results[len(resp.Results)-1]
	assert.Equal(t, "emp-2", last.EmployeeID)
	assert.False(t, last.Persisted)
	assert.NotEmpty(t, last.Error)

	for _, result := range resp.Results[:len(resp.Results)-1] {
		assert.True(t, result.Persisted)
	}
	assert.Equal(t, resp.PersistedCount, len(resp.Results)-1)
	assert.Len(t, summaryRepo.store, resp.PersistedCount)
	_, stored := summaryRepo.store[summaryKey("emp-2", testOrgID, "2023-2024")]
	assert.False(t, stored)
}

func TestGenerateSummaries_MissingClaims(t *testing.T) {
	svc := NewAnnualService(&fakePayrollRepo{}, newFakeSummaryRepo())

	_, err := svc.GenerateSummaries(context.Background(), annual.GenerateSummariesRequest{FinancialYear: "2023-2024"})
	assert.Error(t, err)
}

func TestListSummaries(t *testing.T) {
	ctx := authedContext(t, testOrgID)
	payrollRepo := &fakePayrollRepo{
		runs: []payroll.PayrollRun{lockedRun("run-apr", "2023-04-01")},
		entries: []payroll.PayrollEntry{
			entry("run-apr", "emp-1", 60000, decPtr(3000)),
			entry("run-apr", "emp-2", 40000, nil),
		},
	}
	summaryRepo := newFakeSummaryRepo()
	svc := NewAnnualService(payrollRepo, summaryRepo)

	_, err := svc.GenerateSummaries(ctx, annual.GenerateSummariesRequest{FinancialYear: "2023-2024"})
	require.NoError(t, err)

	resp, err := svc.ListSummaries(ctx, "2023-2024")
	require.NoError(t, err)
	assert.Equal(t, "2023-2024", resp.FinancialYear)
	assert.Len(t, resp.Summaries, 2)
}

func TestFinancialYearWindow(t *testing.T) {
	fy, err := annual.ParseFinancialYear("2023-2024")
	require.NoError(t, err)

	start, end := fy.Window()
	assert.Equal(t, "2023-04-01", start)
	assert.Equal(t, "2024-03-31", end)
}
