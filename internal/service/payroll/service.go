package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/payroll"
)

type PayrollServiceImpl struct {
	payrollRepo payroll.PayrollRepository
}

func NewPayrollService(payrollRepo payroll.PayrollRepository) payroll.PayrollService {
	return &PayrollServiceImpl{payrollRepo: payrollRepo}
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

func (s *PayrollServiceImpl) ListLockedRuns(ctx context.Context, req payroll.ListRunsRequest) ([]payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	organizationID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	runs, err := s.payrollRepo.GetLockedRunsByPeriod(ctx, organizationID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.RunResponse, 0, len(runs))
	for _, run := range runs {
		result = append(result, mapToRunResponse(run))
	}
	return result, nil
}

func (s *PayrollServiceImpl) ListRunEntries(ctx context.Context, runID string) (payroll.ListEntriesResponse, error) {
	organizationID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListEntriesResponse{}, err
	}

	// Scope check before fetching entries
	run, err := s.payrollRepo.GetRunByID(ctx, runID, organizationID)
	if err != nil {
		return payroll.ListEntriesResponse{}, err
	}

	entries, err := s.payrollRepo.GetEntriesByRunID(ctx, run.ID, organizationID)
	if err != nil {
		return payroll.ListEntriesResponse{}, err
	}

	resp := payroll.ListEntriesResponse{RunID: run.ID}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, mapToEntryResponse(entry))
	}
	return resp, nil
}

// ========== HELPERS ==========

func mapToRunResponse(r payroll.PayrollRun) payroll.RunResponse {
	var lockedAtStr *string
	if r.LockedAt != nil {
		str := r.LockedAt.Format(time.RFC3339)
		lockedAtStr = &str
	}

	return payroll.RunResponse{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		PayPeriod:      r.PayPeriod,
		Status:         string(r.Status),
		LockedAt:       lockedAtStr,
	}
}

func mapToEntryResponse(e payroll.PayrollEntry) payroll.EntryResponse {
	employeeName := ""
	if e.EmployeeName != nil {
		employeeName = *e.EmployeeName
	}

	return payroll.EntryResponse{
		ID:                e.ID,
		RunID:             e.RunID,
		EmployeeID:        e.EmployeeID,
		EmployeeName:      employeeName,
		Department:        e.Department,
		JobTitle:          e.JobTitle,
		GrossEarnings:     e.GrossEarnings,
		EarningsBreakdown: e.EarningsBreakdown,
		PFEmployee:        e.PFEmployee,
		PFEmployer:        e.PFEmployer,
		NetPay:            e.NetPay,
		TDSAmount:         e.TDSAmount,
		ESIEmployee:       e.ESIEmployee,
		TotalDeductions:   e.TotalDeductions,
		LWPDays:           e.LWPDays,
		WorkingDays:       e.WorkingDays,
		PaidDays:          e.PaidDays,
		AnnualCTC:         e.AnnualCTC,
	}
}
