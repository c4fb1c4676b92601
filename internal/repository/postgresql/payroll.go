package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/zenithly-hr/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== RUNS ==========

func (r *payrollRepository) GetRunByID(ctx context.Context, id string, organizationID string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, pay_period, status, locked_at, created_at, updated_at
		FROM payroll_runs
		WHERE id = $1 AND organization_id = $2
	`

	var run payroll.PayrollRun
	err := q.QueryRow(ctx, query, id, organizationID).Scan(
		&run.ID, &run.OrganizationID, &run.PayPeriod, &run.Status, &run.LockedAt,
		&run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) GetLockedRunsByPeriod(ctx context.Context, organizationID string, periodStart, periodEnd string) ([]payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, organization_id, pay_period, status, locked_at, created_at, updated_at
		FROM payroll_runs
		WHERE organization_id = $1
		  AND status = 'locked'
		  AND pay_period >= $2
		  AND pay_period <= $3
		ORDER BY pay_period
	`

	rows, err := q.Query(ctx, query, organizationID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list locked payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.PayrollRun
	for rows.Next() {
		var run payroll.PayrollRun
		if err := rows.Scan(
			&run.ID, &run.OrganizationID, &run.PayPeriod, &run.Status, &run.LockedAt,
			&run.CreatedAt, &run.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, nil
}

// ========== ENTRIES ==========

const entrySelectColumns = `
	pe.id, pe.run_id, pe.organization_id, pe.employee_id,
	pe.gross_earnings, pe.earnings_breakdown,
	pe.pf_employee, pe.pf_employer, pe.net_pay,
	pe.tds_amount, pe.esi_employee, pe.total_deductions,
	pe.lwp_days, pe.working_days, pe.paid_days, pe.annual_ctc,
	pe.created_at,
	e.full_name, e.department, e.job_title
`

func (r *payrollRepository) GetEntriesByRunID(ctx context.Context, runID string, organizationID string) ([]payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_entries pe
		LEFT JOIN employees e ON e.id = pe.employee_id
		WHERE pe.run_id = $1 AND pe.organization_id = $2
		ORDER BY e.full_name, pe.employee_id
	`, entrySelectColumns)

	rows, err := q.Query(ctx, query, runID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *payrollRepository) GetEntriesByRunIDs(ctx context.Context, organizationID string, runIDs []string) ([]payroll.PayrollEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_entries pe
		LEFT JOIN employees e ON e.id = pe.employee_id
		WHERE pe.organization_id = $1 AND pe.run_id = ANY($2)
	`, entrySelectColumns)

	rows, err := q.Query(ctx, query, organizationID, runIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]payroll.PayrollEntry, error) {
	var entries []payroll.PayrollEntry
	for rows.Next() {
		var entry payroll.PayrollEntry
		var breakdown []byte
		if err := rows.Scan(
			&entry.ID, &entry.RunID, &entry.OrganizationID, &entry.EmployeeID,
			&entry.GrossEarnings, &breakdown,
			&entry.PFEmployee, &entry.PFEmployer, &entry.NetPay,
			&entry.TDSAmount, &entry.ESIEmployee, &entry.TotalDeductions,
			&entry.LWPDays, &entry.WorkingDays, &entry.PaidDays, &entry.AnnualCTC,
			&entry.CreatedAt,
			&entry.EmployeeName, &entry.Department, &entry.JobTitle,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll entry: %w", err)
		}
		if len(breakdown) > 0 {
			if err := json.Unmarshal(breakdown, &entry.EarningsBreakdown); err != nil {
				return nil, fmt.Errorf("failed to decode earnings breakdown: %w", err)
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
