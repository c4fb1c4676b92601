package postgresql

import (
	"context"
	"fmt"

	"github.com/zenithly-hr/payroll-backend-go/internal/domain/annual"
	"github.com/zenithly-hr/payroll-backend-go/internal/pkg/database"
)

type taxSummaryRepository struct {
	db *database.DB
}

func NewTaxSummaryRepository(db *database.DB) annual.TaxSummaryRepository {
	return &taxSummaryRepository{db: db}
}

func (r *taxSummaryRepository) UpsertSummary(ctx context.Context, summary annual.TaxSummary) (annual.TaxSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO annual_tax_summaries (
			employee_id, organization_id, financial_year,
			total_salary, total_tds, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, organization_id, financial_year) DO UPDATE SET
			total_salary = EXCLUDED.total_salary,
			total_tds = EXCLUDED.total_tds,
			generated_at = EXCLUDED.generated_at
		RETURNING id, employee_id, organization_id, financial_year,
			total_salary, total_tds, generated_at
	`

	var s annual.TaxSummary
	err := q.QueryRow(ctx, query,
		summary.EmployeeID, summary.OrganizationID, summary.FinancialYear,
		summary.TotalSalary, summary.TotalTDS, summary.GeneratedAt,
	).Scan(
		&s.ID, &s.EmployeeID, &s.OrganizationID, &s.FinancialYear,
		&s.TotalSalary, &s.TotalTDS, &s.GeneratedAt,
	)
	if err != nil {
		return annual.TaxSummary{}, fmt.Errorf("failed to upsert tax summary: %w", err)
	}

	s.EmployeeName = summary.EmployeeName
	return s, nil
}

func (r *taxSummaryRepository) ListByFinancialYear(ctx context.Context, organizationID string, financialYear string) ([]annual.TaxSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.employee_id, s.organization_id, s.financial_year,
			s.total_salary, s.total_tds, s.generated_at,
			e.full_name
		FROM annual_tax_summaries s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.organization_id = $1 AND s.financial_year = $2
		ORDER BY e.full_name, s.employee_id
	`

	rows, err := q.Query(ctx, query, organizationID, financialYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax summaries: %w", err)
	}
	defer rows.Close()

	var summaries []annual.TaxSummary
	for rows.Next() {
		var s annual.TaxSummary
		if err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.OrganizationID, &s.FinancialYear,
			&s.TotalSalary, &s.TotalTDS, &s.GeneratedAt,
			&s.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tax summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}
