package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/export"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/zenithly-hr/payroll-backend-go/internal/pkg/storage"
)

type ExportServiceImpl struct {
	payrollRepo payroll.PayrollRepository
	calculator  *ContributionCalculator
	fileStorage storage.FileStorage
}

func NewExportService(
	payrollRepo payroll.PayrollRepository,
	calculator *ContributionCalculator,
	fileStorage storage.FileStorage,
) export.ExportService {
	return &ExportServiceImpl{
		payrollRepo: payrollRepo,
		calculator:  calculator,
		fileStorage: fileStorage,
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

func (s *ExportServiceImpl) ExportRun(ctx context.Context, req export.ExportRunRequest) (export.ExportFile, error) {
	if err := req.Validate(); err != nil {
		return export.ExportFile{}, err
	}

	organizationID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return export.ExportFile{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, req.RunID, organizationID)
	if err != nil {
		return export.ExportFile{}, err
	}
	if run.Status != payroll.RunStatusLocked {
		return export.ExportFile{}, export.ErrRunNotLocked
	}

	entries, err := s.payrollRepo.GetEntriesByRunID(ctx, run.ID, organizationID)
	if err != nil {
		return export.ExportFile{}, err
	}

	content, err := s.Render(req.Profile, run.ID, entries)
	if err != nil {
		return export.ExportFile{}, err
	}

	return export.ExportFile{
		Filename:    fmt.Sprintf("%s_%s.csv", req.Profile, shortRunID(run.ID)),
		Content:     content,
		ContentType: "text/csv",
	}, nil
}

func (s *ExportServiceImpl) SaveExport(ctx context.Context, file export.ExportFile) (export.StoredExportResponse, error) {
	path := fmt.Sprintf("exports/%s_%s", uuid.NewString(), file.Filename)

	storedPath, err := s.fileStorage.Upload(ctx, strings.NewReader(file.Content), path, file.ContentType)
	if err != nil {
		return export.StoredExportResponse{}, fmt.Errorf("failed to store export file: %w", err)
	}

	url, err := s.fileStorage.GetURL(ctx, storedPath, 0)
	if err != nil {
		return export.StoredExportResponse{}, fmt.Errorf("failed to resolve export file URL: %w", err)
	}

	return export.StoredExportResponse{Path: storedPath, URL: url}, nil
}

func (s *ExportServiceImpl) OpenStoredExport(ctx context.Context, path string) (io.ReadCloser, error) {
	exists, err := s.fileStorage.Exists(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to check export file: %w", err)
	}
	if !exists {
		return nil, export.ErrExportNotFound
	}

	file, err := s.fileStorage.Download(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file: %w", err)
	}
	return file, nil
}

func (s *ExportServiceImpl) DeleteStoredExport(ctx context.Context, path string) error {
	exists, err := s.fileStorage.Exists(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to check export file: %w", err)
	}
	if !exists {
		return export.ErrExportNotFound
	}

	if err := s.fileStorage.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete export file: %w", err)
	}
	return nil
}

// Render produces the delimited table for one profile: a comma-joined header
// line, then one comma-joined row per entry, joined by single newlines. Cells
// are emitted via their default string conversion with no quoting or escaping
// pass; the downstream portals parse these files positionally and existing
// consumers depend on the bytes staying as they are.
func (s *ExportServiceImpl) Render(profile string, runID string, entries []payroll.PayrollEntry) (string, error) {
	var header []string
	var rowFn func(payroll.PayrollEntry) []string

	switch profile {
	case export.ProfilePFECR:
		header = []string{
			"UAN", "Member Name", "Gross Wages", "EPF Wages", "EPS Wages", "EDLI Wages",
			"EPF(EE)", "EPS(ER)", "EPF(ER)", "EDLI", "NCP Days", "Refund of Advances",
		}
		rowFn = s.pfECRRow
	case export.ProfileBankTransfer:
		header = []string{"Beneficiary Name", "Account Number", "IFSC Code", "Amount", "Remarks"}
		remarks := "Salary " + shortRunID(runID)
		rowFn = func(e payroll.PayrollEntry) []string {
			return bankTransferRow(e, remarks)
		}
	case export.ProfilePayrollMaster:
		header = []string{
			"Employee Name", "Department", "Job Title", "Annual CTC", "Gross Earnings",
			"PF(EE)", "PF(ER)", "TDS", "ESI(EE)", "Total Deductions",
			"LWP Days", "Working Days", "Paid Days", "Net Pay",
		}
		rowFn = payrollMasterRow
	default:
		return "", fmt.Errorf("%w: %s", export.ErrUnknownProfile, profile)
	}

	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, entry := range entries {
		lines = append(lines, strings.Join(rowFn(entry), ","))
	}

	return strings.Join(lines, "\n"), nil
}

func (s *ExportServiceImpl) pfECRRow(e payroll.PayrollEntry) []string {
	c := s.calculator.Calculate(e)
	return []string{
		"", // UAN not sourced in the current data model
		strOrEmpty(e.EmployeeName),
		c.GrossWages.String(),
		c.EPFWages.String(),
		c.EPSWages.String(),
		c.EDLIWages.String(),
		c.PFEmployee.String(),
		c.EPSEmployer.String(),
		c.PFEmployer.String(),
		c.EDLI.String(),
		e.LWPDays.String(), // non-contributory period days
		"0",                // refund of advances, not sourced
	}
}

func bankTransferRow(e payroll.PayrollEntry, remarks string) []string {
	return []string{
		strOrEmpty(e.EmployeeName),
		"", // account number held by the bank master, not here
		"", // IFSC, same
		e.NetPay.String(),
		remarks,
	}
}

func payrollMasterRow(e payroll.PayrollEntry) []string {
	return []string{
		strOrEmpty(e.EmployeeName),
		strOrEmpty(e.Department),
		strOrEmpty(e.JobTitle),
		decOrZero(e.AnnualCTC).String(),
		e.GrossEarnings.String(),
		decOrZero(e.PFEmployee).String(),
		decOrZero(e.PFEmployer).String(),
		decOrZero(e.TDSAmount).String(),
		decOrZero(e.ESIEmployee).String(),
		decOrZero(e.TotalDeductions).String(),
		e.LWPDays.String(),
		e.WorkingDays.String(),
		e.PaidDays.String(),
		e.NetPay.String(),
	}
}

// shortRunID keeps the first 8 characters of a run id, the token embedded in
// filenames and bank remarks.
func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func decOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
