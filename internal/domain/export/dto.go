package export

import (
	"github.com/zenithly-hr/payroll-backend-go/internal/pkg/validator"
)

// Export profile names. External consumers parse these files positionally,
// so column names, order and placeholder values are a compatibility contract.
const (
	ProfilePFECR         = "pf_ecr"
	ProfileBankTransfer  = "bank_transfer"
	ProfilePayrollMaster = "payroll_master"
)

var Profiles = []string{ProfilePFECR, ProfileBankTransfer, ProfilePayrollMaster}

type ExportRunRequest struct {
	RunID   string
	Profile string
}

func (r *ExportRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RunID) {
		errs = append(errs, validator.ValidationError{Field: "run_id", Message: "is required"})
	}
	if !validator.IsInSlice(r.Profile, Profiles) {
		errs = append(errs, validator.ValidationError{Field: "profile", Message: "must be one of pf_ecr, bank_transfer, payroll_master"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportFile is the engine's whole output: the delimited table plus a
// suggested filename. Delivery (download, disk, link) happens elsewhere.
type ExportFile struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

type StoredExportResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}
