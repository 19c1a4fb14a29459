package partner

import (
	"github.com/gestor/backend/internal/domain/shared"
)

// partnerFields is the subset of aggregate state the business-rule check
// needs. Both families share the same discriminant rules, so the check is
// written once against this projection.
type partnerFields struct {
	Kind        string
	CPF         string
	CNPJ        string
	ForeignDoc  string
	CompanyName string
	Responsible string
}

// validatePartnerFields applies the per-kind business rules and returns
// every violated rule as a message. An empty slice means the record is
// valid. Documents are expected in normalized (digits-only) form.
func validatePartnerFields(f partnerFields) []string {
	var failures []string

	switch f.Kind {
	case "individual":
		if f.CPF == "" {
			failures = append(failures, "cpf is required for individual records")
		} else if !shared.LooksLikeCPF(f.CPF) {
			failures = append(failures, "cpf must have 11 digits")
		}
	case "organization":
		if f.CNPJ == "" {
			failures = append(failures, "cnpj is required for organization records")
		} else if !shared.LooksLikeCNPJ(f.CNPJ) {
			failures = append(failures, "cnpj must have 14 digits")
		}
		if f.CompanyName == "" {
			failures = append(failures, "company_name is required for organization records")
		}
		if f.Responsible == "" {
			failures = append(failures, "responsible is required for organization records")
		}
	case "foreign":
		if f.ForeignDoc == "" {
			failures = append(failures, "foreign_doc is required for foreign records")
		}
	default:
		failures = append(failures, "kind must be one of: individual, organization, foreign")
	}

	return failures
}
