package entity

type FormStatus int16

const (
	// FormStatusUnknown is mean status is not known / not set.
	FormStatusUnknown FormStatus = 0

	// FormStatusPending mean the submission is waiting for review.
	FormStatusPending FormStatus = 1

	// FormStatusReviewed mean an admin has reviewed the submission.
	FormStatusReviewed FormStatus = 2

	// FormStatusFiled mean the return has been filed with the tax authority.
	FormStatusFiled FormStatus = 3
)

func (s FormStatus) String() string {
	switch s {
	case FormStatusPending:
		return "Pending"
	case FormStatusReviewed:
		return "Reviewed"
	case FormStatusFiled:
		return "Filed"
	default:
		return "unknown"
	}
}

func (s FormStatus) IsUnknown() bool {
	switch s {
	case FormStatusPending, FormStatusReviewed, FormStatusFiled:
		return false
	default:
		return true
	}
}

func FormStatusFromString(str string) FormStatus {
	switch str {
	case "Pending":
		return FormStatusPending
	case "Reviewed":
		return FormStatusReviewed
	case "Filed":
		return FormStatusFiled
	default:
		return FormStatusUnknown
	}
}

// DocumentType tags an uploaded file with the slot it fills on the filing
// form. The values double as the multipart field names on the submit endpoint.
type DocumentType string

const (
	DocumentForm16              DocumentType = "form16"
	DocumentBankStatements      DocumentType = "bankStatements"
	DocumentInvestmentProof     DocumentType = "investmentProof"
	DocumentTradingSummary      DocumentType = "tradingSummary"
	DocumentHomeLoanCertificate DocumentType = "homeLoanCertificate"
	DocumentSalarySlip          DocumentType = "salarySlip"
	DocumentAadharCard          DocumentType = "aadharCard"
	DocumentOther               DocumentType = "otherDocument"
)

func DocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentForm16,
		DocumentBankStatements,
		DocumentInvestmentProof,
		DocumentTradingSummary,
		DocumentHomeLoanCertificate,
		DocumentSalarySlip,
		DocumentAadharCard,
		DocumentOther,
	}
}

func (d DocumentType) IsValid() bool {
	switch d {
	case DocumentForm16, DocumentBankStatements, DocumentInvestmentProof,
		DocumentTradingSummary, DocumentHomeLoanCertificate, DocumentSalarySlip,
		DocumentAadharCard, DocumentOther:
		return true
	default:
		return false
	}
}
