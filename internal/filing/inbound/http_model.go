package inbound

import (
	"time"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/samber/lo"
)

type SubmitResponse struct {
	FormID int64 `json:"formId,string"`
}

func (SubmitResponse) Message() string {
	return "Tax form submitted successfully"
}

type DocumentResponse struct {
	ID           int64     `json:"id,string"`
	Type         string    `json:"documentType"`
	OriginalName string    `json:"originalName"`
	Size         int64     `json:"fileSize"`
	ContentType  string    `json:"contentType"`
	CreatedAt    time.Time `json:"created_at"`
}

type FormResponse struct {
	ID       int64  `json:"id,string"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	PAN      string `json:"pan"`

	HasIncomeTaxLogin     bool   `json:"hasIncomeTaxLogin"`
	IncomeTaxLoginID      string `json:"incomeTaxLoginId,omitempty"`
	HasHomeLoan           bool   `json:"hasHomeLoan"`
	HomeLoanSanctionDate  string `json:"homeLoanSanctionDate,omitempty"`
	HomeLoanAmount        string `json:"homeLoanAmount,omitempty"`
	HomeLoanCurrentDue    string `json:"homeLoanCurrentDue,omitempty"`
	HomeLoanTotalInterest string `json:"homeLoanTotalInterest,omitempty"`
	HasPRAN               bool   `json:"hasPranNumber"`
	PRANNumber            string `json:"pranNumber,omitempty"`

	Status    string             `json:"status"`
	Documents []DocumentResponse `json:"documents"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// newFormResponse maps a submission for API output. The income-tax portal
// password is write-only and never leaves the service.
func newFormResponse(form entity.TaxForm) FormResponse {
	return FormResponse{
		ID:       form.ID,
		FullName: form.FullName,
		Email:    form.Email,
		Phone:    form.Phone,
		PAN:      form.PAN,

		HasIncomeTaxLogin:     form.HasIncomeTaxLogin,
		IncomeTaxLoginID:      form.IncomeTaxLoginID,
		HasHomeLoan:           form.HasHomeLoan,
		HomeLoanSanctionDate:  form.HomeLoanSanctionDate,
		HomeLoanAmount:        form.HomeLoanAmount,
		HomeLoanCurrentDue:    form.HomeLoanCurrentDue,
		HomeLoanTotalInterest: form.HomeLoanTotalInterest,
		HasPRAN:               form.HasPRAN,
		PRANNumber:            form.PRANNumber,

		Status: form.Status.String(),
		Documents: lo.Map(form.Documents, func(doc entity.Document, _ int) DocumentResponse {
			return DocumentResponse{
				ID:           doc.ID,
				Type:         string(doc.Type),
				OriginalName: doc.OriginalName,
				Size:         doc.Size,
				ContentType:  doc.ContentType,
				CreatedAt:    doc.CreatedAt,
			}
		}),
		CreatedAt: form.CreatedAt,
		UpdatedAt: form.UpdatedAt,
	}
}

type FormListResponse struct {
	Forms []FormResponse `json:"forms"`

	page  int32
	size  int32
	total int64
}

func (f FormListResponse) Meta() map[string]any {
	pages := f.total / int64(f.size)
	if f.total%int64(f.size) != 0 {
		pages++
	}

	return map[string]any{
		"total": f.total,
		"page":  f.page,
		"limit": f.size,
		"pages": pages,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateStatusResponse struct {
	Form FormResponse `json:"form"`
}

func (UpdateStatusResponse) Message() string {
	return "Form status updated"
}

type DocumentDownloadResponse struct {
	URL          string `json:"url"`
	OriginalName string `json:"originalName"`
	ContentType  string `json:"contentType"`
	Size         int64  `json:"fileSize"`
}

type StatsResponse struct {
	TaxForms StatsFormsResponse `json:"taxForms"`
	Contacts int64              `json:"contacts"`
	Recent   []FormResponse     `json:"recent"`
}

type StatsFormsResponse struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Reviewed int64 `json:"reviewed"`
	Filed    int64 `json:"filed"`
}
