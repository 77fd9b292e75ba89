package inbound

import (
	"time"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/comfinserv/taxdesk/internal/filing/usecase"
	"github.com/comfinserv/taxdesk/internal/pkg/router"
	"github.com/samber/lo"
)

// multipartMemoryLimit is how much of a parsed multipart body stays in memory
// before spilling to temp files.
const multipartMemoryLimit = 32 << 20

// HTTPEndpoint exposes HTTP handlers for tax-form intake and admin review.
type HTTPEndpoint struct {
	uc uc
}

// Submit accepts the public tax-filing form with up to eight tagged document
// uploads, one per multipart field named after the document type.
func (h *HTTPEndpoint) Submit(r *router.Request) (any, error) {
	if err := r.ParseMultipart(multipartMemoryLimit); err != nil {
		return nil, err
	}

	in := usecase.SubmitInput{
		FullName: r.GetForm("fullName"),
		Email:    r.GetForm("email"),
		Phone:    r.GetForm("phone"),
		PAN:      r.GetForm("pan"),

		HasIncomeTaxLogin:      r.GetForm("hasIncomeTaxLogin") == "true",
		IncomeTaxLoginID:       r.GetForm("incomeTaxLoginId"),
		IncomeTaxLoginPassword: r.GetForm("incomeTaxLoginPassword"),
		HasHomeLoan:            r.GetForm("hasHomeLoan") == "true",
		HomeLoanSanctionDate:   r.GetForm("homeLoanSanctionDate"),
		HomeLoanAmount:         r.GetForm("homeLoanAmount"),
		HomeLoanCurrentDue:     r.GetForm("homeLoanCurrentDue"),
		HomeLoanTotalInterest:  r.GetForm("homeLoanTotalInterest"),
		HasPRAN:                r.GetForm("hasPRAN") == "true",
		PRANNumber:             r.GetForm("pranNumber"),
	}

	for _, docType := range entity.DocumentTypes() {
		fh := r.GetFormFile(string(docType))
		if fh == nil {
			continue
		}

		file, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer file.Close()

		in.Documents = append(in.Documents, usecase.DocumentUpload{
			Type:         docType,
			File:         file,
			OriginalName: fh.Filename,
			Size:         fh.Size,
			ContentType:  fh.Header.Get("Content-Type"),
		})
	}

	resp, err := h.uc.Submit(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return SubmitResponse{FormID: resp.FormID}, nil
}

// MySubmissions lists the authenticated caller's submissions, newest first.
func (h *HTTPEndpoint) MySubmissions(r *router.Request) (any, error) {
	forms, err := h.uc.MySubmissions(r.Context())
	if err != nil {
		return nil, err
	}

	return lo.Map(forms, func(form entity.TaxForm, _ int) FormResponse {
		return newFormResponse(form)
	}), nil
}

// FormList is the admin review queue with filters and pagination.
func (h *HTTPEndpoint) FormList(r *router.Request) (any, error) {
	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	size, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	dateFrom, err := r.GetQueryDate("startDate", time.DateOnly)
	if err != nil {
		return nil, err
	}

	dateTo, err := r.GetQueryDate("endDate", time.DateOnly)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.FormList(r.Context(), usecase.FormListInput{
		PAN:      r.GetQuery("pan"),
		Name:     r.GetQuery("name"),
		Status:   r.GetQuery("status"),
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Size:     size,
		Page:     page,
	})
	if err != nil {
		return nil, err
	}

	return FormListResponse{
		Forms: lo.Map(resp.Forms, func(form entity.TaxForm, _ int) FormResponse {
			return newFormResponse(form)
		}),
		page:  resp.Page,
		size:  resp.Size,
		total: resp.Total,
	}, nil
}

// FormDetail returns a single submission with document metadata.
func (h *HTTPEndpoint) FormDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	form, err := h.uc.FormDetail(r.Context(), id)
	if err != nil {
		return nil, err
	}

	return newFormResponse(*form), nil
}

// UpdateFormStatus moves a submission through the review pipeline.
func (h *HTTPEndpoint) UpdateFormStatus(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdateStatusRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	form, err := h.uc.UpdateFormStatus(r.Context(), usecase.UpdateFormStatusInput{
		FormID: id,
		Status: req.Status,
	})
	if err != nil {
		return nil, err
	}

	return UpdateStatusResponse{Form: newFormResponse(*form)}, nil
}

// DocumentDownload returns a presigned download URL for a stored document.
func (h *HTTPEndpoint) DocumentDownload(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	docID, err := r.GetParamInt64("docID")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.DocumentDownload(r.Context(), usecase.DocumentDownloadInput{
		FormID:     id,
		DocumentID: docID,
	})
	if err != nil {
		return nil, err
	}

	return DocumentDownloadResponse{
		URL:          resp.URL,
		OriginalName: resp.OriginalName,
		ContentType:  resp.ContentType,
		Size:         resp.Size,
	}, nil
}

// Stats returns the admin dashboard counters and recent submissions.
func (h *HTTPEndpoint) Stats(r *router.Request) (any, error) {
	resp, err := h.uc.Stats(r.Context())
	if err != nil {
		return nil, err
	}

	return StatsResponse{
		TaxForms: StatsFormsResponse{
			Total:    resp.Forms.Total,
			Pending:  resp.Forms.Pending,
			Reviewed: resp.Forms.Reviewed,
			Filed:    resp.Forms.Filed,
		},
		Contacts: resp.Contacts,
		Recent: lo.Map(resp.Recent, func(form entity.TaxForm, _ int) FormResponse {
			return newFormResponse(form)
		}),
	}, nil
}
