package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

type UpdateFormStatusInput struct {
	FormID int64
	Status string
}

// UpdateFormStatus moves a submission between Pending, Reviewed, and Filed
// and emits a status-changed event for the applicant notification.
func (s *Usecase) UpdateFormStatus(ctx context.Context, in UpdateFormStatusInput) (*entity.TaxForm, error) {
	ctx, span := s.startSpan(ctx, "UpdateFormStatus")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "review", "write"); err != nil {
		return nil, err
	}

	status := entity.FormStatusFromString(in.Status)
	if status.IsUnknown() {
		return nil, goerror.NewInvalidInput(nil, "status", "status must be one of Pending, Reviewed, Filed")
	}

	form, err := s.repoDB.GetFormByID(ctx, in.FormID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Form not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get form by id", "form_id", in.FormID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateFormStatus(ctx, form.ID, status); err != nil {
		slog.ErrorContext(ctx, "failed to repo update form status", "form_id", form.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishFormStatusChanged(ctx, FormStatusChangedEvent{
		FormID:   form.ID,
		Email:    form.Email,
		FullName: form.FullName,
		Status:   status.String(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish form status changed", "form_id", form.ID, "error", err)
	}

	form.Status = status
	return form, nil
}
