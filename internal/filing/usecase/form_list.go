package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

type FormListInput struct {
	PAN      string // value already trimmed
	Name     string // value already trimmed
	Status   string
	DateFrom time.Time
	DateTo   time.Time
	Size     int32
	Page     int32
}

type FormListOutput struct {
	Page  int32
	Size  int32
	Total int64
	Forms []entity.TaxForm
}

// FormList is the admin review queue with optional pan/name/status/date
// filters and pagination.
func (s *Usecase) FormList(ctx context.Context, in FormListInput) (*FormListOutput, error) {
	ctx, span := s.startSpan(ctx, "FormList")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "review", "read"); err != nil {
		return nil, err
	}

	if in.Status != "" && entity.FormStatusFromString(in.Status).IsUnknown() {
		return nil, goerror.NewInvalidInput(nil, "status", "status must be one of Pending, Reviewed, Filed")
	}

	if in.Size <= 0 || in.Size > 100 {
		in.Size = 10 // default limit
	}
	filter := entity.FormFilter{
		PAN:      in.PAN,
		Name:     in.Name,
		Status:   entity.FormStatusFromString(in.Status),
		DateFrom: in.DateFrom,
		DateTo:   in.DateTo,
		Size:     in.Size,
		Offset:   (max(in.Page, 1) - 1) * in.Size,
	}
	if in.PAN != "" {
		filter.IsFilterByPAN = true
	}
	if in.Name != "" {
		filter.IsFilterByName = true
	}
	if in.Status != "" {
		filter.IsFilterByStatus = true
	}

	forms, count, err := s.repoDB.ListForms(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list forms", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &FormListOutput{
		Page:  max(in.Page, 1),
		Size:  in.Size,
		Total: count,
		Forms: forms,
	}, nil
}
