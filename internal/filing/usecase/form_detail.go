package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

// FormDetail returns one submission with its document metadata.
func (s *Usecase) FormDetail(ctx context.Context, id int64) (*entity.TaxForm, error) {
	ctx, span := s.startSpan(ctx, "FormDetail")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "review", "read"); err != nil {
		return nil, err
	}

	form, err := s.repoDB.GetFormByID(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Form not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get form by id", "form_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return form, nil
}
