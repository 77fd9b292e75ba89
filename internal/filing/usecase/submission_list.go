package usecase

import (
	"context"
	"log/slog"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

// MySubmissions returns the caller's own submissions, newest first.
func (s *Usecase) MySubmissions(ctx context.Context) ([]entity.TaxForm, error) {
	ctx, span := s.startSpan(ctx, "MySubmissions")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "submission", "read")
	if err != nil {
		return nil, err
	}

	forms, err := s.repoDB.ListFormsByUser(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list forms by user", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return forms, nil
}
