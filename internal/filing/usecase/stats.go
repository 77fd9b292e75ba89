package usecase

import (
	"context"
	"log/slog"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

type StatsOutput struct {
	Forms    entity.StatusCounts
	Contacts int64
	Recent   []entity.TaxForm
}

// Stats powers the admin dashboard: submission counts by status, total
// contact messages, and the five most recent submissions.
func (s *Usecase) Stats(ctx context.Context) (*StatsOutput, error) {
	ctx, span := s.startSpan(ctx, "Stats")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "review", "read"); err != nil {
		return nil, err
	}

	counts, err := s.repoDB.CountFormsByStatus(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count forms by status", "error", err)
		return nil, goerror.NewServer(err)
	}

	contacts, err := s.repoDB.CountContacts(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count contacts", "error", err)
		return nil, goerror.NewServer(err)
	}

	recent, err := s.repoDB.ListRecentForms(ctx, 5)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list recent forms", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &StatsOutput{
		Forms:    *counts,
		Contacts: contacts,
		Recent:   recent,
	}, nil
}
