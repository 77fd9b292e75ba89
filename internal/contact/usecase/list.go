package usecase

import (
	"context"
	"log/slog"

	"github.com/comfinserv/taxdesk/internal/contact/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

type ListInput struct {
	Size int32
	Page int32
}

type ListOutput struct {
	Page     int32
	Size     int32
	Total    int64
	Contacts []entity.ContactMessage
}

// List returns contact messages for the admin dashboard, newest first.
func (s *Usecase) List(ctx context.Context, in ListInput) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "review", "read"); err != nil {
		return nil, err
	}

	if in.Size <= 0 || in.Size > 100 {
		in.Size = 10 // default limit
	}
	offset := (max(in.Page, 1) - 1) * in.Size

	contacts, total, err := s.repoDB.ListContacts(ctx, in.Size, offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list contacts", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListOutput{
		Page:     max(in.Page, 1),
		Size:     in.Size,
		Total:    total,
		Contacts: contacts,
	}, nil
}
