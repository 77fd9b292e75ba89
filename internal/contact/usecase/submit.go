package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/comfinserv/taxdesk/internal/contact/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

type SubmitInput struct {
	Name    string `validate:"required,min=2,max=100"`
	Email   string `validate:"required,email"`
	Message string `validate:"required,min=10,max=5000"`
}

// Submit stores a message from the public contact form.
func (s *Usecase) Submit(ctx context.Context, in SubmitInput) error {
	ctx, span := s.startSpan(ctx, "Submit")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Message = strings.TrimSpace(in.Message)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	msg := entity.ContactMessage{
		ID:      s.uid.Generate(),
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	}

	if err := s.repoDB.CreateContact(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to repo create contact", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
