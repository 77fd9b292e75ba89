package usecase

import (
	"context"
	"log/slog"
	"strconv"
)

type ConsumeFormSubmittedInput struct {
	FormID        int64  `validate:"required,gt=0"`
	Email         string `validate:"required,email"`
	FullName      string `validate:"required"`
	PAN           string `validate:"required,pan"`
	DocumentCount int
}

func (s *Usecase) ConsumeFormSubmitted(ctx context.Context, in ConsumeFormSubmittedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeFormSubmitted")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["name"] = in.FullName
	data["form_id"] = strconv.FormatInt(in.FormID, 10)
	data["pan"] = in.PAN
	data["document_count"] = in.DocumentCount

	s.sendEmail(ctx, in.Email, "We received your tax filing", "form_submitted", tplFormSubmitted, data)

	return nil
}
