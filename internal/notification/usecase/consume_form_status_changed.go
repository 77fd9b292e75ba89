package usecase

import (
	"context"
	"log/slog"
	"strconv"
)

type ConsumeFormStatusChangedInput struct {
	FormID   int64  `validate:"required,gt=0"`
	Email    string `validate:"required,email"`
	FullName string `validate:"required"`
	Status   string `validate:"required,oneof=Pending Reviewed Filed"`
}

func (s *Usecase) ConsumeFormStatusChanged(ctx context.Context, in ConsumeFormStatusChangedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeFormStatusChanged")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["name"] = in.FullName
	data["form_id"] = strconv.FormatInt(in.FormID, 10)
	data["status"] = in.Status

	s.sendEmail(ctx, in.Email, "Your tax filing status changed", "form_status_changed", tplFormStatusChanged, data)

	return nil
}
