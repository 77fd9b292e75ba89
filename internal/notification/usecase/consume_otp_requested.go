package usecase

import (
	"context"
	"log/slog"
)

type ConsumeOTPRequestedInput struct {
	UserID    int64  `validate:"required,gt=0"`
	Email     string `validate:"required,email"`
	Name      string `validate:"required"`
	Code      string `validate:"required,len=6,numeric"`
	ExpiresIn int64  `validate:"required,gt=0"`
}

func (s *Usecase) ConsumeOTPRequested(ctx context.Context, in ConsumeOTPRequestedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPRequested")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["name"] = in.Name
	data["code"] = in.Code
	data["expires_in_minutes"] = in.ExpiresIn / 60

	s.sendEmail(ctx, in.Email, "Your login code", "otp_requested", tplOTPRequested, data)

	return nil
}
