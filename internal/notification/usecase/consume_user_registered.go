package usecase

import (
	"context"
	"log/slog"
)

type ConsumeUserRegisteredInput struct {
	UserID int64  `validate:"required,gt=0"`
	Email  string `validate:"required,email"`
	Name   string `validate:"required"`
	UseOTP bool
}

func (s *Usecase) ConsumeUserRegistered(ctx context.Context, in ConsumeUserRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeUserRegistered")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["name"] = in.Name
	data["use_otp"] = in.UseOTP

	s.sendEmail(ctx, in.Email, "Welcome aboard", "user_registered", tplUserRegistered, data)

	return nil
}
