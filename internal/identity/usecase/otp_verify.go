package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/comfinserv/taxdesk/internal/identity/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

type VerifyOTPInput struct {
	Email string `validate:"required,email"`
	OTP   string `validate:"required,len=6,numeric"`
}

type VerifyOTPOutput struct {
	Token string
	User  entity.User
}

// VerifyOTP consumes a previously requested code and, on success, returns a
// short-lived temporary token scoped to account management operations such as
// setting a new password.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.allowOTPVerify(ctx, in.Email); err != nil {
		return nil, err
	}

	user, err := s.repoDB.GetUserAuthByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp verify for unknown email", "email", in.Email)
		return nil, goerror.NewBusinessReason("Invalid or expired OTP", goerror.CodeUnauthorized, ReasonInvalidOTP)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.verifyAndConsumeOTP(ctx, user, in.OTP); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateTemp(user.ID, user.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate temp token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	profile, err := s.repoDB.GetUserByID(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOTPOutput{Token: token, User: *profile}, nil
}
