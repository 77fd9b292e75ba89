package usecase

import (
	"context"
	"log/slog"

	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

type ChangePasswordInput struct {
	OldPassword string `validate:"required"`
	NewPassword string `validate:"required,min=8"`
}

// ChangePassword rotates the password of an authenticated password-mode
// account after verifying the current one.
func (s *Usecase) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	ctx, span := s.startSpan(ctx, "ChangePassword")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "profile", "write")
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserAuthByID(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if user.UseOTP || user.Password == nil {
		return goerror.NewBusiness("This account uses OTP login and has no password", goerror.CodeInvalidInput)
	}

	if !s.bcrypt.Verify(*user.Password, in.OldPassword) {
		slog.WarnContext(ctx, "old password not match", "user_id", user.ID)
		return goerror.NewBusinessReason("Invalid password", goerror.CodeUnauthorized, ReasonInvalidPassword)
	}

	return s.setPassword(ctx, user.ID, in.NewPassword)
}
