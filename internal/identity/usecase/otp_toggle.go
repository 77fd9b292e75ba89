package usecase

import (
	"context"
	"log/slog"

	"github.com/comfinserv/taxdesk/internal/identity/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
	"github.com/comfinserv/taxdesk/internal/pkg/jwt"
)

type ToggleOTPInput struct {
	Password string
}

// ToggleOTP flips the account between password and OTP login. Turning OTP on
// drops the stored password and mails a first code. Turning OTP off requires
// a new password in the same request so the account is never left without a
// credential. A temporary token holder always lands on the set-password
// branch regardless of the current mode, which keeps the historical
// reset-via-toggle flow working next to ResetPassword.
func (s *Usecase) ToggleOTP(ctx context.Context, in ToggleOTPInput) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "ToggleOTP")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserAuthByID(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	switch {
	case clm.Temp || user.UseOTP:
		if err := s.setPassword(ctx, user.ID, in.Password); err != nil {
			return nil, err
		}
	default:
		if err := s.repoDB.EnableUserOTP(ctx, user.ID); err != nil {
			slog.ErrorContext(ctx, "failed to repo enable user otp", "user_id", user.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		user.UseOTP = true
		if err := s.issueOTP(ctx, user); err != nil {
			return nil, err
		}
	}

	profile, err := s.repoDB.GetUserByID(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return profile, nil
}

// setPassword validates, hashes, and stores a new password, switching the
// account to password login and clearing any pending OTP.
func (s *Usecase) setPassword(ctx context.Context, userID int64, password string) error {
	if password == "" {
		return goerror.NewInvalidInput(nil, "password", "a new password is required to disable OTP login")
	}
	if len(password) < 8 {
		return goerror.NewInvalidInput(nil, "password", "password must be at least 8 characters")
	}

	hashed, err := s.bcrypt.Hash(password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "user_id", userID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.SetUserPassword(ctx, userID, string(hashed)); err != nil {
		slog.ErrorContext(ctx, "failed to repo set user password", "user_id", userID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
