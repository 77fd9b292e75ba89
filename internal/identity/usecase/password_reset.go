package usecase

import (
	"context"

	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
	"github.com/comfinserv/taxdesk/internal/pkg/jwt"
)

type ResetPasswordInput struct {
	Password string `validate:"required,min=8"`
}

// ResetPassword sets a new password for the holder of a temporary token
// obtained through VerifyOTP. A regular session token is rejected: the whole
// point of the temp token is proving a fresh OTP verification, and a stolen
// long-lived session must not be enough to rotate the credential.
func (s *Usecase) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	ctx, span := s.startSpan(ctx, "ResetPassword")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if !clm.Temp {
		return goerror.NewBusiness("Password reset requires OTP verification", goerror.CodeForbidden)
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	return s.setPassword(ctx, clm.UserID, in.Password)
}
