package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
	"github.com/comfinserv/taxdesk/internal/pkg/ratelimit"
)

type RequestOTPInput struct {
	Email string `validate:"required,email"`
}

// RequestOTP issues a fresh login code for an OTP-enabled account. The
// response is identical whether or not the email exists so the endpoint
// cannot be used to probe for registered accounts.
func (s *Usecase) RequestOTP(ctx context.Context, in RequestOTPInput) error {
	ctx, span := s.startSpan(ctx, "RequestOTP")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.limiter.Allow(ctx, "otp:request:"+in.Email,
		s.cfg.GetInt("modules.identity.otp_request_limit"),
		s.cfg.GetMinute("modules.identity.otp_request_window_minutes"),
	)
	if errors.Is(err, ratelimit.ErrLimitExceeded) {
		slog.WarnContext(ctx, "otp request rate limit exceeded", "email", in.Email)
		return goerror.NewBusiness("Too many requests, try again later", goerror.CodeTooManyRequest)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to check otp request limiter", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	user, err := s.repoDB.GetUserAuthByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp requested for unknown email", "email", in.Email)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if !user.UseOTP {
		slog.WarnContext(ctx, "otp requested for password account", "user_id", user.ID)
		return nil
	}

	return s.issueOTP(ctx, user)
}
