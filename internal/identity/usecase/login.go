package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/comfinserv/taxdesk/internal/identity/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string
	OTP      string
	Role     string
}

type LoginOutput struct {
	Token string
	User  entity.User
}

// Login authenticates in whichever mode the account is configured for:
// password when use_otp is off, a previously requested OTP when it is on.
// Submitting the wrong kind of credential is rejected with a hint, not
// silently accepted.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserAuthByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", in.Email)
		return nil, goerror.NewBusinessReason("Invalid email or account not found", goerror.CodeUnauthorized, ReasonInvalidLogin)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if in.Role != "" && user.Role != entity.RoleFromString(in.Role) {
		slog.WarnContext(ctx, "user role not permitted for login", "user_id", user.ID, "requested_role", in.Role)
		return nil, goerror.NewBusinessReason("Account not permitted for this portal", goerror.CodeForbidden, ReasonInvalidLogin)
	}

	if user.UseOTP {
		if in.OTP == "" {
			if in.Password != "" {
				return nil, goerror.NewBusiness("This account uses OTP login, request an OTP instead", goerror.CodeInvalidInput)
			}
			return nil, goerror.NewBusiness("OTP is required", goerror.CodeInvalidInput)
		}

		if err := s.allowOTPVerify(ctx, user.Email); err != nil {
			return nil, err
		}

		if err := s.verifyAndConsumeOTP(ctx, user, in.OTP); err != nil {
			return nil, err
		}
	} else {
		if in.Password == "" {
			if in.OTP != "" {
				return nil, goerror.NewBusiness("This account uses password login", goerror.CodeInvalidInput)
			}
			return nil, goerror.NewBusiness("Password is required", goerror.CodeInvalidInput)
		}

		if user.Password == nil || !s.bcrypt.Verify(*user.Password, in.Password) {
			slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
			return nil, goerror.NewBusinessReason("Invalid password", goerror.CodeUnauthorized, ReasonInvalidPassword)
		}
	}

	token, err := s.jwt.Generate(user.ID, user.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	profile, err := s.repoDB.GetUserByID(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{Token: token, User: *profile}, nil
}
