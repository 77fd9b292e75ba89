package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
	"github.com/comfinserv/taxdesk/internal/pkg/ratelimit"
)

func TestLogin(t *testing.T) {
	t.Run("PasswordAccountSuccess", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addPasswordUser(t, 101, "alice@example.com", "s3cretpass")

		// Act
		out, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "alice@example.com",
			Password: "s3cretpass",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected login to succeed, got %v", err)
		}
		clm, err := f.jwt.Verify(out.Token)
		if err != nil {
			t.Fatalf("expected a verifiable token, got %v", err)
		}
		if clm.UserID != 101 || clm.Role != "user" || clm.Temp {
			t.Fatalf("unexpected claims: %+v", clm)
		}
		if out.User.Email != "alice@example.com" {
			t.Fatalf("unexpected user in output: %+v", out.User)
		}
	})

	t.Run("EmailIsNormalized", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addPasswordUser(t, 102, "bob@example.com", "s3cretpass")

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "  Bob@Example.COM ",
			Password: "s3cretpass",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected normalized email to match, got %v", err)
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "nobody@example.com",
			Password: "whatever1",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", appErr.Code())
		}
		if appErr.Reason() != ReasonInvalidLogin {
			t.Fatalf("expected reason %s, got %s", ReasonInvalidLogin, appErr.Reason())
		}
	})

	t.Run("RoleMismatch", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addPasswordUser(t, 103, "carol@example.com", "s3cretpass")

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "carol@example.com",
			Password: "s3cretpass",
			Role:     "admin",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeForbidden {
			t.Fatalf("expected forbidden, got %v", appErr.Code())
		}
		if appErr.Reason() != ReasonInvalidLogin {
			t.Fatalf("expected reason %s, got %s", ReasonInvalidLogin, appErr.Reason())
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addPasswordUser(t, 104, "dave@example.com", "s3cretpass")

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "dave@example.com",
			Password: "not-the-password",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", appErr.Code())
		}
		if appErr.Reason() != ReasonInvalidPassword {
			t.Fatalf("expected reason %s, got %s", ReasonInvalidPassword, appErr.Reason())
		}
	})

	t.Run("OTPSubmittedToPasswordAccount", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addPasswordUser(t, 105, "erin@example.com", "s3cretpass")

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email: "erin@example.com",
			OTP:   "123456",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeInvalidInput {
			t.Fatalf("expected invalid input, got %v", appErr.Code())
		}
	})

	t.Run("PasswordSubmittedToOTPAccount", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addOTPUser(t, 106, "frank@example.com", "654321")

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "frank@example.com",
			Password: "s3cretpass",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeInvalidInput {
			t.Fatalf("expected invalid input, got %v", appErr.Code())
		}
	})

	t.Run("OTPAccountSuccess", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addOTPUser(t, 107, "grace@example.com", "654321")

		// Act
		out, err := f.uc.Login(context.Background(), LoginInput{
			Email: "grace@example.com",
			OTP:   "654321",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected otp login to succeed, got %v", err)
		}
		clm, err := f.jwt.Verify(out.Token)
		if err != nil || clm.Temp {
			t.Fatalf("expected a full session token, got claims %+v err %v", clm, err)
		}
		if len(f.db.otpCleared) != 1 || f.db.otpCleared[0] != 107 {
			t.Fatalf("expected the otp to be consumed, cleared: %v", f.db.otpCleared)
		}
		if len(f.limiter.resetKeys) != 1 || f.limiter.resetKeys[0] != "otp:verify:grace@example.com" {
			t.Fatalf("expected the verify counter to reset, got %v", f.limiter.resetKeys)
		}
	})

	t.Run("WrongOTP", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addOTPUser(t, 108, "heidi@example.com", "654321")

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email: "heidi@example.com",
			OTP:   "111111",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Reason() != ReasonInvalidOTP {
			t.Fatalf("expected reason %s, got %s", ReasonInvalidOTP, appErr.Reason())
		}
		if len(f.db.otpCleared) != 0 {
			t.Fatalf("a failed attempt must not consume the otp")
		}
	})

	t.Run("ExpiredOTP", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addOTPUser(t, 109, "ivan@example.com", "654321")
		f.clock.now = f.clock.now.Add(11 * time.Minute)

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email: "ivan@example.com",
			OTP:   "654321",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Reason() != ReasonInvalidOTP {
			t.Fatalf("expected reason %s, got %s", ReasonInvalidOTP, appErr.Reason())
		}
	})

	t.Run("OTPVerifyRateLimited", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addOTPUser(t, 110, "judy@example.com", "654321")
		f.limiter.allowErr = ratelimit.ErrLimitExceeded

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email: "judy@example.com",
			OTP:   "654321",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeTooManyRequest {
			t.Fatalf("expected too many requests, got %v", appErr.Code())
		}
	})

	t.Run("InvalidEmailFormat", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "not-an-email",
			Password: "s3cretpass",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Type() != goerror.TypeValidation {
			t.Fatalf("expected validation error, got %v", appErr.Type())
		}
	})
}
