package usecase

import (
	"context"
	"testing"

	"github.com/comfinserv/taxdesk/internal/identity/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

func TestRegister(t *testing.T) {
	t.Run("PasswordAccount", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		out, err := f.uc.Register(context.Background(), RegisterInput{
			FullName: "Asha Verma",
			Email:    "Asha@Example.com",
			Password: "s3cretpass",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected register to succeed, got %v", err)
		}
		if len(f.db.created) != 1 {
			t.Fatalf("expected one user created, got %d", len(f.db.created))
		}
		created := f.db.created[0]
		if created.Email != "asha@example.com" {
			t.Fatalf("expected lowercased email, got %s", created.Email)
		}
		if created.Role != entity.RoleUser || created.UseOTP {
			t.Fatalf("unexpected created user: %+v", created)
		}
		if created.Password == nil || !f.bcrypt.Verify(*created.Password, "s3cretpass") {
			t.Fatalf("expected stored hash to verify the password")
		}
		clm, err := f.jwt.Verify(out.Token)
		if err != nil || clm.UserID != created.ID {
			t.Fatalf("expected a session token for the new user, got claims %+v err %v", clm, err)
		}
		if len(f.mq.registered) != 1 || f.mq.registered[0].Email != "asha@example.com" {
			t.Fatalf("expected a user registered event, got %+v", f.mq.registered)
		}
	})

	t.Run("OTPAccount", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		out, err := f.uc.Register(context.Background(), RegisterInput{
			FullName: "Ravi Kumar",
			Email:    "ravi@example.com",
			UseOTP:   true,
		})

		// Assert
		if err != nil {
			t.Fatalf("expected otp register to succeed, got %v", err)
		}
		created := f.db.created[0]
		if !created.UseOTP || created.Password != nil {
			t.Fatalf("expected an otp account without a password, got %+v", created)
		}
		if len(f.mq.otps) != 1 {
			t.Fatalf("expected the first otp to be issued, got %d events", len(f.mq.otps))
		}
		code := f.mq.otps[0].Code
		if len(code) != 6 {
			t.Fatalf("expected a 6-digit code, got %q", code)
		}
		if stored, ok := f.db.otpSet[created.ID]; !ok || !f.hmac.Verify(stored, code) {
			t.Fatalf("expected the stored hash to match the published code")
		}
		if out.Token == "" {
			t.Fatalf("expected a session token")
		}
	})

	t.Run("MissingPassword", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Register(context.Background(), RegisterInput{
			FullName: "No Password",
			Email:    "nopass@example.com",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeInvalidInput {
			t.Fatalf("expected invalid input, got %v", appErr.Code())
		}
		if _, ok := appErr.Fields()["password"]; !ok {
			t.Fatalf("expected a password field error, got %v", appErr.Fields())
		}
	})

	t.Run("ShortPassword", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Register(context.Background(), RegisterInput{
			FullName: "Short Password",
			Email:    "short@example.com",
			Password: "short",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeInvalidInput {
			t.Fatalf("expected invalid input, got %v", appErr.Code())
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.db.createErr = goerror.ErrConflict

		// Act
		_, err := f.uc.Register(context.Background(), RegisterInput{
			FullName: "Duplicate User",
			Email:    "dup@example.com",
			Password: "s3cretpass",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeConflict {
			t.Fatalf("expected conflict, got %v", appErr.Code())
		}
		if appErr.Reason() != ReasonEmailInUse {
			t.Fatalf("expected reason %s, got %s", ReasonEmailInUse, appErr.Reason())
		}
	})

	t.Run("InvalidName", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Register(context.Background(), RegisterInput{
			FullName: "x1",
			Email:    "badname@example.com",
			Password: "s3cretpass",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Type() != goerror.TypeValidation {
			t.Fatalf("expected validation error, got %v", appErr.Type())
		}
	})
}
