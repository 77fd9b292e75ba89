package usecase

import (
	"context"
	"testing"

	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

func TestProfile(t *testing.T) {
	t.Run("ReturnsTheAccount", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addPasswordUser(t, 701, "yara@example.com", "s3cretpass")

		// Act
		user, err := f.uc.Profile(authCtx(701, "user", false))

		// Assert
		if err != nil {
			t.Fatalf("expected profile to succeed, got %v", err)
		}
		if user.ID != 701 || user.Email != "yara@example.com" {
			t.Fatalf("unexpected profile: %+v", user)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Profile(context.Background())

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", appErr.Code())
		}
	})

	t.Run("RejectsTempToken", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addPasswordUser(t, 702, "zane@example.com", "s3cretpass")

		// Act
		_, err := f.uc.Profile(authCtx(702, "user", true))

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", appErr.Code())
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("NormalizesAndStores", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addPasswordUser(t, 801, "ada@example.com", "s3cretpass")

		// Act
		_, err := f.uc.UpdateProfile(authCtx(801, "user", false), UpdateProfileInput{
			FullName: " Ada Lovelace ",
			Email:    "Ada@Example.com",
			PAN:      "abcde1234f",
			Mobile:   "9876543210",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected update to succeed, got %v", err)
		}
		if len(f.db.profileUpdates) != 1 {
			t.Fatalf("expected one update, got %d", len(f.db.profileUpdates))
		}
		update := f.db.profileUpdates[0]
		if update.Email != "ada@example.com" || update.FullName != "Ada Lovelace" {
			t.Fatalf("expected normalized fields, got %+v", update)
		}
		if update.PAN != "ABCDE1234F" {
			t.Fatalf("expected an uppercased pan, got %s", update.PAN)
		}
	})

	t.Run("InvalidPAN", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addPasswordUser(t, 802, "ben@example.com", "s3cretpass")

		// Act
		_, err := f.uc.UpdateProfile(authCtx(802, "user", false), UpdateProfileInput{
			FullName: "Ben Okri",
			Email:    "ben@example.com",
			PAN:      "NOT-A-PAN",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Type() != goerror.TypeValidation {
			t.Fatalf("expected validation error, got %v", appErr.Type())
		}
	})

	t.Run("InvalidMobile", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addPasswordUser(t, 803, "cam@example.com", "s3cretpass")

		// Act
		_, err := f.uc.UpdateProfile(authCtx(803, "user", false), UpdateProfileInput{
			FullName: "Cam Singh",
			Email:    "cam@example.com",
			Mobile:   "12345",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Type() != goerror.TypeValidation {
			t.Fatalf("expected validation error, got %v", appErr.Type())
		}
	})

	t.Run("EmailAlreadyInUse", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.addPasswordUser(t, 804, "dia@example.com", "s3cretpass")
		f.db.updateErr = goerror.ErrConflict

		// Act
		_, err := f.uc.UpdateProfile(authCtx(804, "user", false), UpdateProfileInput{
			FullName: "Dia Mirza",
			Email:    "taken@example.com",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Reason() != ReasonEmailInUse {
			t.Fatalf("expected reason %s, got %s", ReasonEmailInUse, appErr.Reason())
		}
	})
}
