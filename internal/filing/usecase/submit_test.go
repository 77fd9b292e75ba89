package usecase

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

func TestSubmit(t *testing.T) {
	t.Run("StoresFormAndDocuments", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := validSubmitInput()

		// Act
		out, err := f.uc.Submit(context.Background(), in)

		// Assert
		if err != nil {
			t.Fatalf("expected submit to succeed, got %v", err)
		}
		if out.FormID == 0 {
			t.Fatalf("expected a form id")
		}
		if len(f.db.created) != 1 {
			t.Fatalf("expected one form created, got %d", len(f.db.created))
		}
		form := f.db.created[0]
		if form.Status != entity.FormStatusPending {
			t.Fatalf("a new submission must start pending, got %v", form.Status)
		}
		if form.UserID != nil {
			t.Fatalf("an anonymous submission must not be attributed")
		}
		if len(form.Documents) != 1 || form.Documents[0].Type != entity.DocumentForm16 {
			t.Fatalf("unexpected documents: %+v", form.Documents)
		}
		if len(f.storage.objects) != 1 {
			t.Fatalf("expected one uploaded object, got %d", len(f.storage.objects))
		}
		obj := f.storage.objects[0]
		if obj.bucket != "taxdesk-test" {
			t.Fatalf("unexpected bucket %s", obj.bucket)
		}
		if !strings.HasSuffix(obj.key, "/form16/form16.pdf") {
			t.Fatalf("unexpected object key %s", obj.key)
		}
		if obj.metadata["document_type"] != "form16" {
			t.Fatalf("expected document_type metadata, got %v", obj.metadata)
		}
		if len(f.mq.submitted) != 1 || f.mq.submitted[0].FormID != out.FormID {
			t.Fatalf("expected a form submitted event, got %+v", f.mq.submitted)
		}
	})

	t.Run("AttributesAuthenticatedCaller", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := validSubmitInput()

		// Act
		_, err := f.uc.Submit(authCtx(42, "user", false), in)

		// Assert
		if err != nil {
			t.Fatalf("expected submit to succeed, got %v", err)
		}
		form := f.db.created[0]
		if form.UserID == nil || *form.UserID != 42 {
			t.Fatalf("expected the submission attributed to user 42, got %v", form.UserID)
		}
	})

	t.Run("TempTokenIsNotAttributed", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := validSubmitInput()

		// Act
		_, err := f.uc.Submit(authCtx(42, "user", true), in)

		// Assert
		if err != nil {
			t.Fatalf("expected submit to succeed, got %v", err)
		}
		if f.db.created[0].UserID != nil {
			t.Fatalf("a temp token must not attribute the submission")
		}
	})

	t.Run("NormalizesPAN", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := validSubmitInput()
		in.PAN = " abcde1234f "

		// Act
		_, err := f.uc.Submit(context.Background(), in)

		// Assert
		if err != nil {
			t.Fatalf("expected submit to succeed, got %v", err)
		}
		if f.db.created[0].PAN != "ABCDE1234F" {
			t.Fatalf("expected an uppercased pan, got %s", f.db.created[0].PAN)
		}
	})

	t.Run("InvalidPAN", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := validSubmitInput()
		in.PAN = "1234567890"

		// Act
		_, err := f.uc.Submit(context.Background(), in)

		// Assert
		appErr := asAppError(t, err)
		if appErr.Type() != goerror.TypeValidation {
			t.Fatalf("expected validation error, got %v", appErr.Type())
		}
	})

	t.Run("IncomeTaxLoginRequiresCredentials", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := validSubmitInput()
		in.HasIncomeTaxLogin = true

		// Act
		_, err := f.uc.Submit(context.Background(), in)

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeInvalidInput {
			t.Fatalf("expected invalid input, got %v", appErr.Code())
		}
	})

	t.Run("PRANRequiresNumber", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := validSubmitInput()
		in.HasPRAN = true

		// Act
		_, err := f.uc.Submit(context.Background(), in)

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeInvalidInput {
			t.Fatalf("expected invalid input, got %v", appErr.Code())
		}
	})

	t.Run("OversizedDocument", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := validSubmitInput()
		in.Documents[0].Size = 2048 // the test config caps documents at 1024 bytes

		// Act
		_, err := f.uc.Submit(context.Background(), in)

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeInvalidInput {
			t.Fatalf("expected invalid input, got %v", appErr.Code())
		}
		if len(f.storage.objects) != 0 {
			t.Fatalf("an oversized document must not be uploaded")
		}
	})

	t.Run("UnknownDocumentField", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := validSubmitInput()
		in.Documents = append(in.Documents, DocumentUpload{
			Type:         entity.DocumentType("passportScan"),
			File:         bytes.NewReader([]byte("x")),
			OriginalName: "passport.pdf",
			Size:         1,
		})

		// Act
		_, err := f.uc.Submit(context.Background(), in)

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeInvalidInput {
			t.Fatalf("expected invalid input, got %v", appErr.Code())
		}
	})

	t.Run("UploadFailureAborts", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.storage.putErr = context.DeadlineExceeded
		in := validSubmitInput()

		// Act
		_, err := f.uc.Submit(context.Background(), in)

		// Assert
		appErr := asAppError(t, err)
		if appErr.Type() != goerror.TypeServer {
			t.Fatalf("expected server error, got %v", appErr.Type())
		}
		if len(f.db.created) != 0 {
			t.Fatalf("the form must not be created when an upload fails")
		}
	})
}

func TestMySubmissions(t *testing.T) {
	t.Run("ReturnsOwnForms", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		userID := int64(42)
		f.db.forms[1] = &entity.TaxForm{ID: 1, UserID: &userID, FullName: "Asha Verma"}
		otherID := int64(77)
		f.db.forms[2] = &entity.TaxForm{ID: 2, UserID: &otherID, FullName: "Someone Else"}

		// Act
		forms, err := f.uc.MySubmissions(authCtx(42, "user", false))

		// Assert
		if err != nil {
			t.Fatalf("expected listing to succeed, got %v", err)
		}
		if len(forms) != 1 || forms[0].ID != 1 {
			t.Fatalf("expected only the caller's forms, got %+v", forms)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.MySubmissions(context.Background())

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", appErr.Code())
		}
	})
}
