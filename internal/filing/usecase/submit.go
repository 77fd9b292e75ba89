package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
	"github.com/comfinserv/taxdesk/internal/pkg/jwt"
	"github.com/comfinserv/taxdesk/internal/pkg/storage"
)

// DocumentUpload is one incoming file on the submit endpoint.
type DocumentUpload struct {
	Type         entity.DocumentType
	File         io.Reader
	OriginalName string
	Size         int64
	ContentType  string
}

type SubmitInput struct {
	FullName string `validate:"required,min=3,max=100"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,inphone"`
	PAN      string `validate:"required,pan"`

	HasIncomeTaxLogin      bool
	IncomeTaxLoginID       string
	IncomeTaxLoginPassword string
	HasHomeLoan            bool
	HomeLoanSanctionDate   string
	HomeLoanAmount         string
	HomeLoanCurrentDue     string
	HomeLoanTotalInterest  string
	HasPRAN                bool
	PRANNumber             string

	Documents []DocumentUpload
}

type SubmitOutput struct {
	FormID int64
}

// Submit stores a public tax-filing submission: documents go to object
// storage, the form row plus document metadata go to the database, and a
// form-submitted event is emitted for the notification pipeline. The endpoint
// is public, but when a session token is present the submission is attributed
// to that account so it shows up under the caller's own submissions.
func (s *Usecase) Submit(ctx context.Context, in SubmitInput) (*SubmitOutput, error) {
	ctx, span := s.startSpan(ctx, "Submit")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.PAN = strings.ToUpper(strings.TrimSpace(in.PAN))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.HasIncomeTaxLogin && (in.IncomeTaxLoginID == "" || in.IncomeTaxLoginPassword == "") {
		return nil, goerror.NewInvalidInput(nil, "incomeTaxLogin", "income tax login credentials are required")
	}

	if in.HasPRAN && in.PRANNumber == "" {
		return nil, goerror.NewInvalidInput(nil, "pranNumber", "PRAN number is required")
	}

	maxSize := s.cfg.GetInt64("modules.filing.max_document_size_bytes")
	for _, doc := range in.Documents {
		if !doc.Type.IsValid() {
			return nil, goerror.NewInvalidInput(nil, string(doc.Type), "unknown document field")
		}
		if doc.Size > maxSize {
			return nil, goerror.NewInvalidInput(nil, string(doc.Type), "document exceeds the maximum allowed size")
		}
	}

	formID := s.uid.Generate()
	bucket := strings.TrimSpace(s.cfg.GetString("modules.filing.document_bucket"))

	documents := make([]entity.Document, 0, len(in.Documents))
	for _, doc := range in.Documents {
		key := fmt.Sprintf("form/%d/%s/%s", formID, doc.Type, doc.OriginalName)

		info, err := s.storage.PutObject(ctx, bucket, key, doc.File, storage.PutOptions{
			Size:        doc.Size,
			ContentType: doc.ContentType,
			Metadata:    map[string]string{"document_type": string(doc.Type)},
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to upload document", "form_id", formID, "type", doc.Type, "error", err)
			return nil, goerror.NewServer(err)
		}

		documents = append(documents, entity.Document{
			ID:           s.uid.Generate(),
			FormID:       formID,
			Type:         doc.Type,
			OriginalName: doc.OriginalName,
			Bucket:       info.Bucket,
			Key:          info.Key,
			Size:         doc.Size,
			ContentType:  doc.ContentType,
		})
	}

	var userID *int64
	if clm := jwt.GetAuth(ctx); clm != nil && !clm.Temp {
		userID = &clm.UserID
	}

	form := entity.NewTaxForm{
		ID:       formID,
		UserID:   userID,
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
		PAN:      in.PAN,

		HasIncomeTaxLogin:      in.HasIncomeTaxLogin,
		IncomeTaxLoginID:       in.IncomeTaxLoginID,
		IncomeTaxLoginPassword: in.IncomeTaxLoginPassword,
		HasHomeLoan:            in.HasHomeLoan,
		HomeLoanSanctionDate:   in.HomeLoanSanctionDate,
		HomeLoanAmount:         in.HomeLoanAmount,
		HomeLoanCurrentDue:     in.HomeLoanCurrentDue,
		HomeLoanTotalInterest:  in.HomeLoanTotalInterest,
		HasPRAN:                in.HasPRAN,
		PRANNumber:             in.PRANNumber,

		Status:    entity.FormStatusPending,
		Documents: documents,
	}

	if err := s.repoDB.CreateForm(ctx, form); err != nil {
		slog.ErrorContext(ctx, "failed to repo create form", "form_id", formID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishFormSubmitted(ctx, FormSubmittedEvent{
		FormID:        formID,
		Email:         in.Email,
		FullName:      in.FullName,
		PAN:           in.PAN,
		DocumentCount: len(documents),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish form submitted", "form_id", formID, "error", err)
	}

	return &SubmitOutput{FormID: formID}, nil
}
