package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

type DocumentDownloadInput struct {
	FormID     int64
	DocumentID int64
}

type DocumentDownloadOutput struct {
	URL          string
	OriginalName string
	ContentType  string
	Size         int64
}

// DocumentDownload hands the reviewer a presigned, time-limited URL for one
// stored document instead of streaming the bytes through the API.
func (s *Usecase) DocumentDownload(ctx context.Context, in DocumentDownloadInput) (*DocumentDownloadOutput, error) {
	ctx, span := s.startSpan(ctx, "DocumentDownload")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "review", "read"); err != nil {
		return nil, err
	}

	doc, err := s.repoDB.GetDocumentByID(ctx, in.FormID, in.DocumentID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Document not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get document by id", "form_id", in.FormID, "document_id", in.DocumentID, "error", err)
		return nil, goerror.NewServer(err)
	}

	expiry := s.cfg.GetMinute("modules.filing.download_url_ttl_minutes")
	url, err := s.storage.PresignGet(ctx, doc.Bucket, doc.Key, expiry)
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign document url", "document_id", doc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DocumentDownloadOutput{
		URL:          url,
		OriginalName: doc.OriginalName,
		ContentType:  doc.ContentType,
		Size:         doc.Size,
	}, nil
}
