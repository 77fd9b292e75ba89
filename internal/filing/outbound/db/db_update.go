package db

import (
	"context"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

func (s *DB) UpdateFormStatus(ctx context.Context, id int64, status entity.FormStatus) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateFormStatus")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE filing_tax_forms
		SET status = $2, updated_at = now()
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id, status)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
