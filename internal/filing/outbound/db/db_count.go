package db

import (
	"context"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
)

func (s *DB) CountFormsByStatus(ctx context.Context) (_ *entity.StatusCounts, err error) {
	ctx, span := s.startSpan(ctx, "CountFormsByStatus")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3)
		FROM filing_tax_forms`

	var counts entity.StatusCounts
	err = s.conn.QueryRow(ctx, query,
		entity.FormStatusPending, entity.FormStatusReviewed, entity.FormStatusFiled,
	).Scan(&counts.Total, &counts.Pending, &counts.Reviewed, &counts.Filed)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &counts, nil
}

func (s *DB) CountContacts(ctx context.Context) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountContacts")
	defer func() { s.endSpan(span, err) }()

	var total int64
	if err = s.conn.QueryRow(ctx, "SELECT COUNT(*) FROM contact_messages").Scan(&total); err != nil {
		return 0, s.mapError(err)
	}

	return total, nil
}
