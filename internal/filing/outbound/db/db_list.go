package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/jackc/pgx/v5"
)

func (s *DB) ListFormsByUser(ctx context.Context, userID int64) (_ []entity.TaxForm, err error) {
	ctx, span := s.startSpan(ctx, "ListFormsByUser")
	defer func() { s.endSpan(span, err) }()

	query := "SELECT " + queryFormColumns + `
		FROM filing_tax_forms
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := s.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	forms, err := s.collectForms(ctx, rows)
	if err != nil {
		return nil, s.mapError(err)
	}

	return forms, nil
}

func (s *DB) ListForms(ctx context.Context, filter entity.FormFilter) (_ []entity.TaxForm, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListForms")
	defer func() { s.endSpan(span, err) }()

	conditions := make([]string, 0, 4)
	args := make([]any, 0, 6)

	if filter.IsFilterByPAN {
		args = append(args, "%"+filter.PAN+"%")
		conditions = append(conditions, fmt.Sprintf("pan ILIKE $%d", len(args)))
	}
	if filter.IsFilterByName {
		args = append(args, "%"+filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf("full_name ILIKE $%d", len(args)))
	}
	if filter.IsFilterByStatus {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if !filter.DateFrom.IsZero() {
		args = append(args, filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !filter.DateTo.IsZero() {
		args = append(args, filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err = s.conn.QueryRow(ctx, "SELECT COUNT(*) FROM filing_tax_forms"+where, args...).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	args = append(args, filter.Size)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	query := "SELECT " + queryFormColumns + " FROM filing_tax_forms" + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", limitPos, offsetPos)

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	forms, err := s.collectForms(ctx, rows)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	return forms, total, nil
}

func (s *DB) ListRecentForms(ctx context.Context, limit int32) (_ []entity.TaxForm, err error) {
	ctx, span := s.startSpan(ctx, "ListRecentForms")
	defer func() { s.endSpan(span, err) }()

	query := "SELECT " + queryFormColumns + `
		FROM filing_tax_forms
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := s.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	forms, err := s.collectForms(ctx, rows)
	if err != nil {
		return nil, s.mapError(err)
	}

	return forms, nil
}

// collectForms scans form rows and attaches document metadata per form.
func (s *DB) collectForms(ctx context.Context, rows pgx.Rows) ([]entity.TaxForm, error) {
	forms := make([]entity.TaxForm, 0)
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, *form)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range forms {
		docs, err := s.listDocuments(ctx, forms[i].ID)
		if err != nil {
			return nil, err
		}
		forms[i].Documents = docs
	}

	return forms, nil
}
