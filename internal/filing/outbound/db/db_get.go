package db

import (
	"context"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/jackc/pgx/v5"
)

const queryFormColumns = `
	id, user_id, full_name, email, phone, pan,
	has_income_tax_login, income_tax_login_id, income_tax_login_password,
	has_home_loan, home_loan_sanction_date, home_loan_amount,
	home_loan_current_due, home_loan_total_interest,
	has_pran, pran_number, status, created_at, updated_at
`

func scanForm(row pgx.Row) (*entity.TaxForm, error) {
	var form entity.TaxForm
	err := row.Scan(
		&form.ID, &form.UserID, &form.FullName, &form.Email, &form.Phone, &form.PAN,
		&form.HasIncomeTaxLogin, &form.IncomeTaxLoginID, &form.IncomeTaxLoginPassword,
		&form.HasHomeLoan, &form.HomeLoanSanctionDate, &form.HomeLoanAmount,
		&form.HomeLoanCurrentDue, &form.HomeLoanTotalInterest,
		&form.HasPRAN, &form.PRANNumber, &form.Status, &form.CreatedAt, &form.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &form, nil
}

func (s *DB) GetFormByID(ctx context.Context, id int64) (_ *entity.TaxForm, err error) {
	ctx, span := s.startSpan(ctx, "GetFormByID")
	defer func() { s.endSpan(span, err) }()

	query := "SELECT " + queryFormColumns + " FROM filing_tax_forms WHERE id = $1"

	form, err := scanForm(s.conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	docs, err := s.listDocuments(ctx, form.ID)
	if err != nil {
		return nil, s.mapError(err)
	}
	form.Documents = docs

	return form, nil
}

func (s *DB) GetDocumentByID(ctx context.Context, formID, docID int64) (_ *entity.Document, err error) {
	ctx, span := s.startSpan(ctx, "GetDocumentByID")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, form_id, document_type, original_name, bucket, object_key, file_size, content_type, created_at
		FROM filing_documents
		WHERE id = $1 AND form_id = $2`

	var doc entity.Document
	err = s.conn.QueryRow(ctx, query, docID, formID).Scan(
		&doc.ID, &doc.FormID, &doc.Type, &doc.OriginalName,
		&doc.Bucket, &doc.Key, &doc.Size, &doc.ContentType, &doc.CreatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &doc, nil
}

func (s *DB) listDocuments(ctx context.Context, formID int64) ([]entity.Document, error) {
	query := `
		SELECT id, form_id, document_type, original_name, bucket, object_key, file_size, content_type, created_at
		FROM filing_documents
		WHERE form_id = $1
		ORDER BY id`

	rows, err := s.conn.Query(ctx, query, formID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]entity.Document, 0)
	for rows.Next() {
		var doc entity.Document
		if err := rows.Scan(
			&doc.ID, &doc.FormID, &doc.Type, &doc.OriginalName,
			&doc.Bucket, &doc.Key, &doc.Size, &doc.ContentType, &doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}
