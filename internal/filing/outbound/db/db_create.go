package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/jackc/pgx/v5"
)

// CreateForm inserts the form row and its document metadata in one
// transaction so a half-written submission never becomes visible.
func (s *DB) CreateForm(ctx context.Context, in entity.NewTaxForm) (err error) {
	ctx, span := s.startSpan(ctx, "CreateForm")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	formQuery := `
		INSERT INTO filing_tax_forms (
			id, user_id, full_name, email, phone, pan,
			has_income_tax_login, income_tax_login_id, income_tax_login_password,
			has_home_loan, home_loan_sanction_date, home_loan_amount,
			home_loan_current_due, home_loan_total_interest,
			has_pran, pran_number, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err = tx.Exec(ctx, formQuery,
		in.ID, in.UserID, in.FullName, in.Email, in.Phone, in.PAN,
		in.HasIncomeTaxLogin, in.IncomeTaxLoginID, in.IncomeTaxLoginPassword,
		in.HasHomeLoan, in.HomeLoanSanctionDate, in.HomeLoanAmount,
		in.HomeLoanCurrentDue, in.HomeLoanTotalInterest,
		in.HasPRAN, in.PRANNumber, in.Status,
	)
	if err != nil {
		return s.mapError(err)
	}

	docQuery := `
		INSERT INTO filing_documents (
			id, form_id, document_type, original_name, bucket, object_key, file_size, content_type
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, doc := range in.Documents {
		_, err = tx.Exec(ctx, docQuery,
			doc.ID, in.ID, string(doc.Type), doc.OriginalName,
			doc.Bucket, doc.Key, doc.Size, doc.ContentType,
		)
		if err != nil {
			return s.mapError(err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
