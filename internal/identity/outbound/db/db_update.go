package db

import (
	"context"
	"time"

	"github.com/comfinserv/taxdesk/internal/identity/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
)

func (s *DB) SetUserOTP(ctx context.Context, id int64, codeHash string, expiresAt time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "SetUserOTP")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE identity_users
		SET otp_code = $2, otp_expires_at = $3, updated_at = now()
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id, codeHash, expiresAt)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) ClearUserOTP(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "ClearUserOTP")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE identity_users
		SET otp_code = NULL, otp_expires_at = NULL, updated_at = now()
		WHERE id = $1`

	_, err = s.conn.Exec(ctx, query, id)
	return s.mapError(err)
}

// SetUserPassword switches the account to password login: the stored password
// is replaced and any pending OTP state is dropped in the same statement.
func (s *DB) SetUserPassword(ctx context.Context, id int64, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "SetUserPassword")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE identity_users
		SET password = $2, use_otp = FALSE, otp_code = NULL, otp_expires_at = NULL, updated_at = now()
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// EnableUserOTP switches the account to OTP login and clears the password so
// exactly one credential path stays authoritative.
func (s *DB) EnableUserOTP(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "EnableUserOTP")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE identity_users
		SET use_otp = TRUE, password = NULL, updated_at = now()
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) UpdateUserProfile(ctx context.Context, in entity.UpdateProfile) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserProfile")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE identity_users
		SET email = $2, full_name = $3, pan = NULLIF($4, ''), mobile = NULLIF($5, ''), updated_at = now()
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, in.ID, in.Email, in.FullName, in.PAN, in.Mobile)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
