package db

import (
	"context"

	"github.com/comfinserv/taxdesk/internal/identity/entity"
)

const queryGetUserAuth = `
SELECT id, email, full_name, role, use_otp, password, otp_code, otp_expires_at
FROM identity_users
`

func (s *DB) GetUserAuthByEmail(ctx context.Context, email string) (_ *entity.UserAuth, err error) {
	ctx, span := s.startSpan(ctx, "GetUserAuthByEmail")
	defer func() { s.endSpan(span, err) }()

	var user entity.UserAuth
	err = s.conn.QueryRow(ctx, queryGetUserAuth+"WHERE email = $1", email).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Role,
		&user.UseOTP,
		&user.Password,
		&user.OTPCode,
		&user.OTPExpiresAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

func (s *DB) GetUserAuthByID(ctx context.Context, id int64) (_ *entity.UserAuth, err error) {
	ctx, span := s.startSpan(ctx, "GetUserAuthByID")
	defer func() { s.endSpan(span, err) }()

	var user entity.UserAuth
	err = s.conn.QueryRow(ctx, queryGetUserAuth+"WHERE id = $1", id).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Role,
		&user.UseOTP,
		&user.Password,
		&user.OTPCode,
		&user.OTPExpiresAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, email, full_name, role, use_otp,
			COALESCE(pan, ''), COALESCE(mobile, ''), created_at, updated_at
		FROM identity_users
		WHERE id = $1`

	var user entity.User
	err = s.conn.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Role,
		&user.UseOTP,
		&user.PAN,
		&user.Mobile,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}
