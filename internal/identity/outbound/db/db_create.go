package db

import (
	"context"

	"github.com/comfinserv/taxdesk/internal/identity/entity"
)

func (s *DB) CreateUser(ctx context.Context, in entity.NewUser) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO identity_users (id, email, full_name, role, use_otp, password)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = s.conn.Exec(ctx, query, in.ID, in.Email, in.FullName, in.Role, in.UseOTP, in.Password)
	return s.mapError(err)
}
