package db

import (
	"context"
	"errors"

	"github.com/comfinserv/taxdesk/internal/contact/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
	"github.com/comfinserv/taxdesk/internal/pkg/instrument"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{
		conn: conn,
		ins:  ins,
	}
}

func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("contact.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DB) CreateContact(ctx context.Context, in entity.ContactMessage) (err error) {
	ctx, span := s.startSpan(ctx, "CreateContact")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO contact_messages (id, name, email, message)
		VALUES ($1, $2, $3, $4)`

	_, err = s.conn.Exec(ctx, query, in.ID, in.Name, in.Email, in.Message)
	return s.mapError(err)
}

func (s *DB) ListContacts(ctx context.Context, size, offset int32) (_ []entity.ContactMessage, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListContacts")
	defer func() { s.endSpan(span, err) }()

	var total int64
	if err = s.conn.QueryRow(ctx, "SELECT COUNT(*) FROM contact_messages").Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	query := `
		SELECT id, name, email, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.conn.Query(ctx, query, size, offset)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	contacts := make([]entity.ContactMessage, 0)
	for rows.Next() {
		var msg entity.ContactMessage
		if err = rows.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Message, &msg.CreatedAt); err != nil {
			return nil, 0, s.mapError(err)
		}
		contacts = append(contacts, msg)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return contacts, total, nil
}
