package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/comfinserv/taxdesk/internal/contact/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/config"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
	"github.com/comfinserv/taxdesk/internal/pkg/instrument"
	"github.com/comfinserv/taxdesk/internal/pkg/jwt"
	"github.com/comfinserv/taxdesk/internal/pkg/uid"
	"github.com/comfinserv/taxdesk/internal/pkg/validator"
)

const testRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type fakeRepoDB struct {
	created  []entity.ContactMessage
	list     []entity.ContactMessage
	total    int64
	lastSize int32
	lastOff  int32
}

func (f *fakeRepoDB) CreateContact(_ context.Context, in entity.ContactMessage) error {
	f.created = append(f.created, in)
	return nil
}

func (f *fakeRepoDB) ListContacts(_ context.Context, size, offset int32) ([]entity.ContactMessage, int64, error) {
	f.lastSize = size
	f.lastOff = offset
	return f.list, f.total, nil
}

type fixture struct {
	uc *Usecase
	db *fakeRepoDB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  contact:\n    enabled: true\n"))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	m, err := model.NewModelFromString(testRBACModel)
	if err != nil {
		t.Fatalf("failed to build rbac model: %v", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("failed to build enforcer: %v", err)
	}
	if _, err := enforcer.AddPolicy("admin", "*", "*"); err != nil {
		t.Fatalf("failed to add policy: %v", err)
	}

	snowflake, err := uid.NewSnowflake()
	if err != nil {
		t.Fatalf("failed to build snowflake: %v", err)
	}

	db := &fakeRepoDB{}
	uc := New(Dependency{
		RepoDB:     db,
		Validator:  v10,
		Config:     cfg,
		UID:        snowflake,
		Clock:      &fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		Instrument: instrument.NewNoop(),
		Enforcer:   enforcer,
	})

	return &fixture{uc: uc, db: db}
}

func authCtx(id int64, role string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: id, Role: role})
}

func asAppError(t *testing.T, err error) *goerror.Error {
	t.Helper()

	var appErr *goerror.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected application error, got %v", err)
	}

	return appErr
}

func TestSubmit(t *testing.T) {
	t.Run("StoresTheMessage", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		err := f.uc.Submit(context.Background(), SubmitInput{
			Name:    " Asha Verma ",
			Email:   "Asha@Example.com",
			Message: "I need help with my tax filing documents.",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected submit to succeed, got %v", err)
		}
		if len(f.db.created) != 1 {
			t.Fatalf("expected one message stored, got %d", len(f.db.created))
		}
		msg := f.db.created[0]
		if msg.Name != "Asha Verma" || msg.Email != "asha@example.com" {
			t.Fatalf("expected normalized fields, got %+v", msg)
		}
		if msg.ID == 0 {
			t.Fatalf("expected an id assigned")
		}
	})

	t.Run("MessageTooShort", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		err := f.uc.Submit(context.Background(), SubmitInput{
			Name:    "Asha Verma",
			Email:   "asha@example.com",
			Message: "hi",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Type() != goerror.TypeValidation {
			t.Fatalf("expected validation error, got %v", appErr.Type())
		}
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		err := f.uc.Submit(context.Background(), SubmitInput{
			Name:    "Asha Verma",
			Email:   "not-an-email",
			Message: "I need help with my tax filing documents.",
		})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Type() != goerror.TypeValidation {
			t.Fatalf("expected validation error, got %v", appErr.Type())
		}
	})
}

func TestList(t *testing.T) {
	t.Run("PaginatesForAdmins", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.db.list = []entity.ContactMessage{{ID: 1}, {ID: 2}}
		f.db.total = 42

		// Act
		out, err := f.uc.List(authCtx(1, "admin"), ListInput{Page: 3, Size: 20})

		// Assert
		if err != nil {
			t.Fatalf("expected listing to succeed, got %v", err)
		}
		if f.db.lastSize != 20 || f.db.lastOff != 40 {
			t.Fatalf("expected page 3 of 20, got size %d offset %d", f.db.lastSize, f.db.lastOff)
		}
		if out.Total != 42 || len(out.Contacts) != 2 {
			t.Fatalf("unexpected output: %+v", out)
		}
	})

	t.Run("DefaultsPageSize", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		out, err := f.uc.List(authCtx(1, "admin"), ListInput{})

		// Assert
		if err != nil {
			t.Fatalf("expected listing to succeed, got %v", err)
		}
		if f.db.lastSize != 10 || f.db.lastOff != 0 {
			t.Fatalf("expected the default first page, got size %d offset %d", f.db.lastSize, f.db.lastOff)
		}
		if out.Page != 1 {
			t.Fatalf("unexpected page %d", out.Page)
		}
	})

	t.Run("ForbiddenForFilers", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.List(authCtx(42, "user"), ListInput{})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeForbidden {
			t.Fatalf("expected forbidden, got %v", appErr.Code())
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.List(context.Background(), ListInput{})

		// Assert
		appErr := asAppError(t, err)
		if appErr.Code() != goerror.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", appErr.Code())
		}
	})
}
