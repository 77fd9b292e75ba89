package usecase

import (
	"context"
	"log/slog"

	"github.com/casbin/casbin/v3"
	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/clock"
	"github.com/comfinserv/taxdesk/internal/pkg/config"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
	"github.com/comfinserv/taxdesk/internal/pkg/instrument"
	"github.com/comfinserv/taxdesk/internal/pkg/jwt"
	"github.com/comfinserv/taxdesk/internal/pkg/storage"
	"github.com/comfinserv/taxdesk/internal/pkg/uid"
	"github.com/comfinserv/taxdesk/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type FormSubmittedEvent struct {
	FormID        int64
	Email         string
	FullName      string
	PAN           string
	DocumentCount int
}

type FormStatusChangedEvent struct {
	FormID   int64
	Email    string
	FullName string
	Status   string
}

type repoMessaging interface {
	PublishFormSubmitted(ctx context.Context, msg FormSubmittedEvent) error
	PublishFormStatusChanged(ctx context.Context, msg FormStatusChangedEvent) error
}

type repoDB interface {
	CreateForm(ctx context.Context, in entity.NewTaxForm) error
	GetFormByID(ctx context.Context, id int64) (*entity.TaxForm, error)
	GetDocumentByID(ctx context.Context, formID, docID int64) (*entity.Document, error)

	ListFormsByUser(ctx context.Context, userID int64) ([]entity.TaxForm, error)
	ListForms(ctx context.Context, filter entity.FormFilter) ([]entity.TaxForm, int64, error)
	ListRecentForms(ctx context.Context, limit int32) ([]entity.TaxForm, error)

	UpdateFormStatus(ctx context.Context, id int64, status entity.FormStatus) error

	CountFormsByStatus(ctx context.Context) (*entity.StatusCounts, error)
	CountContacts(ctx context.Context) (int64, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	enforcer      *casbin.Enforcer
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Enforcer      *casbin.Enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("filing.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if clm.Temp {
		return nil, goerror.NewBusiness("Temporary token not allowed here", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(clm.Role, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}
