package contact

import (
	"github.com/casbin/casbin/v3"
	"github.com/comfinserv/taxdesk/internal/contact/inbound"
	"github.com/comfinserv/taxdesk/internal/contact/outbound/db"
	"github.com/comfinserv/taxdesk/internal/contact/usecase"
	"github.com/comfinserv/taxdesk/internal/pkg/clock"
	"github.com/comfinserv/taxdesk/internal/pkg/config"
	"github.com/comfinserv/taxdesk/internal/pkg/instrument"
	"github.com/comfinserv/taxdesk/internal/pkg/router"
	"github.com/comfinserv/taxdesk/internal/pkg/uid"
	"github.com/comfinserv/taxdesk/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Enforcer   *casbin.Enforcer           `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbContact := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     dbContact,
		Validator:  dep.Validator,
		Config:     dep.Config,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
		Enforcer:   dep.Enforcer,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
