package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/comfinserv/taxdesk/internal/pkg/clock"
	"github.com/comfinserv/taxdesk/internal/pkg/config"
	"github.com/comfinserv/taxdesk/internal/pkg/goroutine"
	"github.com/comfinserv/taxdesk/internal/pkg/hash"
	"github.com/comfinserv/taxdesk/internal/pkg/instrument"
	"github.com/comfinserv/taxdesk/internal/pkg/jwt"
	"github.com/comfinserv/taxdesk/internal/pkg/mail"
	"github.com/comfinserv/taxdesk/internal/pkg/messaging"
	"github.com/comfinserv/taxdesk/internal/pkg/pgxcasbin"
	"github.com/comfinserv/taxdesk/internal/pkg/ratelimit"
	"github.com/comfinserv/taxdesk/internal/pkg/router"
	"github.com/comfinserv/taxdesk/internal/pkg/storage"
	"github.com/comfinserv/taxdesk/internal/pkg/uid"
	"github.com/comfinserv/taxdesk/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn        *pgxpool.Pool
	cacheConn     *redis.Client
	limiter       ratelimit.Limiter
	mail          mail.Mail
	messaging     messaging.Messaging
	storage       storage.Storage
	casbin        *casbin.Enforcer
	casbinWatcher *pgxcasbin.Watcher

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initCasbin()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
