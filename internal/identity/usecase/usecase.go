package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/comfinserv/taxdesk/internal/identity/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/clock"
	"github.com/comfinserv/taxdesk/internal/pkg/config"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
	"github.com/comfinserv/taxdesk/internal/pkg/hash"
	"github.com/comfinserv/taxdesk/internal/pkg/instrument"
	"github.com/comfinserv/taxdesk/internal/pkg/jwt"
	"github.com/comfinserv/taxdesk/internal/pkg/ratelimit"
	"github.com/comfinserv/taxdesk/internal/pkg/uid"
	"github.com/comfinserv/taxdesk/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// Machine-readable reasons surfaced to API clients alongside the HTTP status.
const (
	ReasonInvalidLogin    = "INVALID_LOGIN"
	ReasonInvalidPassword = "INVALID_PASSWORD"
	ReasonInvalidOTP      = "INVALID_OTP"
	ReasonEmailInUse      = "EMAIL_IN_USE"
)

type UserRegisteredEvent struct {
	UserID int64
	Email  string
	Name   string
	UseOTP bool
}

type OTPRequestedEvent struct {
	UserID    int64
	Email     string
	Name      string
	Code      string
	ExpiresIn int64
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
	PublishOTPRequested(ctx context.Context, msg OTPRequestedEvent) error
}

type repoDB interface {
	GetUserAuthByEmail(ctx context.Context, email string) (*entity.UserAuth, error)
	GetUserAuthByID(ctx context.Context, id int64) (*entity.UserAuth, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)

	CreateUser(ctx context.Context, in entity.NewUser) error

	SetUserOTP(ctx context.Context, id int64, codeHash string, expiresAt time.Time) error
	ClearUserOTP(ctx context.Context, id int64) error
	SetUserPassword(ctx context.Context, id int64, passwordHash string) error
	EnableUserOTP(ctx context.Context, id int64) error
	UpdateUserProfile(ctx context.Context, in entity.UpdateProfile) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	hmac          hash.Hash
	bcrypt        hash.Hash
	uid           uid.NumberID
	uuid          uid.StringID
	limiter       ratelimit.Limiter
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	enforcer      *casbin.Enforcer
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	Bcrypt        hash.Hash
	UID           uid.NumberID
	UUID          uid.StringID
	RateLimit     ratelimit.Limiter
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Enforcer      *casbin.Enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hmac:          dep.HMAC,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		uuid:          dep.UUID,
		limiter:       dep.RateLimit,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	// Temp tokens prove a recent OTP verification and are only good for
	// credential recovery, never for regular authenticated operations.
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

// generateOTPCode returns a crypto-random zero-padded 6-digit code.
func (s *Usecase) generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

// issueOTP generates a fresh code for the user, persists its HMAC with an
// expiry, and hands the plaintext to the notification pipeline. Delivery is
// fire-and-forget: a publish failure is logged, never surfaced to the caller.
func (s *Usecase) issueOTP(ctx context.Context, user *entity.UserAuth) error {
	code, err := s.generateOTPCode()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	ttl := s.cfg.GetMinute("modules.identity.otp_ttl_minutes")
	expiresAt := s.clock.Now().Add(ttl)

	if err := s.repoDB.SetUserOTP(ctx, user.ID, string(codeHash), expiresAt); err != nil {
		slog.ErrorContext(ctx, "failed to repo set user otp", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOTPRequested(ctx, OTPRequestedEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.FullName,
		Code:      code,
		ExpiresIn: int64(ttl.Seconds()),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp requested", "user_id", user.ID, "error", err)
	}

	return nil
}

// verifyAndConsumeOTP checks the submitted code against the stored HMAC and
// expiry. On success the stored code is cleared so it can never be replayed.
func (s *Usecase) verifyAndConsumeOTP(ctx context.Context, user *entity.UserAuth, code string) error {
	invalid := goerror.NewBusinessReason("Invalid or expired OTP", goerror.CodeUnauthorized, ReasonInvalidOTP)

	if user.OTPCode == nil || user.OTPExpiresAt == nil {
		slog.WarnContext(ctx, "no otp issued for user", "user_id", user.ID)
		return invalid
	}

	if s.clock.Now().After(*user.OTPExpiresAt) {
		slog.WarnContext(ctx, "otp expired for user", "user_id", user.ID)
		return invalid
	}

	if !s.hmac.Verify(*user.OTPCode, code) {
		slog.WarnContext(ctx, "otp mismatch for user", "user_id", user.ID)
		return invalid
	}

	if err := s.repoDB.ClearUserOTP(ctx, user.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo clear user otp", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.limiter.Reset(ctx, "otp:verify:"+user.Email); err != nil {
		slog.WarnContext(ctx, "failed to reset otp verify limiter", "user_id", user.ID, "error", err)
	}

	return nil
}

func (s *Usecase) allowOTPVerify(ctx context.Context, email string) error {
	err := s.limiter.Allow(ctx, "otp:verify:"+email,
		s.cfg.GetInt("modules.identity.otp_verify_limit"),
		s.cfg.GetMinute("modules.identity.otp_verify_window_minutes"),
	)
	if errors.Is(err, ratelimit.ErrLimitExceeded) {
		slog.WarnContext(ctx, "otp verify rate limit exceeded", "email", email)
		return goerror.NewBusiness("Too many attempts, try again later", goerror.CodeTooManyRequest)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to check otp verify limiter", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
