package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/comfinserv/taxdesk/internal/identity/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/config"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
	"github.com/comfinserv/taxdesk/internal/pkg/hash"
	"github.com/comfinserv/taxdesk/internal/pkg/instrument"
	"github.com/comfinserv/taxdesk/internal/pkg/jwt"
	"github.com/comfinserv/taxdesk/internal/pkg/uid"
	"github.com/comfinserv/taxdesk/internal/pkg/validator"
)

const testConfigYAML = `
modules:
  identity:
    otp_ttl_minutes: 10
    otp_request_limit: 3
    otp_request_window_minutes: 10
    otp_verify_limit: 5
    otp_verify_window_minutes: 10
`

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

type fakeLimiter struct {
	allowErr  error
	allowKeys []string
	resetKeys []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) error {
	f.allowKeys = append(f.allowKeys, key)
	return f.allowErr
}

func (f *fakeLimiter) Reset(_ context.Context, key string) error {
	f.resetKeys = append(f.resetKeys, key)
	return nil
}

type fakeMessaging struct {
	registered []UserRegisteredEvent
	otps       []OTPRequestedEvent
}

func (f *fakeMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	f.registered = append(f.registered, msg)
	return nil
}

func (f *fakeMessaging) PublishOTPRequested(_ context.Context, msg OTPRequestedEvent) error {
	f.otps = append(f.otps, msg)
	return nil
}

type fakeRepoDB struct {
	users    map[string]*entity.UserAuth
	profiles map[int64]*entity.User

	created        []entity.NewUser
	createErr      error
	otpSet         map[int64]string
	otpCleared     []int64
	passwordSet    map[int64]string
	otpEnabled     []int64
	profileUpdates []entity.UpdateProfile
	updateErr      error
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		users:       make(map[string]*entity.UserAuth),
		profiles:    make(map[int64]*entity.User),
		otpSet:      make(map[int64]string),
		passwordSet: make(map[int64]string),
	}
}

func (f *fakeRepoDB) GetUserAuthByEmail(_ context.Context, email string) (*entity.UserAuth, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return user, nil
}

func (f *fakeRepoDB) GetUserAuthByID(_ context.Context, id int64) (*entity.UserAuth, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	if user, ok := f.profiles[id]; ok {
		return user, nil
	}
	for _, c := range f.created {
		if c.ID == id {
			return &entity.User{ID: c.ID, Email: c.Email, FullName: c.FullName, Role: c.Role, UseOTP: c.UseOTP}, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepoDB) CreateUser(_ context.Context, in entity.NewUser) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, in)
	return nil
}

func (f *fakeRepoDB) SetUserOTP(_ context.Context, id int64, codeHash string, expiresAt time.Time) error {
	f.otpSet[id] = codeHash
	for _, user := range f.users {
		if user.ID == id {
			user.OTPCode = &codeHash
			expiry := expiresAt
			user.OTPExpiresAt = &expiry
		}
	}
	return nil
}

func (f *fakeRepoDB) ClearUserOTP(_ context.Context, id int64) error {
	f.otpCleared = append(f.otpCleared, id)
	for _, user := range f.users {
		if user.ID == id {
			user.OTPCode = nil
			user.OTPExpiresAt = nil
		}
	}
	return nil
}

func (f *fakeRepoDB) SetUserPassword(_ context.Context, id int64, passwordHash string) error {
	f.passwordSet[id] = passwordHash
	for _, user := range f.users {
		if user.ID == id {
			stored := passwordHash
			user.Password = &stored
			user.UseOTP = false
			user.OTPCode = nil
			user.OTPExpiresAt = nil
		}
	}
	return nil
}

func (f *fakeRepoDB) EnableUserOTP(_ context.Context, id int64) error {
	f.otpEnabled = append(f.otpEnabled, id)
	for _, user := range f.users {
		if user.ID == id {
			user.UseOTP = true
			user.Password = nil
		}
	}
	return nil
}

func (f *fakeRepoDB) UpdateUserProfile(_ context.Context, in entity.UpdateProfile) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.profileUpdates = append(f.profileUpdates, in)
	return nil
}

type fixture struct {
	uc      *Usecase
	db      *fakeRepoDB
	mq      *fakeMessaging
	limiter *fakeLimiter
	clock   *fixedClock
	jwt     jwt.JWT
	hmac    hash.Hash
	bcrypt  hash.Hash
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	clk := &fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}

	jwtImpl, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:    "taxdesk-test",
		Audiences: []string{"taxdesk-test"},
		TTL:       5 * 24 * time.Hour,
		TempTTL:   15 * time.Minute,
		Clock:     clk,
		UUID:      uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("failed to build jwt: %v", err)
	}

	m, err := model.NewModelFromString(testRBACModel)
	if err != nil {
		t.Fatalf("failed to build rbac model: %v", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("failed to build enforcer: %v", err)
	}
	for _, p := range [][]string{
		{"admin", "*", "*"},
		{"user", "profile", "*"},
		{"user", "submission", "read"},
	} {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			t.Fatalf("failed to add policy: %v", err)
		}
	}

	snowflake, err := uid.NewSnowflake()
	if err != nil {
		t.Fatalf("failed to build snowflake: %v", err)
	}

	db := newFakeRepoDB()
	mq := &fakeMessaging{}
	limiter := &fakeLimiter{}
	hmac := hash.NewHMACSHA256("test-otp-secret")
	bcrypt := hash.NewBcrypt(4, "")

	uc := New(Dependency{
		RepoDB:        db,
		RepoMessaging: mq,
		Validator:     v10,
		Config:        cfg,
		HMAC:          hmac,
		Bcrypt:        bcrypt,
		UID:           snowflake,
		UUID:          uid.NewUUID(),
		RateLimit:     limiter,
		Clock:         clk,
		JWT:           jwtImpl,
		Instrument:    instrument.NewNoop(),
		Enforcer:      enforcer,
	})

	return &fixture{
		uc:      uc,
		db:      db,
		mq:      mq,
		limiter: limiter,
		clock:   clk,
		jwt:     jwtImpl,
		hmac:    hmac,
		bcrypt:  bcrypt,
	}
}

func (f *fixture) addPasswordUser(t *testing.T, id int64, email, password string) *entity.UserAuth {
	t.Helper()

	hashed, err := f.bcrypt.Hash(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	stored := string(hashed)

	user := &entity.UserAuth{
		ID:       id,
		Email:    email,
		FullName: "Password User",
		Role:     entity.RoleUser,
		Password: &stored,
	}
	f.db.users[email] = user
	f.db.profiles[id] = &entity.User{ID: id, Email: email, FullName: user.FullName, Role: user.Role}

	return user
}

func (f *fixture) addOTPUser(t *testing.T, id int64, email, code string) *entity.UserAuth {
	t.Helper()

	hashed, err := f.hmac.Hash(code)
	if err != nil {
		t.Fatalf("failed to hash otp: %v", err)
	}
	stored := string(hashed)
	expiresAt := f.clock.Now().Add(10 * time.Minute)

	user := &entity.UserAuth{
		ID:           id,
		Email:        email,
		FullName:     "OTP User",
		Role:         entity.RoleUser,
		UseOTP:       true,
		OTPCode:      &stored,
		OTPExpiresAt: &expiresAt,
	}
	f.db.users[email] = user
	f.db.profiles[id] = &entity.User{ID: id, Email: email, FullName: user.FullName, Role: user.Role, UseOTP: true}

	return user
}

func authCtx(id int64, role string, temp bool) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: id, Role: role, Temp: temp})
}

func asAppError(t *testing.T, err error) *goerror.Error {
	t.Helper()

	var appErr *goerror.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected application error, got %v", err)
	}

	return appErr
}
