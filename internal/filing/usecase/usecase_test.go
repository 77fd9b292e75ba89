package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/comfinserv/taxdesk/internal/filing/entity"
	"github.com/comfinserv/taxdesk/internal/pkg/config"
	"github.com/comfinserv/taxdesk/internal/pkg/goerror"
	"github.com/comfinserv/taxdesk/internal/pkg/instrument"
	"github.com/comfinserv/taxdesk/internal/pkg/jwt"
	"github.com/comfinserv/taxdesk/internal/pkg/storage"
	"github.com/comfinserv/taxdesk/internal/pkg/uid"
	"github.com/comfinserv/taxdesk/internal/pkg/validator"
)

const testConfigYAML = `
modules:
  filing:
    document_bucket: taxdesk-test
    max_document_size_bytes: 1024
    download_url_ttl_minutes: 15
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

type fakeMessaging struct {
	submitted []FormSubmittedEvent
	changed   []FormStatusChangedEvent
}

func (f *fakeMessaging) PublishFormSubmitted(_ context.Context, msg FormSubmittedEvent) error {
	f.submitted = append(f.submitted, msg)
	return nil
}

func (f *fakeMessaging) PublishFormStatusChanged(_ context.Context, msg FormStatusChangedEvent) error {
	f.changed = append(f.changed, msg)
	return nil
}

type storedObject struct {
	bucket      string
	key         string
	body        []byte
	contentType string
	metadata    map[string]string
}

// fakeStorage keeps uploaded objects in memory and presigns deterministic
// URLs so tests can assert on the exact values.
type fakeStorage struct {
	objects []storedObject
	putErr  error
}

func (f *fakeStorage) PutObject(_ context.Context, bucket, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	if f.putErr != nil {
		return storage.ObjectInfo{}, f.putErr
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}

	f.objects = append(f.objects, storedObject{
		bucket:      bucket,
		key:         key,
		body:        body,
		contentType: opts.ContentType,
		metadata:    opts.Metadata,
	})

	return storage.ObjectInfo{Bucket: bucket, Key: key, Size: int64(len(body)), ContentType: opts.ContentType}, nil
}

func (f *fakeStorage) GetObject(_ context.Context, _, _ string, _ storage.GetOptions) (io.ReadCloser, storage.ObjectInfo, error) {
	return nil, storage.ObjectInfo{}, goerror.ErrNotFound
}

func (f *fakeStorage) StatObject(_ context.Context, _, _ string) (storage.ObjectInfo, error) {
	return storage.ObjectInfo{}, goerror.ErrNotFound
}

func (f *fakeStorage) DeleteObject(_ context.Context, _, _ string) error {
	return nil
}

func (f *fakeStorage) ListObjects(_ context.Context, _, _ string, _ storage.ListOptions) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (f *fakeStorage) PresignGet(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + bucket + "/" + key, nil
}

func (f *fakeStorage) PresignPut(_ context.Context, _, _ string, _ storage.PutOptions, _ time.Duration) (string, error) {
	return "", storage.ErrMissingSigner
}

func (f *fakeStorage) Close() error {
	return nil
}

type fakeRepoDB struct {
	forms     map[int64]*entity.TaxForm
	documents map[int64]*entity.Document

	created       []entity.NewTaxForm
	createErr     error
	statusUpdates map[int64]entity.FormStatus
	lastFilter    entity.FormFilter
	listResult    []entity.TaxForm
	listTotal     int64
	counts        entity.StatusCounts
	contactCount  int64
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		forms:         make(map[int64]*entity.TaxForm),
		documents:     make(map[int64]*entity.Document),
		statusUpdates: make(map[int64]entity.FormStatus),
	}
}

func (f *fakeRepoDB) CreateForm(_ context.Context, in entity.NewTaxForm) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, in)
	return nil
}

func (f *fakeRepoDB) GetFormByID(_ context.Context, id int64) (*entity.TaxForm, error) {
	form, ok := f.forms[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return form, nil
}

func (f *fakeRepoDB) GetDocumentByID(_ context.Context, formID, docID int64) (*entity.Document, error) {
	doc, ok := f.documents[docID]
	if !ok || doc.FormID != formID {
		return nil, goerror.ErrNotFound
	}
	return doc, nil
}

func (f *fakeRepoDB) ListFormsByUser(_ context.Context, userID int64) ([]entity.TaxForm, error) {
	var forms []entity.TaxForm
	for _, form := range f.forms {
		if form.UserID != nil && *form.UserID == userID {
			forms = append(forms, *form)
		}
	}
	return forms, nil
}

func (f *fakeRepoDB) ListForms(_ context.Context, filter entity.FormFilter) ([]entity.TaxForm, int64, error) {
	f.lastFilter = filter
	return f.listResult, f.listTotal, nil
}

func (f *fakeRepoDB) ListRecentForms(_ context.Context, limit int32) ([]entity.TaxForm, error) {
	if int32(len(f.listResult)) > limit {
		return f.listResult[:limit], nil
	}
	return f.listResult, nil
}

func (f *fakeRepoDB) UpdateFormStatus(_ context.Context, id int64, status entity.FormStatus) error {
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeRepoDB) CountFormsByStatus(_ context.Context) (*entity.StatusCounts, error) {
	counts := f.counts
	return &counts, nil
}

func (f *fakeRepoDB) CountContacts(_ context.Context) (int64, error) {
	return f.contactCount, nil
}

type fixture struct {
	uc      *Usecase
	db      *fakeRepoDB
	mq      *fakeMessaging
	storage *fakeStorage
	clock   *fixedClock
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
	store := &fakeStorage{}
	clk := &fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}

	uc := New(Dependency{
		RepoDB:        db,
		RepoMessaging: mq,
		Validator:     v10,
		Config:        cfg,
		Storage:       store,
		UID:           snowflake,
		Clock:         clk,
		Instrument:    instrument.NewNoop(),
		Enforcer:      enforcer,
	})

	return &fixture{uc: uc, db: db, mq: mq, storage: store, clock: clk}
}

func validSubmitInput() SubmitInput {
	return SubmitInput{
		FullName: "Asha Verma",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		PAN:      "ABCDE1234F",
		Documents: []DocumentUpload{
			{
				Type:         entity.DocumentForm16,
				File:         bytes.NewReader([]byte("form16 bytes")),
				OriginalName: "form16.pdf",
				Size:         12,
				ContentType:  "application/pdf",
			},
		},
	}
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
