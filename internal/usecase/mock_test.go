//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"interpreter-booking/internal/domain"
	"interpreter-booking/internal/domain/model"
	"interpreter-booking/internal/domain/ports/adapter"
	"interpreter-booking/internal/domain/ports/repository"
	"interpreter-booking/internal/infra/i18n"
	"interpreter-booking/internal/usecase"
)

// -----------------------------
// Utilities: tiny helpers
// -----------------------------

// fakeClock is a settable adapter.Clock so due-time and night-window
// decisions are deterministic in tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// newTestLogger creates a silent zerolog.Logger for use in tests.
// It writes to io.Discard to prevent logs from cluttering test output.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

func contains[T comparable](xs []T, v T) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// =============================
// Repositories
// =============================

// ---- Mock JobRepository ----

type MockJobRepo struct {
	mu   sync.Mutex
	data map[string]*model.Job

	SaveFunc            func(ctx context.Context, tx repository.Tx, job *model.Job) error
	FindByIDFunc        func(ctx context.Context, tx repository.Tx, id string) (*model.Job, error)
	QueryFunc           func(ctx context.Context, tx repository.Tx, f repository.JobFilter) ([]*model.Job, error)
	AtomicSetStatusFunc func(ctx context.Context, tx repository.Tx, id string, expectedOld, new model.JobStatus) (bool, error)
}

var _ repository.JobRepository = (*MockJobRepo)(nil)

func NewMockJobRepo() *MockJobRepo {
	return &MockJobRepo{data: map[string]*model.Job{}}
}

func (r *MockJobRepo) Save(ctx context.Context, tx repository.Tx, job *model.Job) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, tx, job)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	cp := *job
	r.data[job.ID] = &cp
	return nil
}

func (r *MockJobRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Job, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.data[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

// Query implements the filter subset unit tests exercise; anything fancier
// goes through QueryFunc.
func (r *MockJobRepo) Query(ctx context.Context, tx repository.Tx, f repository.JobFilter) ([]*model.Job, error) {
	if r.QueryFunc != nil {
		return r.QueryFunc(ctx, tx, f)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Job
	for _, j := range r.data {
		if len(f.Statuses) > 0 && !contains(f.Statuses, j.Status) {
			continue
		}
		if len(f.JobTypes) > 0 && !contains(f.JobTypes, j.JobType) {
			continue
		}
		if len(f.LanguageIDs) > 0 && !contains(f.LanguageIDs, j.FromLanguageID) {
			continue
		}
		if len(f.CustomerIDs) > 0 && !contains(f.CustomerIDs, j.UserID) {
			continue
		}
		if f.ExpiredPendingAsOf != nil {
			if j.Status != model.JobStatusPending || j.WillExpireAt == nil ||
				j.WillExpireAt.After(*f.ExpiredPendingAsOf) || j.Flags.IgnoreExpired {
				continue
			}
		}
		cp := *j
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MockJobRepo) AtomicSetStatus(ctx context.Context, tx repository.Tx, id string, expectedOld, new model.JobStatus) (bool, error) {
	if r.AtomicSetStatusFunc != nil {
		return r.AtomicSetStatusFunc(ctx, tx, id, expectedOld, new)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.data[id]
	if !ok || j.Status != expectedOld {
		return false, nil
	}
	j.Status = new
	return true, nil
}

// Get returns the stored row for assertions.
func (r *MockJobRepo) Get(id string) *model.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.data[id]; ok {
		cp := *j
		return &cp
	}
	return nil
}

// ---- Mock AssignmentRepository ----

type MockAssignmentRepo struct {
	mu   sync.Mutex
	data map[string]*model.TranslatorAssignment

	CreateFunc          func(ctx context.Context, tx repository.Tx, a *model.TranslatorAssignment) error
	CloseFunc           func(ctx context.Context, tx repository.Tx, id string, c repository.AssignmentClose) error
	FindActiveByJobFunc func(ctx context.Context, tx repository.Tx, jobID string) (*model.TranslatorAssignment, error)
	FindByJobFunc       func(ctx context.Context, tx repository.Tx, jobID string) ([]*model.TranslatorAssignment, error)
	HasOverlappingFunc  func(ctx context.Context, tx repository.Tx, translatorID string, due time.Time) (bool, error)
	WasAssignedFunc     func(ctx context.Context, tx repository.Tx, translatorID, jobID string) (bool, error)
}

var _ repository.AssignmentRepository = (*MockAssignmentRepo)(nil)

func NewMockAssignmentRepo() *MockAssignmentRepo {
	return &MockAssignmentRepo{data: map[string]*model.TranslatorAssignment{}}
}

func (r *MockAssignmentRepo) Create(ctx context.Context, tx repository.Tx, a *model.TranslatorAssignment) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, tx, a)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	cp := *a
	r.data[a.ID] = &cp
	return nil
}

func (r *MockAssignmentRepo) Close(ctx context.Context, tx repository.Tx, id string, c repository.AssignmentClose) error {
	if r.CloseFunc != nil {
		return r.CloseFunc(ctx, tx, id, c)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.data[id]
	if !ok {
		return domain.ErrNotFound
	}
	if c.CancelAt != nil {
		a.CancelAt = c.CancelAt
	}
	if c.CompletedAt != nil {
		a.CompletedAt = c.CompletedAt
	}
	if c.CompletedBy != "" {
		a.CompletedBy = c.CompletedBy
	}
	return nil
}

func (r *MockAssignmentRepo) FindActiveByJob(ctx context.Context, tx repository.Tx, jobID string) (*model.TranslatorAssignment, error) {
	if r.FindActiveByJobFunc != nil {
		return r.FindActiveByJobFunc(ctx, tx, jobID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.data {
		if a.JobID == jobID && a.Open() {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MockAssignmentRepo) FindByJob(ctx context.Context, tx repository.Tx, jobID string) ([]*model.TranslatorAssignment, error) {
	if r.FindByJobFunc != nil {
		return r.FindByJobFunc(ctx, tx, jobID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.TranslatorAssignment
	for _, a := range r.data {
		if a.JobID == jobID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockAssignmentRepo) HasOverlapping(ctx context.Context, tx repository.Tx, translatorID string, due time.Time) (bool, error) {
	if r.HasOverlappingFunc != nil {
		return r.HasOverlappingFunc(ctx, tx, translatorID, due)
	}
	return false, nil
}

func (r *MockAssignmentRepo) WasAssigned(ctx context.Context, tx repository.Tx, translatorID, jobID string) (bool, error) {
	if r.WasAssignedFunc != nil {
		return r.WasAssignedFunc(ctx, tx, translatorID, jobID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.data {
		if a.JobID == jobID && a.UserID == translatorID {
			return true, nil
		}
	}
	return false, nil
}

// Get returns the stored row for assertions.
func (r *MockAssignmentRepo) Get(id string) *model.TranslatorAssignment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.data[id]; ok {
		cp := *a
		return &cp
	}
	return nil
}

// ---- Mock UserRepository ----

type MockUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*model.User
	byEmail map[string]*model.User
	meta    map[string]*model.UserMeta
	langs   map[string][]string

	FindByIDFunc               func(ctx context.Context, tx repository.Tx, id string) (*model.User, error)
	FindByEmailFunc            func(ctx context.Context, tx repository.Tx, email string) (*model.User, error)
	FindMetaFunc               func(ctx context.Context, tx repository.Tx, userID string) (*model.UserMeta, error)
	ListEnabledTranslatorsFunc func(ctx context.Context, tx repository.Tx, excludeUserID string) ([]*model.User, error)
	LanguageIDsFunc            func(ctx context.Context, tx repository.Tx, userID string) ([]string, error)
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{
		byID:    map[string]*model.User{},
		byEmail: map[string]*model.User{},
		meta:    map[string]*model.UserMeta{},
		langs:   map[string][]string{},
	}
}

// Add seeds a user together with its profile attributes.
func (r *MockUserRepo) Add(u *model.User, meta *model.UserMeta, languageIDs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	if meta != nil {
		mc := *meta
		mc.UserID = u.ID
		r.meta[u.ID] = &mc
	}
	r.langs[u.ID] = languageIDs
}

func (r *MockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *MockUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	if r.FindByEmailFunc != nil {
		return r.FindByEmailFunc(ctx, tx, email)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *MockUserRepo) FindMeta(ctx context.Context, tx repository.Tx, userID string) (*model.UserMeta, error) {
	if r.FindMetaFunc != nil {
		return r.FindMetaFunc(ctx, tx, userID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.meta[userID]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *MockUserRepo) ListEnabledTranslators(ctx context.Context, tx repository.Tx, excludeUserID string) ([]*model.User, error) {
	if r.ListEnabledTranslatorsFunc != nil {
		return r.ListEnabledTranslatorsFunc(ctx, tx, excludeUserID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.User
	for _, u := range r.byID {
		if u.Role == model.RoleTranslator && u.Enabled && u.ID != excludeUserID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockUserRepo) LanguageIDs(ctx context.Context, tx repository.Tx, userID string) ([]string, error) {
	if r.LanguageIDsFunc != nil {
		return r.LanguageIDsFunc(ctx, tx, userID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.langs[userID], nil
}

// ---- Mock LanguageRepository ----

type MockLanguageRepo struct {
	mu   sync.Mutex
	data map[string]*model.Language

	FindByIDFunc   func(ctx context.Context, tx repository.Tx, id string) (*model.Language, error)
	ListActiveFunc func(ctx context.Context, tx repository.Tx) ([]*model.Language, error)
}

var _ repository.LanguageRepository = (*MockLanguageRepo)(nil)

func NewMockLanguageRepo() *MockLanguageRepo {
	return &MockLanguageRepo{data: map[string]*model.Language{}}
}

func (r *MockLanguageRepo) Add(l *model.Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.data[l.ID] = &cp
}

func (r *MockLanguageRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Language, error) {
	if r.FindByIDFunc != nil {
		return r.FindByIDFunc(ctx, tx, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.data[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *MockLanguageRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Language, error) {
	if r.ListActiveFunc != nil {
		return r.ListActiveFunc(ctx, tx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Language
	for _, l := range r.data {
		if l.Active {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- Mock BlacklistRepository ----

type MockBlacklistRepo struct {
	mu      sync.Mutex
	entries map[string][]string // customer -> translator ids

	TranslatorIDsFunc func(ctx context.Context, tx repository.Tx, customerID string) ([]string, error)
}

var _ repository.BlacklistRepository = (*MockBlacklistRepo)(nil)

func NewMockBlacklistRepo() *MockBlacklistRepo {
	return &MockBlacklistRepo{entries: map[string][]string{}}
}

func (r *MockBlacklistRepo) Block(customerID, translatorID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[customerID] = append(r.entries[customerID], translatorID)
}

func (r *MockBlacklistRepo) TranslatorIDs(ctx context.Context, tx repository.Tx, customerID string) ([]string, error) {
	if r.TranslatorIDsFunc != nil {
		return r.TranslatorIDsFunc(ctx, tx, customerID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[customerID], nil
}

// ---- Mock AuditLogRepository ----

type auditAppend struct {
	ActorID string
	JobID   string
	Entries []model.AuditEntry
}

type MockAuditRepo struct {
	mu      sync.Mutex
	Appends []auditAppend

	AppendFunc func(ctx context.Context, tx repository.Tx, actorID, jobID string, entries []model.AuditEntry) error
}

var _ repository.AuditLogRepository = (*MockAuditRepo)(nil)

func NewMockAuditRepo() *MockAuditRepo { return &MockAuditRepo{} }

func (r *MockAuditRepo) Append(ctx context.Context, tx repository.Tx, actorID, jobID string, entries []model.AuditEntry) error {
	if r.AppendFunc != nil {
		return r.AppendFunc(ctx, tx, actorID, jobID, entries)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Appends = append(r.Appends, auditAppend{ActorID: actorID, JobID: jobID, Entries: entries})
	return nil
}

// =============================
// Infra helpers for tests
// =============================

// ---- Mock TransactionManager ----

type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

// WithTx runs the function immediately with NoTX unless a test installs
// custom transaction behavior via WithTxFunc.
func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, repository.NoTX)
}

// ---- In-memory Locker ----

type MockLocker struct {
	mu    sync.Mutex
	held  map[string]string
	ErrOn map[string]error
}

var _ adapter.Locker = (*MockLocker)(nil)

func NewMockLocker() *MockLocker {
	return &MockLocker{held: map[string]string{}, ErrOn: map[string]error{}}
}

func (l *MockLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err, bad := l.ErrOn[key]; bad {
		return "", err
	}
	if tok, ok := l.held[key]; ok && tok != "" {
		return "", domain.ErrLockBusy
	}
	tok := uuid.NewString()
	l.held[key] = tok
	return tok, nil
}

func (l *MockLocker) Unlock(ctx context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == token {
		delete(l.held, key)
		return nil
	}
	return domain.ErrLockBusy
}

// =============================
// Adapters
// =============================

// ---- Mock Mailer ----

type mailRecord struct {
	To       string
	Name     string
	Subject  string
	Template adapter.MailTemplate
	Payload  map[string]any
}

type MockMailer struct {
	mu   sync.Mutex
	Sent []mailRecord

	SendFunc func(ctx context.Context, toEmail, toName, subject string, template adapter.MailTemplate, payload map[string]any) error
}

var _ adapter.Mailer = (*MockMailer)(nil)

func (m *MockMailer) Send(ctx context.Context, toEmail, toName, subject string, template adapter.MailTemplate, payload map[string]any) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, toEmail, toName, subject, template, payload)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, mailRecord{To: toEmail, Name: toName, Subject: subject, Template: template, Payload: payload})
	return nil
}

func (m *MockMailer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// ---- Mock PushGateway ----

type MockPushGateway struct {
	mu        sync.Mutex
	Delivered []adapter.PushNotification

	DeliverFunc func(ctx context.Context, n adapter.PushNotification) error
}

var _ adapter.PushGateway = (*MockPushGateway)(nil)

func (g *MockPushGateway) Deliver(ctx context.Context, n adapter.PushNotification) error {
	if g.DeliverFunc != nil {
		return g.DeliverFunc(ctx, n)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Delivered = append(g.Delivered, n)
	return nil
}

func (g *MockPushGateway) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Delivered)
}

// ---- Mock SMSGateway ----

type smsRecord struct {
	Number  string
	Message string
}

type MockSMSGateway struct {
	mu   sync.Mutex
	Sent []smsRecord

	SendFunc func(ctx context.Context, number, message string) (adapter.SMSDeliveryStatus, error)
}

var _ adapter.SMSGateway = (*MockSMSGateway)(nil)

func (g *MockSMSGateway) Send(ctx context.Context, number, message string) (adapter.SMSDeliveryStatus, error) {
	if g.SendFunc != nil {
		return g.SendFunc(ctx, number, message)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Sent = append(g.Sent, smsRecord{Number: number, Message: message})
	return adapter.SMSDelivered, nil
}

// ---- Mock EventBus ----

type MockEventBus struct {
	mu     sync.Mutex
	Events []adapter.Event

	PublishFunc func(ctx context.Context, e adapter.Event) error
}

var _ adapter.EventBus = (*MockEventBus)(nil)

func (b *MockEventBus) Publish(ctx context.Context, e adapter.Event) error {
	if b.PublishFunc != nil {
		return b.PublishFunc(ctx, e)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Events = append(b.Events, e)
	return nil
}

func (b *MockEventBus) Kinds() []adapter.EventKind {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]adapter.EventKind, len(b.Events))
	for i, e := range b.Events {
		out[i] = e.Kind
	}
	return out
}

// =============================
// Fixture
// =============================

// fixture wires the orchestrator against mocks the way main does against
// real infrastructure.
type fixture struct {
	jobs    *MockJobRepo
	asg     *MockAssignmentRepo
	users   *MockUserRepo
	langs   *MockLanguageRepo
	black   *MockBlacklistRepo
	audit   *MockAuditRepo
	txm     *MockTxManager
	locker  *MockLocker
	mailer  *MockMailer
	push    *MockPushGateway
	sms     *MockSMSGateway
	bus     *MockEventBus
	clock   *fakeClock
	catalog *i18n.Catalog

	notifier *usecase.NotificationPolicy
	filter   *usecase.EligibilityFilter
	machine  *usecase.StateMachine
	manager  *usecase.AssignmentManager
	uc       *usecase.BookingOrchestrator
}

func newFixture(t0 time.Time) *fixture {
	f := &fixture{
		jobs:    NewMockJobRepo(),
		asg:     NewMockAssignmentRepo(),
		users:   NewMockUserRepo(),
		langs:   NewMockLanguageRepo(),
		black:   NewMockBlacklistRepo(),
		audit:   NewMockAuditRepo(),
		txm:     NewMockTxManager(),
		locker:  NewMockLocker(),
		mailer:  &MockMailer{},
		push:    &MockPushGateway{},
		sms:     &MockSMSGateway{},
		bus:     &MockEventBus{},
		clock:   newFakeClock(t0),
		catalog: i18n.MustDefault(),
	}
	log := newTestLogger()
	night := usecase.NightWindow{Start: 22 * time.Hour, End: 9 * time.Hour}

	f.notifier = usecase.NewNotificationPolicy(
		f.mailer, f.push, f.sms, f.users, f.langs,
		f.catalog, f.clock, night, 10*time.Minute, log,
	)
	f.filter = usecase.NewEligibilityFilter(f.users, f.black, f.asg, log)
	f.machine = usecase.NewStateMachine(f.users, f.asg, f.notifier, f.filter, f.clock, log)
	f.manager = usecase.NewAssignmentManager(f.users, f.asg, f.langs, f.clock, log)
	f.uc = usecase.NewBookingOrchestrator(
		f.jobs, f.asg, f.users, f.langs, f.audit, f.txm,
		f.machine, f.manager, f.filter, f.notifier,
		f.bus, f.locker, f.clock, f.catalog,
		5*time.Minute, log,
	)
	return f
}

// seedCustomer registers a customer account with a default profile.
func (f *fixture) seedCustomer(id string) *model.User {
	u := &model.User{ID: id, Name: "Kund " + id, Email: id + "@customer.test", Role: model.RoleCustomer, Enabled: true}
	f.users.Add(u, &model.UserMeta{ConsumerType: "paid", City: "Stockholm"})
	return u
}

// seedTranslator registers an enabled professional translator speaking the
// given languages.
func (f *fixture) seedTranslator(id string, languageIDs ...string) *model.User {
	u := &model.User{ID: id, Name: "Tolk " + id, Email: id + "@translator.test", Mobile: "+4670000" + id, Role: model.RoleTranslator, Enabled: true}
	f.users.Add(u, &model.UserMeta{
		TranslatorType:  model.TranslatorProfessional,
		TranslatorLevel: model.LevelCertified,
		Gender:          model.GenderFemale,
		City:            "Stockholm",
	}, languageIDs...)
	return u
}
