package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/db/dbtest"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/repository"
)

const testSecret = "test-secret"

// fakeMailer records every message it is asked to send. Sent first waits
// for the background sends of the reset service it is wired to.
type fakeMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
	wait func()
}

func (m *fakeMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) Sent() []Message {
	if m.wait != nil {
		m.wait()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}

// countingUserRepository fails every call and counts them.
type countingUserRepository struct {
	calls int
	err   error
}

func (r *countingUserRepository) Create(*model.User) error {
	r.calls++
	return r.err
}

func (r *countingUserRepository) ByID(string) (*model.User, error) {
	r.calls++
	return nil, r.err
}

func (r *countingUserRepository) ByEmail(string) (*model.User, error) {
	r.calls++
	return nil, r.err
}

func (r *countingUserRepository) ResetPassword(string, string, *model.RedeemedToken) error {
	r.calls++
	return r.err
}

var errDown = errors.New("connection refused")

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock(t time.Time) *clock {
	return &clock{now: t}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type fixture struct {
	db        *sqlx.DB
	users     repository.UserRepository
	auth      *AuthService
	reset     *ResetService
	mailer    *fakeMailer
	clock     *clock
	catalog   *CatalogService
	purchases *PurchaseService
}

func newFixture(t *testing.T, singleUse bool) *fixture {
	t.Helper()

	database := dbtest.New(t)
	users := repository.NewUserRepository(database)
	tokens := repository.NewTokenRepository(database)

	f := &fixture{
		db:     database,
		users:  users,
		mailer: &fakeMailer{},
		clock:  newClock(time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)),
	}

	f.auth = NewAuthService(users, testSecret, false, time.Hour)
	signer := NewTokenSigner(testSecret, "recuperar-salt", 3600*time.Second, f.clock.Now)
	email := NewEmailService(f.mailer, "Innova y Emprende", time.Second)
	f.reset = NewResetService(users, tokens, f.auth, email, signer, "http://localhost:8090/", singleUse)
	f.mailer.wait = f.reset.Wait
	t.Cleanup(f.reset.Wait)
	f.catalog = NewCatalogService(
		repository.NewCourseRepository(database),
		repository.NewLessonRepository(database),
		NewImageService(nil),
		"/static/img/curso-default.svg",
	)
	f.purchases = NewPurchaseService(
		repository.NewPurchaseRepository(database),
		repository.NewPaymentMethodRepository(database),
	)
	return f
}

func (f *fixture) register(t *testing.T, handle, email, password, role string) *model.User {
	t.Helper()
	user, err := f.auth.Register(RegisterInput{
		Name:     "Ana",
		Surname:  "Pérez",
		Handle:   handle,
		Email:    email,
		Password: password,
		Role:     role,
	})
	require.NoError(t, err, email)
	return user
}
