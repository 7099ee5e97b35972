package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/validation"
)

func tokenFromMail(t *testing.T, msg Message) string {
	t.Helper()
	const prefix = "http://localhost:8090/restablecer/"
	for _, line := range strings.Split(msg.Text, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix)
		}
	}
	t.Fatalf("no reset link in %q", msg.Text)
	return ""
}

func TestRequestReset_SameOutcomeForUnknownEmail(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "ana", "ana@test.com", "secret1", "")

	err := f.reset.RequestReset(context.Background(), "ana@test.com")
	require.NoError(t, err)
	err = f.reset.RequestReset(context.Background(), "nadie@test.com")
	require.NoError(t, err)
	err = f.reset.RequestReset(context.Background(), "no-es-un-correo")
	require.NoError(t, err)

	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ana@test.com", sent[0].To)
	assert.Contains(t, sent[0].Subject, "Innova y Emprende")
	assert.NotEmpty(t, tokenFromMail(t, sent[0]))
}

func TestRequestReset_NormalizesEmail(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "ana", "ana@test.com", "secret1", "")

	require.NoError(t, f.reset.RequestReset(context.Background(), "  ANA@test.com "))
	assert.Len(t, f.mailer.Sent(), 1)
}

func TestRequestReset_MailFailureIsHidden(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "ana", "ana@test.com", "secret1", "")
	f.mailer.err = errors.New("smtp: 421 service not available")

	err := f.reset.RequestReset(context.Background(), "ana@test.com")
	assert.NoError(t, err)
}

// gatedMailer holds every send until release is closed.
type gatedMailer struct {
	release chan struct{}
	fakeMailer
}

func (m *gatedMailer) Send(ctx context.Context, msg Message) error {
	<-m.release
	return m.fakeMailer.Send(ctx, msg)
}

func TestRequestReset_DoesNotWaitForDelivery(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "ana", "ana@test.com", "secret1", "")

	mailer := &gatedMailer{release: make(chan struct{})}
	reset := NewResetService(f.users, nil, f.auth,
		NewEmailService(mailer, "Innova", 5*time.Second),
		NewTokenSigner(testSecret, "recuperar-salt", time.Hour, f.clock.Now), "http://localhost:8090", false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reset.RequestReset(ctx, "ana@test.com") }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("RequestReset blocked on the mailer")
	}
	assert.Empty(t, mailer.Sent())

	// the request is over but the email still goes out
	cancel()
	close(mailer.release)
	reset.Wait()

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ana@test.com", sent[0].To)
}

func TestRequestReset_StorageDown(t *testing.T) {
	repo := &countingUserRepository{err: errDown}
	mailer := &fakeMailer{}
	reset := NewResetService(repo, nil, NewAuthService(repo, testSecret, false, time.Hour),
		NewEmailService(mailer, "Innova", time.Second),
		NewTokenSigner(testSecret, "recuperar-salt", time.Hour, nil), "http://x", false)

	err := reset.RequestReset(context.Background(), "ana@test.com")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, mailer.Sent())
}

func TestConsumeReset_ChangesPassword(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "ana", "ana@test.com", "secret1", "")
	require.NoError(t, f.reset.RequestReset(context.Background(), "ana@test.com"))
	token := tokenFromMail(t, f.mailer.Sent()[0])

	email, err := f.reset.CheckReset(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@test.com", email)

	require.NoError(t, f.reset.ConsumeReset(token, "secret2"))

	_, err = f.auth.Authenticate("ana@test.com", "secret2")
	assert.NoError(t, err)
	_, err = f.auth.Authenticate("ana@test.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestConsumeReset_ExpiredTokenChangesNothing(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "ana", "ana@test.com", "secret1", "")
	require.NoError(t, f.reset.RequestReset(context.Background(), "ana@test.com"))
	token := tokenFromMail(t, f.mailer.Sent()[0])

	f.clock.Set(f.clock.Now().Add(3601 * time.Second))

	_, err := f.reset.CheckReset(token)
	assert.ErrorIs(t, err, ErrInvalidResetToken)
	err = f.reset.ConsumeReset(token, "secret2")
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	_, err = f.auth.Authenticate("ana@test.com", "secret1")
	assert.NoError(t, err)
}

func TestConsumeReset_ShortPasswordChangesNothing(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "ana", "ana@test.com", "secret1", "")
	require.NoError(t, f.reset.RequestReset(context.Background(), "ana@test.com"))
	token := tokenFromMail(t, f.mailer.Sent()[0])

	err := f.reset.ConsumeReset(token, "123")
	assert.ErrorIs(t, err, validation.ErrInvalid)

	_, err = f.auth.Authenticate("ana@test.com", "secret1")
	assert.NoError(t, err)
}

func TestConsumeReset_ReplayAllowedByDefault(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "ana", "ana@test.com", "secret1", "")
	require.NoError(t, f.reset.RequestReset(context.Background(), "ana@test.com"))
	token := tokenFromMail(t, f.mailer.Sent()[0])

	require.NoError(t, f.reset.ConsumeReset(token, "secret2"))
	require.NoError(t, f.reset.ConsumeReset(token, "secret3"))

	_, err := f.auth.Authenticate("ana@test.com", "secret3")
	assert.NoError(t, err)
}

func TestConsumeReset_SingleUse(t *testing.T) {
	f := newFixture(t, true)
	f.register(t, "ana", "ana@test.com", "secret1", "")
	require.NoError(t, f.reset.RequestReset(context.Background(), "ana@test.com"))
	token := tokenFromMail(t, f.mailer.Sent()[0])

	require.NoError(t, f.reset.ConsumeReset(token, "secret2"))

	err := f.reset.ConsumeReset(token, "secret3")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
	_, err = f.reset.CheckReset(token)
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	_, err = f.auth.Authenticate("ana@test.com", "secret2")
	assert.NoError(t, err)
}

func TestConsumeReset_DeletedUser(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "ana", "ana@test.com", "secret1", "")
	require.NoError(t, f.reset.RequestReset(context.Background(), "ana@test.com"))
	token := tokenFromMail(t, f.mailer.Sent()[0])

	_, err := f.db.Exec(`DELETE FROM usuarios WHERE correo = $1`, "ana@test.com")
	require.NoError(t, err)

	err = f.reset.ConsumeReset(token, "secret2")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}
