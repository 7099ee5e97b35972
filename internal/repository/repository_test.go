package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/db/dbtest"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlx.NewDb(sqlDB, "sqlmock"), mock
}

func newUser(handle, email, role string) *model.User {
	return &model.User{
		ID:           uuid.New().String(),
		Name:         "Ana",
		Surname:      "Pérez",
		Handle:       handle,
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestUniqueViolation(t *testing.T) {
	constraint, ok := uniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: usuarios.correo (2067)"))
	assert.True(t, ok)
	assert.Contains(t, constraint, "usuarios.correo")

	constraint, ok = uniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "usuarios_usuario_key"})
	assert.True(t, ok)
	assert.Equal(t, "usuarios_usuario_key", constraint)

	_, ok = uniqueViolation(errors.New("connection refused"))
	assert.False(t, ok)
}

func TestTranslateUserConflict(t *testing.T) {
	assert.ErrorIs(t, translateUserConflict(errors.New("UNIQUE constraint failed: usuarios.correo")), ErrDuplicateEmail)
	assert.ErrorIs(t, translateUserConflict(errors.New("UNIQUE constraint failed: usuarios.usuario")), ErrDuplicateHandle)
	assert.ErrorIs(t, translateUserConflict(&pgconn.PgError{Code: "23505", ConstraintName: "usuarios_correo_key"}), ErrDuplicateEmail)
	assert.ErrorIs(t, translateUserConflict(&pgconn.PgError{Code: "23505", ConstraintName: "usuarios_usuario_key"}), ErrDuplicateHandle)

	other := errors.New("disk I/O error")
	assert.Equal(t, other, translateUserConflict(other))
}

func TestForeignKeyViolation(t *testing.T) {
	assert.True(t, foreignKeyViolation(errors.New("FOREIGN KEY constraint failed (787)")))
	assert.True(t, foreignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, foreignKeyViolation(errors.New("timeout")))
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	repo := NewUserRepository(dbtest.New(t))

	user := newUser("ana", "ana@example.com", model.RoleInstructor)
	require.NoError(t, repo.Create(user))

	got, err := repo.ByEmail("ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "Ana Pérez", got.FullName())
	assert.True(t, got.IsInstructor())

	got, err = repo.ByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Handle)

	_, err = repo.ByEmail("nadie@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.ByID(uuid.New().String())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_CreateDuplicates(t *testing.T) {
	database := dbtest.New(t)
	repo := NewUserRepository(database)

	require.NoError(t, repo.Create(newUser("ana", "ana@example.com", model.RoleStudent)))

	err := repo.Create(newUser("otra", "ana@example.com", model.RoleStudent))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	err = repo.Create(newUser("ana", "otra@example.com", model.RoleStudent))
	assert.ErrorIs(t, err, ErrDuplicateHandle)

	var count int
	require.NoError(t, database.Get(&count, `SELECT COUNT(*) FROM usuarios`))
	assert.Equal(t, 1, count)
}

func TestUserRepository_ResetPassword(t *testing.T) {
	repo := NewUserRepository(dbtest.New(t))
	require.NoError(t, repo.Create(newUser("ana", "ana@example.com", model.RoleStudent)))

	require.NoError(t, repo.ResetPassword("ana@example.com", "nuevo", nil))
	got, err := repo.ByEmail("ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "nuevo", got.PasswordHash)

	err = repo.ResetPassword("nadie@example.com", "x", nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_ResetPasswordSingleUse(t *testing.T) {
	database := dbtest.New(t)
	repo := NewUserRepository(database)
	tokens := NewTokenRepository(database)
	require.NoError(t, repo.Create(newUser("ana", "ana@example.com", model.RoleStudent)))

	expires := time.Now().UTC().Add(time.Hour)
	first := &model.RedeemedToken{TokenID: "tok-1", Email: "ana@example.com", ExpiresAt: expires}
	require.NoError(t, repo.ResetPassword("ana@example.com", "primero", first))

	used, err := tokens.IsRedeemed("tok-1")
	require.NoError(t, err)
	assert.True(t, used)

	replay := &model.RedeemedToken{TokenID: "tok-1", Email: "ana@example.com", ExpiresAt: expires}
	err = repo.ResetPassword("ana@example.com", "segundo", replay)
	assert.ErrorIs(t, err, ErrTokenAlreadyUsed)

	got, err := repo.ByEmail("ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "primero", got.PasswordHash)
}

func TestUserRepository_ResetPasswordUnknownEmailKeepsTokenUnused(t *testing.T) {
	database := dbtest.New(t)
	repo := NewUserRepository(database)
	tokens := NewTokenRepository(database)

	redemption := &model.RedeemedToken{TokenID: "tok-2", Email: "nadie@example.com", ExpiresAt: time.Now().UTC().Add(time.Hour)}
	err := repo.ResetPassword("nadie@example.com", "x", redemption)
	assert.ErrorIs(t, err, ErrUserNotFound)

	used, err := tokens.IsRedeemed("tok-2")
	require.NoError(t, err)
	assert.False(t, used)
}

func TestUserRepository_ResetPasswordRollsBackOnError(t *testing.T) {
	database, mock := newMock(t)
	repo := NewUserRepository(database)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE usuarios SET password_hash")).
		WithArgs("hash", "ana@example.com").
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	err := repo.ResetPassword("ana@example.com", "hash", nil)
	assert.EqualError(t, err, "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateCommitFailure(t *testing.T) {
	database, mock := newMock(t)
	repo := NewUserRepository(database)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO usuarios")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	err := repo.Create(newUser("ana", "ana@example.com", model.RoleStudent))
	assert.ErrorContains(t, err, "failed to commit transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_CleanupExpired(t *testing.T) {
	database := dbtest.New(t)
	tokens := NewTokenRepository(database)
	now := time.Now().UTC()

	require.NoError(t, insertRedemption(database, &model.RedeemedToken{TokenID: "old", Email: "a@b.co", ExpiresAt: now.Add(-time.Hour)}))
	require.NoError(t, insertRedemption(database, &model.RedeemedToken{TokenID: "new", Email: "a@b.co", ExpiresAt: now.Add(time.Hour)}))

	n, err := tokens.CleanupExpired(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	used, err := tokens.IsRedeemed("new")
	require.NoError(t, err)
	assert.True(t, used)
}

func TestCatalogRepositories(t *testing.T) {
	database := dbtest.New(t)
	users := NewUserRepository(database)
	courses := NewCourseRepository(database)
	lessons := NewLessonRepository(database)

	instructor := newUser("prof", "prof@example.com", model.RoleInstructor)
	require.NoError(t, users.Create(instructor))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	older := &model.Course{ID: uuid.New().String(), Title: "Go básico", PriceCents: 1999, InstructorID: instructor.ID, CreatedAt: base}
	newer := &model.Course{ID: uuid.New().String(), Title: "Go avanzado", PriceCents: 2999, InstructorID: instructor.ID, CreatedAt: base.Add(time.Hour)}
	require.NoError(t, courses.Create(older))
	require.NoError(t, courses.Create(newer))

	all, err := courses.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, "29.99", all[0].FormatPrice())

	mine, err := courses.ByInstructor(instructor.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = courses.ByID(uuid.New().String())
	assert.ErrorIs(t, err, ErrCourseNotFound)

	second := &model.Lesson{ID: uuid.New().String(), CourseID: older.ID, Title: "Dos", CreatedAt: base.Add(2 * time.Minute)}
	first := &model.Lesson{ID: uuid.New().String(), CourseID: older.ID, Title: "Uno", CreatedAt: base.Add(time.Minute)}
	require.NoError(t, lessons.Create(second))
	require.NoError(t, lessons.Create(first))

	list, err := lessons.ByCourse(older.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Uno", list[0].Title)
	assert.Equal(t, "Dos", list[1].Title)

	got, err := lessons.ByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.CourseID)

	_, err = lessons.ByID(uuid.New().String())
	assert.ErrorIs(t, err, ErrLessonNotFound)

	orphan := &model.Lesson{ID: uuid.New().String(), CourseID: uuid.New().String(), Title: "X", CreatedAt: base}
	assert.ErrorIs(t, lessons.Create(orphan), ErrCourseNotFound)
}

func TestPurchaseRepository(t *testing.T) {
	database := dbtest.New(t)
	users := NewUserRepository(database)
	courses := NewCourseRepository(database)
	methods := NewPaymentMethodRepository(database)
	purchases := NewPurchaseRepository(database)

	instructor := newUser("prof", "prof@example.com", model.RoleInstructor)
	student := newUser("alu", "alu@example.com", model.RoleStudent)
	require.NoError(t, users.Create(instructor))
	require.NoError(t, users.Create(student))

	course := &model.Course{ID: uuid.New().String(), Title: "SQL", PriceCents: 1500, InstructorID: instructor.ID, CreatedAt: time.Now().UTC()}
	require.NoError(t, courses.Create(course))

	card := &model.PaymentMethod{ID: uuid.New().String(), Name: "Tarjeta", Type: "tarjeta", Enabled: true}
	off := &model.PaymentMethod{ID: uuid.New().String(), Name: "Cheque", Type: "cheque", Enabled: false}
	require.NoError(t, methods.Create(card))
	require.NoError(t, methods.Create(off))

	enabled, err := methods.Enabled()
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, "Tarjeta", enabled[0].Name)

	n, err := methods.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	purchase := &model.Purchase{
		ID:              uuid.New().String(),
		UserID:          student.ID,
		CourseID:        course.ID,
		PaymentMethodID: card.ID,
		AmountCents:     course.PriceCents,
		Status:          model.PurchaseStatusPaid,
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, purchases.Create(purchase))

	history, err := purchases.ByUser(student.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "SQL", history[0].CourseTitle)
	assert.Equal(t, "15.00", history[0].FormatAmount())
	assert.Equal(t, model.PurchaseStatusPaid, history[0].Status)

	empty, err := purchases.ByUser(instructor.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	bad := *purchase
	bad.ID = uuid.New().String()
	bad.CourseID = uuid.New().String()
	assert.ErrorIs(t, purchases.Create(&bad), ErrInvalidReference)
}
