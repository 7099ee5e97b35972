package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/db/dbtest"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/repository"
)

func TestSeedDemo(t *testing.T) {
	database := dbtest.New(t)

	res, err := seedDemo(database, "/static/img/curso-default.svg")
	require.NoError(t, err)
	assert.Equal(t, seedResult{PaymentMethods: 2, Courses: 1}, res)

	methods, err := repository.NewPaymentMethodRepository(database).Enabled()
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Equal(t, "Stripe (tarjeta)", methods[0].Name)
	assert.Equal(t, "transferencia", methods[1].Type)

	courses, err := repository.NewCourseRepository(database).All()
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Introducción a Python", courses[0].Title)
	assert.Equal(t, int64(999), courses[0].PriceCents)

	instructor, err := repository.NewUserRepository(database).ByEmail(demoInstructorEmail)
	require.NoError(t, err)
	assert.Equal(t, model.RoleInstructor, instructor.Role)
	assert.Equal(t, instructor.ID, courses[0].InstructorID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(instructor.PasswordHash), []byte(demoInstructorPassword)))
}

func TestSeedDemo_Idempotent(t *testing.T) {
	database := dbtest.New(t)

	_, err := seedDemo(database, "/img.svg")
	require.NoError(t, err)

	res, err := seedDemo(database, "/img.svg")
	require.NoError(t, err)
	assert.Equal(t, seedResult{}, res)

	count, err := repository.NewPaymentMethodRepository(database).Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
