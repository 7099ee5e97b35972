package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/config"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/repository"
)

const (
	demoInstructorEmail    = "profesor@demo.test"
	demoInstructorPassword = "profesor123"
)

type seedResult struct {
	PaymentMethods int
	Courses        int
}

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo payment methods, instructor and course into empty tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(cfg *config.Config, database *sqlx.DB) error {
				res, err := seedDemo(database, cfg.DefaultCourseImage)
				if err != nil {
					return err
				}
				fmt.Printf("seeded %d payment methods, %d courses\n", res.PaymentMethods, res.Courses)
				return nil
			})
		},
	}
}

// seedDemo fills empty tables only, so running it twice changes nothing.
func seedDemo(database *sqlx.DB, defaultImage string) (seedResult, error) {
	var res seedResult

	methods := repository.NewPaymentMethodRepository(database)
	count, err := methods.Count()
	if err != nil {
		return res, fmt.Errorf("failed to count payment methods: %w", err)
	}
	if count == 0 {
		for _, m := range []*model.PaymentMethod{
			{Name: "Stripe (tarjeta)", Type: "tarjeta", Enabled: true},
			{Name: "Transferencia Bancaria", Type: "transferencia", Enabled: true},
		} {
			m.ID = uuid.New().String()
			err = methods.Create(m)
			if err != nil {
				return res, fmt.Errorf("failed to seed payment method %q: %w", m.Name, err)
			}
			res.PaymentMethods++
		}
	}

	courses := repository.NewCourseRepository(database)
	existing, err := courses.All()
	if err != nil {
		return res, fmt.Errorf("failed to list courses: %w", err)
	}
	if len(existing) > 0 {
		return res, nil
	}

	instructor, err := demoInstructor(repository.NewUserRepository(database))
	if err != nil {
		return res, err
	}

	err = courses.Create(&model.Course{
		ID:           uuid.New().String(),
		Title:        "Introducción a Python",
		Description:  "Curso demo de Python para principiantes",
		PriceCents:   999,
		ImageURL:     defaultImage,
		InstructorID: instructor.ID,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return res, fmt.Errorf("failed to seed demo course: %w", err)
	}
	res.Courses++

	slog.Info("demo data seeded", "instructor_email", demoInstructorEmail)
	return res, nil
}

func demoInstructor(users repository.UserRepository) (*model.User, error) {
	user, err := users.ByEmail(demoInstructorEmail)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up demo instructor: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoInstructorPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	user = &model.User{
		ID:           uuid.New().String(),
		Name:         "Profesor",
		Surname:      "Demo",
		Handle:       "profesor_demo",
		Email:        demoInstructorEmail,
		PasswordHash: string(hash),
		Role:         model.RoleInstructor,
		CreatedAt:    time.Now().UTC(),
	}
	err = users.Create(user)
	if err != nil {
		return nil, fmt.Errorf("failed to create demo instructor: %w", err)
	}
	return user, nil
}
