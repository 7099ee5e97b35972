package app

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/config"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/db"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/flash"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/markdown"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/repository"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/service"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/storage"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	Flashes         *flash.Store
	Markdown        *markdown.Parser
	AuthService     *service.AuthService
	UserService     *service.UserService
	ResetService    *service.ResetService
	EmailService    *service.EmailService
	ImageService    *service.ImageService
	CatalogService  *service.CatalogService
	PurchaseService *service.PurchaseService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	mailer, err := service.NewMailer(cfg)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	var imageStorage storage.Storage
	if cfg.StorageEnabled() {
		imageStorage, err = storage.New(cfg)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
	}

	return Wire(cfg, database, mailer, imageStorage, time.Now), nil
}

// Wire builds repositories and services on an open, migrated database.
// imageStorage may be nil, which disables cover uploads.
func Wire(cfg *config.Config, database *sqlx.DB, mailer service.Mailer, imageStorage storage.Storage, now func() time.Time) *App {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	courseRepository := repository.NewCourseRepository(database)
	lessonRepository := repository.NewLessonRepository(database)
	paymentMethodRepository := repository.NewPaymentMethodRepository(database)
	purchaseRepository := repository.NewPurchaseRepository(database)

	// Services
	emailService := service.NewEmailService(mailer, cfg.AppName, cfg.EmailSendTimeout)
	imageService := service.NewImageService(imageStorage)
	authService := service.NewAuthService(
		userRepository,
		cfg.SecretKey,
		cfg.IsProduction(),
		cfg.SessionExpiry,
	)
	userService := service.NewUserService(userRepository)
	resetService := service.NewResetService(
		userRepository,
		tokenRepository,
		authService,
		emailService,
		service.NewTokenSigner(cfg.SecretKey, cfg.ResetTokenSalt, cfg.ResetTokenMaxAge, now),
		cfg.AppURL,
		cfg.ResetTokenSingleUse,
	)
	catalogService := service.NewCatalogService(courseRepository, lessonRepository, imageService, cfg.DefaultCourseImage)
	purchaseService := service.NewPurchaseService(purchaseRepository, paymentMethodRepository)

	return &App{
		Cfg:             cfg,
		DB:              database,
		Flashes:         flash.NewStore(cfg.SecretKey, cfg.IsProduction()),
		Markdown:        markdown.NewParser(),
		AuthService:     authService,
		UserService:     userService,
		ResetService:    resetService,
		EmailService:    emailService,
		ImageService:    imageService,
		CatalogService:  catalogService,
		PurchaseService: purchaseService,
	}
}

// Close waits for queued reset emails, then closes the database.
func (a *App) Close() error {
	if a.ResetService != nil {
		a.ResetService.Wait()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
