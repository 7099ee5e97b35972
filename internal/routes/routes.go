package routes

import (
	"io/fs"
	"net/http"

	innovayemprende "github.com/jlqexelente100-pixel/Innova-y-Emprende"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/app"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/handler"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/metrics"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.CatalogService)
	auth := handler.NewAuthHandler(app.AuthService, app.ResetService, app.Flashes)
	catalog := handler.NewCatalogHandler(app.CatalogService, app.PurchaseService, app.Markdown)
	instructor := handler.NewInstructorHandler(app.CatalogService, app.ImageService.Enabled(), app.Flashes)
	purchase := handler.NewPurchaseHandler(app.PurchaseService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	static, _ := fs.Sub(innovayemprende.StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// Metrics
	mux.Handle("GET /metrics", metrics.Handler())

	// Home
	mux.HandleFunc("GET /{$}", home.HomePage)

	// Auth - credential and reset forms are rate limited per client IP
	loginLimit := middleware.RateLimit(app.Cfg.AuthRateLimit, app.Cfg.AuthRateWindow)
	registerLimit := middleware.RateLimit(app.Cfg.AuthRateLimit, app.Cfg.AuthRateWindow)
	resetLimit := middleware.RateLimit(app.Cfg.AuthRateLimit, app.Cfg.AuthRateWindow)

	mux.HandleFunc("GET /login", auth.LoginPage)
	mux.HandleFunc("POST /login", loginLimit(auth.Login))
	mux.HandleFunc("GET /logout", auth.Logout)
	mux.HandleFunc("GET /registrar", auth.RegisterPage)
	mux.HandleFunc("POST /registrar", registerLimit(auth.Register))

	// Password reset
	mux.HandleFunc("GET /recuperar", auth.ForgotPasswordPage)
	mux.HandleFunc("POST /recuperar", resetLimit(auth.ForgotPassword))
	mux.HandleFunc("GET /restablecer/{token}", auth.ResetPasswordPage)
	mux.HandleFunc("POST /restablecer/{token}", resetLimit(auth.ResetPassword))

	// Catalog
	mux.HandleFunc("GET /cursos", catalog.Courses)
	mux.HandleFunc("GET /curso/{id}", catalog.CoursePage)
	mux.HandleFunc("GET /leccion/{id}", catalog.LessonPage)

	// Purchases
	mux.HandleFunc("GET /metodos_pago", purchase.PaymentMethods)
	// anonymous callers get 401 before any CSRF check
	mux.HandleFunc("POST /comprar", middleware.RequireLoginJSON(middleware.RequireCSRF(purchase.Purchase)))
	mux.HandleFunc("GET /mis_compras", middleware.RequireLogin(app.Flashes, "Debes iniciar sesión")(purchase.HistoryPage))

	// ============================================================================
	// INSTRUCTOR ROUTES (/profesor/*)
	// ============================================================================

	mux.HandleFunc("GET /profesor/dashboard",
		middleware.RequireInstructor(app.Flashes, "Acceso restringido. Debes iniciar sesión como profesor.")(instructor.DashboardPage))

	requireCourseInstructor := middleware.RequireInstructor(app.Flashes, "Debes ser profesor para esta acción.")
	mux.HandleFunc("GET /profesor/crear_curso", requireCourseInstructor(instructor.CreateCoursePage))
	mux.HandleFunc("POST /profesor/crear_curso", requireCourseInstructor(instructor.CreateCourse))

	requireLessonInstructor := middleware.RequireInstructor(app.Flashes, "Debes ser profesor.")
	mux.HandleFunc("GET /profesor/curso/{id}/añadir_leccion", requireLessonInstructor(instructor.AddLessonPage))
	mux.HandleFunc("POST /profesor/curso/{id}/añadir_leccion", requireLessonInstructor(instructor.AddLesson))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (needed by SecurityHeaders for S3 endpoint)
		middleware.NonceMiddleware, // Generate CSP nonce for each request (must be before SecurityHeaders)
		middleware.SecurityHeaders, // Security headers for all responses (XSS, clickjacking, referrer)
		middleware.RequestLogging,
		middleware.Flash(app.Flashes),               // Flash store for guards and page rendering
		middleware.CSRFProtectionExcept("/comprar"), // CSRF for state-changing requests; /comprar checks it after its guard
		middleware.SessionMiddleware(app.AuthService, app.UserService),
		middleware.WithURLPath,
	)

	return handler
}
