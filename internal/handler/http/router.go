package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/zenithly-hr/payroll-backend-go/internal/handler/http/middleware"
	"github.com/zenithly-hr/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	payrollHandler PayrollHandler,
	exportHandler ExportHandler,
	annualHandler AnnualHandler,
	allowedOrigins []string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/payroll/runs", func(r chi.Router) {
				r.Get("/", payrollHandler.ListLockedRuns)
				r.Get("/{id}/entries", payrollHandler.ListRunEntries)

				// Statutory exports, payroll admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.PayrollAdminOnly)
					r.Get("/{id}/export", exportHandler.ExportRun)
				})
			})

			// Stored export files, payroll admin only
			r.Route("/payroll/exports", func(r chi.Router) {
				r.Use(middleware.PayrollAdminOnly)
				r.Get("/", exportHandler.DownloadStoredExport)
				r.Delete("/", exportHandler.DeleteStoredExport)
			})

			r.Route("/reports/annual-tax", func(r chi.Router) {
				r.Get("/", annualHandler.ListSummaries)

				r.Group(func(r chi.Router) {
					r.Use(middleware.PayrollAdminOnly)
					r.Post("/", annualHandler.GenerateSummaries)
				})
			})
		})
	})

	return r
}
