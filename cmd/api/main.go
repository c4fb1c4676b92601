package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/zenithly-hr/payroll-backend-go/internal/config"
	appHTTP "github.com/zenithly-hr/payroll-backend-go/internal/handler/http"
	"github.com/zenithly-hr/payroll-backend-go/internal/pkg/database"
	"github.com/zenithly-hr/payroll-backend-go/internal/pkg/jwt"
	"github.com/zenithly-hr/payroll-backend-go/internal/pkg/storage"
	"github.com/zenithly-hr/payroll-backend-go/internal/repository/postgresql"
	annualService "github.com/zenithly-hr/payroll-backend-go/internal/service/annual"
	exportService "github.com/zenithly-hr/payroll-backend-go/internal/service/export"
	payrollService "github.com/zenithly-hr/payroll-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	payrollRepo := postgresql.NewPayrollRepository(db)
	taxSummaryRepo := postgresql.NewTaxSummaryRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	calculator := exportService.NewContributionCalculator()
	exportSvc := exportService.NewExportService(payrollRepo, calculator, fileStorage)
	annualSvc := annualService.NewAnnualService(payrollRepo, taxSummaryRepo)
	payrollSvc := payrollService.NewPayrollService(payrollRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	exportHandler := appHTTP.NewExportHandler(exportSvc)
	annualHandler := appHTTP.NewAnnualHandler(annualSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		payrollHandler,
		exportHandler,
		annualHandler,
		cfg.App.AllowedOrigins,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
