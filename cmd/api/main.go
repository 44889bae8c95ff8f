package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/hrops-dev/attendance-backend-go/internal/config"
	appHTTP "github.com/hrops-dev/attendance-backend-go/internal/handler/http"
	"github.com/hrops-dev/attendance-backend-go/internal/pkg/database"
	"github.com/hrops-dev/attendance-backend-go/internal/pkg/geo"
	"github.com/hrops-dev/attendance-backend-go/internal/pkg/jwt"
	"github.com/hrops-dev/attendance-backend-go/internal/pkg/sse"
	"github.com/hrops-dev/attendance-backend-go/internal/repository/ledger"
	"github.com/hrops-dev/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hrops-dev/attendance-backend-go/internal/service/attendance"
	reportService "github.com/hrops-dev/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	blobStore := postgresql.NewLedgerBlobStore(db)
	attendanceLedger := ledger.New(blobStore)
	if err := attendanceLedger.Load(context.Background()); err != nil {
		log.Fatal("Error loading attendance ledger: ", err)
	}

	directory := postgresql.NewEmployeeDirectory(db)
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	gate := attendanceService.NewPromptGate()

	// With no LOCATOR_URL configured Acquire fails as unavailable, so
	// check-ins without client coordinates degrade with a warning toast.
	locator := geo.NewHTTPLocator(cfg.Locator.URL, cfg.Locator.Timeout)

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceLedger,
		directory,
		locator,
		hub,
		gate,
		cfg.Locator.Timeout,
	)
	reportSvc := reportService.NewReportService(attendanceLedger, directory)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	notificationHandler := appHTTP.NewNotificationHandler(hub, jwtService)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        cfg.App.Name,
			AppVersion:     cfg.App.Version,
			AppEnv:         cfg.App.Env,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		},
		jwtService,
		attendanceHandler,
		reportHandler,
		notificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
