package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/duvalivy/planrh/internal"
	"github.com/duvalivy/planrh/internal/absence"
	absencestore "github.com/duvalivy/planrh/internal/absence/postgres"
	"github.com/duvalivy/planrh/internal/ask"
	askstore "github.com/duvalivy/planrh/internal/ask/postgres"
	"github.com/duvalivy/planrh/internal/auth"
	"github.com/duvalivy/planrh/internal/availability"
	availabilitystore "github.com/duvalivy/planrh/internal/availability/postgres"
	"github.com/duvalivy/planrh/internal/code"
	codestore "github.com/duvalivy/planrh/internal/code/postgres"
	"github.com/duvalivy/planrh/internal/contract"
	contractstore "github.com/duvalivy/planrh/internal/contract/postgres"
	"github.com/duvalivy/planrh/internal/feed"
	feedstore "github.com/duvalivy/planrh/internal/feed/postgres"
	"github.com/duvalivy/planrh/internal/organization"
	organizationstore "github.com/duvalivy/planrh/internal/organization/postgres"
	"github.com/duvalivy/planrh/internal/planning"
	planningstore "github.com/duvalivy/planrh/internal/planning/postgres"
	"github.com/duvalivy/planrh/internal/transport/rest"
	"github.com/duvalivy/planrh/internal/user"
	userstore "github.com/duvalivy/planrh/internal/user/postgres"
	"github.com/duvalivy/planrh/pkg/logger"
)

const openapiPath = "./api/openapi.yml"

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	lg := deps.Logger

	userRepo := userstore.NewUserRepository(deps.Gorm)
	userService := user.NewService(userRepo, deps.Config.Security.BCryptCost, lg)

	orgRepo := organizationstore.NewOrganizationRepository(deps.Gorm)
	orgManager := organization.NewManager(orgRepo, lg)

	codeRepo := codestore.NewCodeRepository(deps.Gorm)
	codeService := code.NewService(codeRepo, lg)

	contractRepo := contractstore.NewContractRepository(deps.Gorm)
	contractService := contract.NewService(contractRepo, userService, lg)

	absenceRepo := absencestore.NewAbsenceRepository(deps.Gorm)
	absenceService := absence.NewService(absenceRepo, userService, lg)

	availabilityRepo := availabilitystore.NewAvailabilityRepository(deps.Gorm)
	availabilityService := availability.NewService(availabilityRepo, userService, lg)

	planningRepo := planningstore.NewPlanningRepository(deps.Gorm)
	planningService := planning.NewService(planningRepo, userService, lg)

	askRepo := askstore.NewAskRepository(deps.Gorm)
	askService := ask.NewService(askRepo, lg)

	handlers := rest.Handlers{
		User:         user.NewHandler(userService),
		Organization: organization.NewHandler(orgManager),
		Code:         code.NewHandler(codeService),
		Contract:     contract.NewHandler(contractService),
		Absence:      absence.NewHandler(absenceService),
		Availability: availability.NewHandler(availabilityService),
		Planning:     planning.NewHandler(planningService),
		Ask:          ask.NewHandler(askService),
	}
	for _, kind := range []feed.Kind{feed.Alerts, feed.Anomalies, feed.Events, feed.Notifications} {
		svc := feed.NewService(kind, feedstore.NewFeedRepository(deps.Gorm, kind), lg)
		h := feed.NewHandler(svc)
		switch kind.Table {
		case feed.Alerts.Table:
			handlers.Alerts = h
		case feed.Anomalies.Table:
			handlers.Anomalies = h
		case feed.Events.Table:
			handlers.Events = h
		case feed.Notifications.Table:
			handlers.Notifications = h
		}
	}

	var verifier *auth.Verifier
	if deps.Config.Security.TokenSecret != "" {
		verifier = auth.NewVerifier(deps.Config.Security.TokenSecret, deps.Config.Security.TokenIssuer)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, verifier, handlers, deps.Config.Server.AllowedOrigins, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.L()

	if err := validateOpenAPISpec(); err != nil {
		lg.Warn("openapi spec validation failed", "path", openapiPath, "error", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// validateOpenAPISpec loads and validates the served contract so a broken
// document is caught at startup rather than by the first Swagger visitor.
func validateOpenAPISpec() error {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(openapiPath)
	if err != nil {
		return err
	}
	return doc.Validate(loader.Context)
}

// initDB opens the pgx-backed connection pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
