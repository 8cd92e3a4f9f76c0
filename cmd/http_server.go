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

	"github.com/frahmantamala/review-marketplace/internal"
	"github.com/frahmantamala/review-marketplace/internal/auth"
	authPostgres "github.com/frahmantamala/review-marketplace/internal/auth/postgres"
	"github.com/frahmantamala/review-marketplace/internal/brand"
	brandPostgres "github.com/frahmantamala/review-marketplace/internal/brand/postgres"
	"github.com/frahmantamala/review-marketplace/internal/category"
	categoryPostgres "github.com/frahmantamala/review-marketplace/internal/category/postgres"
	"github.com/frahmantamala/review-marketplace/internal/core/events"
	"github.com/frahmantamala/review-marketplace/internal/market"
	marketPostgres "github.com/frahmantamala/review-marketplace/internal/market/postgres"
	"github.com/frahmantamala/review-marketplace/internal/product"
	productPostgres "github.com/frahmantamala/review-marketplace/internal/product/postgres"
	"github.com/frahmantamala/review-marketplace/internal/review"
	reviewPostgres "github.com/frahmantamala/review-marketplace/internal/review/postgres"
	"github.com/frahmantamala/review-marketplace/internal/transport"
	"github.com/frahmantamala/review-marketplace/internal/transport/rest"
	"github.com/frahmantamala/review-marketplace/internal/user"
	userPostgres "github.com/frahmantamala/review-marketplace/internal/user/postgres"
	"github.com/frahmantamala/review-marketplace/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

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
	GormDB *gorm.DB
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
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	lg := deps.Logger
	cfg := deps.Config
	baseHandler := transport.NewBaseHandler(lg)

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(deps.GormDB), tokenGen, lg)
	authHandler := auth.NewHandler(baseHandler, authService)
	gate := auth.NewGate(lg)

	userService := user.NewService(userPostgres.NewUserRepository(deps.GormDB), cfg.Security.BCryptCost, lg)
	marketService := market.NewService(marketPostgres.NewMarketRepository(deps.GormDB), lg)
	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(deps.GormDB), lg)
	brandService := brand.NewService(brandPostgres.NewBrandRepository(deps.GormDB), lg)
	productService := product.NewService(productPostgres.NewProductRepository(deps.GormDB), categoryService, brandService, lg)

	bus := events.NewEventBus(lg)
	product.RegisterEventHandlers(bus, productService)
	reviewService := review.NewService(reviewPostgres.NewReviewRepository(deps.GormDB), bus, lg)

	handlers := rest.Handlers{
		Auth:     authHandler,
		User:     user.NewHandler(baseHandler, userService),
		Market:   market.NewHandler(baseHandler, marketService),
		Category: category.NewHandler(baseHandler, categoryService),
		Brand:    brand.NewHandler(baseHandler, brandService),
		Product:  product.NewHandler(baseHandler, productService),
		Review:   review.NewHandler(baseHandler, reviewService),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, marketService, gate, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Observability.Logging.Format == "json" {
		logger.Init("production")
	} else {
		logger.Init("development")
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection
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

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already open pgx connection pool so both
// share one pool and one set of limits.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
}
