package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/academyhub/backend/docs"
	"github.com/academyhub/backend/internal/config"
	"github.com/academyhub/backend/internal/handlers"
	"github.com/academyhub/backend/internal/logger"
	loggerMiddleware "github.com/academyhub/backend/internal/logger/middleware"
	"github.com/academyhub/backend/internal/middlewares"
	"github.com/academyhub/backend/internal/repositories"
	"github.com/academyhub/backend/internal/services"
	"github.com/academyhub/backend/internal/sessions"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Academy Back Office API
// @version 1.0
// @description API for the academy back office: student, course and invoice tables and the lesson editor
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Academy back office")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize editor session store
	store, closeStore, err := newSessionStore(cfg)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize session store", zap.Error(err))
	}
	defer closeStore()

	// Initialize repositories
	lessonRepo := repositories.NewLessonRepository(db, logger.Logger)
	studentRepo := repositories.NewStudentRepository(db, logger.Logger)
	courseRepo := repositories.NewCourseRepository(db, logger.Logger)
	invoiceRepo := repositories.NewInvoiceRepository(db, logger.Logger)

	// Initialize services
	lessonService := services.NewLessonService(lessonRepo, logger.Logger)
	editorService := services.NewEditorService(lessonRepo, store, logger.Logger, cfg.Editor.MaxUploadSize)
	directoryService := services.NewDirectoryService(studentRepo, courseRepo, invoiceRepo, logger.Logger)

	// Initialize handlers
	lessonHandler := handlers.NewLessonHandler(lessonService, logger.Logger)
	editorHandler := handlers.NewEditorHandler(editorService, logger.Logger)
	directoryHandler := handlers.NewDirectoryHandler(directoryService, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(cfg.Server.MaxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope JSON API to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		directoryHandler.RegisterRoutes(r)
		lessonHandler.RegisterRoutes(r)
		editorHandler.RegisterRoutes(r)
	})

	// HTML pages
	directoryHandler.RegisterPageRoutes(r)
	lessonHandler.RegisterPageRoutes(r)
	editorHandler.RegisterPageRoutes(r)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/lessons", http.StatusFound)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second, // Longer timeout for image uploads
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// newSessionStore keeps editor sessions in Redis when REDIS_HOST is set and in
// process memory otherwise
func newSessionStore(cfg *config.Config) (sessions.Store, func(), error) {
	if !cfg.Redis.Enabled() {
		logger.Logger.Info("Editor sessions kept in memory")
		return sessions.NewMemoryStore(cfg.Editor.SessionTTL), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := sessions.NewRedisClient(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	logger.Logger.Info("Editor sessions kept in Redis", zap.String("addr", cfg.Redis.Addr()))

	return sessions.NewRedisStore(client, cfg.Editor.SessionTTL), func() {
		if err := client.Close(); err != nil {
			logger.Logger.Error("Failed to close Redis client", zap.Error(err))
		}
	}, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "academy_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
