package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/occuhealth/clinic/internal/config"
	"github.com/occuhealth/clinic/internal/domain/catalog"
	"github.com/occuhealth/clinic/internal/domain/patient"
	"github.com/occuhealth/clinic/internal/domain/scheduling"
	"github.com/occuhealth/clinic/internal/domain/sequence"
	"github.com/occuhealth/clinic/internal/domain/visit"
	"github.com/occuhealth/clinic/internal/platform/auth"
	"github.com/occuhealth/clinic/internal/platform/db"
	"github.com/occuhealth/clinic/internal/platform/middleware"
)

// AppointmentGatewayAdapter adapts the scheduling service to the
// visit.AppointmentGateway interface, translating its not-found error so
// the visit package stays decoupled from scheduling.
type AppointmentGatewayAdapter struct {
	svc *scheduling.Service
}

func NewAppointmentGatewayAdapter(svc *scheduling.Service) *AppointmentGatewayAdapter {
	return &AppointmentGatewayAdapter{svc: svc}
}

// MarkAttended implements visit.AppointmentGateway.
func (a *AppointmentGatewayAdapter) MarkAttended(ctx context.Context, appointmentID uuid.UUID) error {
	err := a.svc.MarkAttended(ctx, appointmentID)
	if err != nil && errors.Is(err, scheduling.ErrNotFound) {
		return fmt.Errorf("%w: appointment %s", visit.ErrNotFound, appointmentID)
	}
	return err
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Occupational health clinic API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			SigningKey: []byte(cfg.AuthSigningKey),
		}))
	}

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	apiV1 := e.Group("/api/v1")

	// Patient domain
	patientSvc := patient.NewService(patient.NewRepo(pool))
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)

	// Catalog domain
	catalogSvc := catalog.NewService(
		catalog.NewDiagnosisCodeRepo(pool),
		catalog.NewProcedureCodeRepo(pool),
		catalog.NewSpecialtyRepo(pool),
		catalog.NewLocationRepo(pool),
		catalog.NewProductRepo(pool),
	)
	catalog.NewHandler(catalogSvc).RegisterRoutes(apiV1)

	// Scheduling domain
	schedulingSvc := scheduling.NewService(scheduling.NewRepo(pool))
	scheduling.NewHandler(schedulingSvc).RegisterRoutes(apiV1)

	// Sequence domain
	sequenceSvc := sequence.NewService(sequence.NewRepo(pool))
	sequence.NewHandler(sequenceSvc).RegisterRoutes(apiV1)

	// Visit domain
	visitSvc := visit.NewService(
		visit.NewRepo(pool),
		db.NewTxRunner(pool),
		sequenceSvc,
		NewAppointmentGatewayAdapter(schedulingSvc),
	)
	visit.NewHandler(visitSvc).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
