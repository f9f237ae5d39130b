package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"heartmatch-backend/internal/config"
	"heartmatch-backend/internal/handlers"
	"heartmatch-backend/internal/repository"
	"heartmatch-backend/internal/services"
	"heartmatch-backend/internal/storage"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cfg)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply database migrations before serving")
}

func serve(cfg *config.Config) error {
	ctx := context.Background()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if migrateOnStart && cfg.Storage.Driver == config.DriverPostgres {
		if err := runMigrations(ctx, cfg); err != nil {
			return err
		}
	}

	// Export is optional
	var uploader services.Uploader
	if cfg.AWS.S3Bucket != "" {
		exporter, err := storage.NewS3Exporter(ctx, storage.S3Config{
			Region:    cfg.AWS.Region,
			Bucket:    cfg.AWS.S3Bucket,
			AccessKey: cfg.AWS.AccessKey,
			SecretKey: cfg.AWS.SecretKey,
			Endpoint:  cfg.AWS.Endpoint,
			URLExpiry: cfg.AWS.URLExpiry,
		})
		if err != nil {
			return fmt.Errorf("failed to create exporter: %w", err)
		}
		uploader = exporter
	} else {
		log.Info().Msg("No S3 bucket configured, account export disabled")
	}

	// Initialize services
	svc := handlers.Services{
		Users:     services.NewUserService(st.users, cfg.JWT.Secret, cfg.JWT.TTL),
		Profiles:  services.NewProfileService(st.profiles),
		Discovery: services.NewDiscoveryService(st.profiles, st.swipes, cfg.Discovery.PoolSize),
		Swipes:    services.NewSwipeService(st.profiles, st.swipes),
		Matches:   services.NewMatchService(st.profiles, st.swipes),
		Export:    services.NewExportService(st.users, st.profiles, st.swipes, uploader),
		Health:    st.health,
	}

	router := handlers.NewRouter(svc, handlers.RouterOptions{
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Str("storage", cfg.Storage.Driver).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}

func runMigrations(ctx context.Context, cfg *config.Config) error {
	db, err := connectDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		return err
	}
	log.Info().Msg("Database schema is up to date")
	return nil
}
