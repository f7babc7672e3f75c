//	@title			Photo Service API
//	@version		1.0
//	@description	Photo upload, album management, search and monthly collections.
//
//	@host		localhost:8080
//	@BasePath	/api/v1

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/photovault/service/internal/collection"
	"github.com/photovault/service/internal/config"
	"github.com/photovault/service/internal/db"
	"github.com/photovault/service/internal/photo"
	"github.com/photovault/service/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "photo-api",
		Short:         "Photo upload, album and collection service",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), v)
		},
	}
	root.PersistentFlags().String("port", "", "HTTP listen port (overrides PORT)")
	root.PersistentFlags().String("backend", "", "metadata backend: postgres, mongo or memory (overrides METADATA_BACKEND)")
	_ = v.BindPFlag("port", root.PersistentFlags().Lookup("port"))
	_ = v.BindPFlag("metadata_backend", root.PersistentFlags().Lookup("backend"))

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), v)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(v)
		},
	})
	return root
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func runMigrate(v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	return db.Migrate(log, cfg.DatabaseURL)
}

func runServe(ctx context.Context, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	store, closeStore, err := openStore(ctx, log, cfg)
	if err != nil {
		log.Error("metadata store init failed", zap.String("backend", cfg.MetadataBackend), zap.Error(err))
		return err
	}
	defer closeStore()

	blobs, err := storage.Dial(log, cfg.Storage())
	if err != nil {
		log.Error("object storage init failed", zap.Error(err))
		return err
	}

	// Wire dependencies: store -> service -> handler
	photoSvc := photo.NewService(log, store, blobs)
	photoHandler := photo.NewHandler(log, photoSvc, cfg.MaxUploadBytes)

	collectionSvc := collection.NewService(store, cfg.CollectionMinPhotos)
	collectionHandler := collection.NewHandler(log, collectionSvc)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(log, photoHandler, collectionHandler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("backend", cfg.MetadataBackend))
		log.Info("swagger UI", zap.String("url", "http://localhost:"+cfg.Port+"/swagger/"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error("server error", zap.Error(err))
			return err
		}
	case sig := <-quit:
		log.Info("shutting down gracefully", zap.Stringer("signal", sig))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return err
	}

	log.Info("server stopped")
	return nil
}
