package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/picstash/picstash"
	"github.com/picstash/picstash/config"
	"github.com/picstash/picstash/filesystem"
	picstashhttp "github.com/picstash/picstash/http"
	"github.com/picstash/picstash/memory"
	"github.com/picstash/picstash/s3"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the picstash HTTP gateway and web client server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8787, "HTTP server port")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	store, cleanup, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer cleanup()

	slog.Info("object store ready", "driver", cfg.Storage.Driver)

	gallery := picstash.NewGallery(store)

	var assets fs.FS
	if cfg.Server.WebRoot != "" {
		if _, statErr := os.Stat(cfg.Server.WebRoot); statErr == nil {
			assets = os.DirFS(cfg.Server.WebRoot)
		} else {
			slog.Warn("web root not found, serving API only", "path", cfg.Server.WebRoot)
		}
	}

	handlerConfig := picstashhttp.HandlerConfig{
		MaxUploadSize: cfg.Server.MaxUploadSize,
		CORS:          cfg.CORS,
		Assets:        assets,
	}
	handler := picstashhttp.NewHandler(&handlerConfig, gallery)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "driver", cfg.Storage.Driver)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// openStore builds the configured ObjectStore driver. The returned cleanup
// releases any resources the driver holds open.
func openStore(ctx context.Context, storageCfg config.StorageConfig) (picstash.ObjectStore, func(), error) {
	switch storageCfg.Driver {
	case "memory":
		return memory.New(), func() {}, nil

	case "fs":
		if err := os.MkdirAll(storageCfg.Path, 0o750); err != nil {
			return nil, nil, fmt.Errorf("create storage directory: %w", err)
		}
		root, err := os.OpenRoot(storageCfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open storage root: %w", err)
		}
		return filesystem.New(root), func() { _ = root.Close() }, nil

	case "s3":
		store, err := s3.New(ctx, s3.Config{
			Endpoint:  storageCfg.S3.Endpoint,
			AccessKey: storageCfg.S3.AccessKey,
			SecretKey: storageCfg.S3.SecretKey,
			Bucket:    storageCfg.S3.Bucket,
			UseSSL:    storageCfg.S3.UseSSL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect s3 store: %w", err)
		}
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver: %s", storageCfg.Driver)
	}
}
