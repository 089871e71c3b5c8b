package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lifeos/internal/ai"
	"lifeos/internal/config"
	"lifeos/internal/crypto"
	"lifeos/internal/db"
	"lifeos/internal/handlers"
)

// version is stamped by the build via -ldflags.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:           "lifeos",
		Short:         "Personal life OS API: journal, gallery, planner and trackers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.NewFromEnv()
	if err != nil {
		return err
	}

	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer dbConn.Close()
	if err := db.RunMigrations(dbConn); err != nil {
		return err
	}

	var cipher *crypto.Cipher
	if len(cfg.EncryptionKey) > 0 {
		cipher, err = crypto.NewCipher(cfg.EncryptionKey)
		if err != nil {
			return err
		}
		logger.Info("journal encryption at rest enabled")
	}

	var collaborator ai.Collaborator
	if cfg.GeminiAPIKey != "" {
		collaborator, err = ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		defer collaborator.Close()
	} else {
		logger.Warn("GEMINI_API_KEY not set; reflection falls back, transcription unavailable")
	}

	router := handlers.NewRouter(handlers.Deps{
		DB:             dbConn,
		Log:            logger,
		Collaborator:   collaborator,
		Cipher:         cipher,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr), zap.String("db", cfg.DBPath))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
