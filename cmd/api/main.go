package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/meltyapp/backend/internal/config"
	"github.com/meltyapp/backend/internal/handler"
	chatmodel "github.com/meltyapp/backend/internal/model/chat"
	journalmodel "github.com/meltyapp/backend/internal/model/journal"
	"github.com/meltyapp/backend/internal/model/persona"
	"github.com/meltyapp/backend/internal/service/ai"
	chatservice "github.com/meltyapp/backend/internal/service/chat"
	journalservice "github.com/meltyapp/backend/internal/service/journal"
	"github.com/meltyapp/backend/internal/service/transcribe"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&chatmodel.Session{}, &chatmodel.Message{}, &journalmodel.Entry{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	log.Println("database connection established")

	personaStore := persona.NewMemoryStore(persona.Seed())
	chatStore := chatservice.NewGormStore(db)
	journalStore := journalservice.NewGormStore(db)
	generator := ai.NewClient(cfg.AI)
	log.Printf("upstream generation client initialized, model=%s", cfg.AI.Model)

	router := handler.NewRouter(
		personaStore,
		chatStore,
		journalStore,
		generator,
		transcribe.Placeholder{},
		cfg.AI.StreamTimeout,
	)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Melty backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
