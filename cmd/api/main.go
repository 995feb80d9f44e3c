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

	"github.com/lunafall/aura/backend/internal/config"
	"github.com/lunafall/aura/backend/internal/handler"
	"github.com/lunafall/aura/backend/internal/model/avatar"
	"github.com/lunafall/aura/backend/internal/service/ai"
	"github.com/lunafall/aura/backend/internal/service/chat"
	"github.com/lunafall/aura/backend/internal/service/image"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store := avatar.NewMemoryStore(avatar.Seed())

	var aiSvc *ai.Service
	if cfg.AI.Enabled() {
		aiSvc, err = ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing with canned fallback responses")
		} else {
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, chat will use canned fallback responses")
	}

	var enhancer image.Enhancer
	if aiSvc != nil {
		enhancer = aiSvc
	}
	imageSvc := image.NewService(cfg.Image, enhancer)
	if imageSvc.Enabled() {
		log.Println("image service initialized successfully")
	} else {
		log.Println("DEAPI_KEY not configured, portrait generation disabled")
	}

	var generator chat.Generator
	if aiSvc != nil {
		generator = aiSvc
	}
	chatSvc := chat.NewService(store, generator, imageSvc)

	router := handler.NewRouter(store, chatSvc, aiSvc, imageSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Aura backend listening on %s", addr)
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
