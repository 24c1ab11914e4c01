package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poinku/config"
	"poinku/internal/database"
	"poinku/internal/handler"
	"poinku/internal/repository"
	"poinku/internal/router"
	"poinku/internal/service"
	"poinku/internal/worker"
	"poinku/internal/ws"
	"poinku/pkg/youtube"
)

func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	database.SeedAdmin(db, &cfg.Admin)

	hub := ws.NewHub()

	var yt *youtube.Client
	var resolver handler.ChatResolver
	var source worker.ChatSource
	if cfg.YouTube.APIKey != "" {
		yt, err = youtube.NewClient(context.Background(), cfg.YouTube.APIKey)
		if err != nil {
			log.Fatalf("youtube: %v", err)
		}
		resolver = yt
		source = yt
		log.Printf("[youtube] chat rewards enabled")
	} else {
		log.Printf("[youtube] chat rewards disabled: set YOUTUBE_API_KEY to enable")
	}

	settleSvc := service.NewSettlementService(db, hub)
	chatSvc := service.NewChatService(db, settleSvc, cfg.Rewards)
	streamRepo := repository.NewLivestreamRepository(db)
	manager := worker.NewManager(source, streamRepo, chatSvc)
	if yt != nil {
		manager.Start()
	}

	engine := router.Setup(cfg, db, router.Deps{
		YouTube: resolver,
		Manager: manager,
		Hub:     hub,
	})
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		log.Printf("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")
	manager.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown:", err)
	}
	fmt.Println("server stopped")
}
