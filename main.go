package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/vendas-ahora/api-vendas/internal/config"
	httpserver "github.com/vendas-ahora/api-vendas/internal/http"
	"github.com/vendas-ahora/api-vendas/internal/service/auth"
	"github.com/vendas-ahora/api-vendas/internal/service/eventservice"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	db, err := config.NewPostgresDB(cfg.DB)
	if err != nil {
		log.Fatalf("DB error: %v", err)
	}
	log.Println("DB Connection Established")

	config.RunMigrations(cfg.DB)

	uploadsSvc, err := config.NewUploadsService(cfg.S3)
	if err != nil {
		log.Fatalf("uploads error: %v", err)
	}

	// The broker is optional; without MQ_HOST sales simply emit no
	// events.
	var events eventservice.SalePublisher
	if cfg.MQ.Host != "" {
		pub, err := config.RabbitPublisher(cfg.MQ)
		if err != nil {
			log.Fatalf("rabbit error: %v", err)
		}
		events = eventservice.NewMQPublisher(pub)
	}

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	tokens := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	r := httpserver.NewRouter(httpserver.Deps{
		DB:      db,
		Uploads: uploadsSvc,
		Events:  events,
		Tokens:  tokens,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("API listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
