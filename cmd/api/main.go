package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/decisio-app/decisio-backend/config"
	"github.com/decisio-app/decisio-backend/internal/bootstrap"
	"github.com/decisio-app/decisio-backend/internal/db"
	decisionsrepo "github.com/decisio-app/decisio-backend/internal/decisions/repository"
	"github.com/decisio-app/decisio-backend/internal/schedule"
	"github.com/decisio-app/decisio-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Schema bootstrap goes through database/sql; the runtime path uses pgx.
	sqlDB, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	if err := postgres.EnsureSchema(sqlDB); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	sqlDB.Close()

	database, err := db.Open(ctx, postgres.DSN(&cfg.Database))
	if err != nil {
		log.Fatalf("open db pool: %v", err)
	}
	defer database.Close()

	rdb := bootstrap.OpenRedis(ctx, cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "Decisio API",
		Version:     cfg.App.Version,
		CORSOrigins: cfg.CORS.Origins,
		DB:          database.Pool,
		Redis:       rdb,
	})

	if cfg.Sweep.Enabled {
		_, evaluationService, _ := bootstrap.BuildServices(database.Pool, rdb)
		sched := schedule.NewScheduler(cfg.Sweep.Schedule, decisionsrepo.NewRepo(database.Pool), evaluationService)
		if err := sched.Start(); err != nil {
			log.Fatalf("start sweep scheduler: %v", err)
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Decisio API listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
