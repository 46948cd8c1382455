package main

import (
	"context"
	"log"
	"os"

	"github.com/decisio-app/decisio-backend/config"
	"github.com/decisio-app/decisio-backend/internal/bootstrap"
	"github.com/decisio-app/decisio-backend/internal/db"
	decisionsrepo "github.com/decisio-app/decisio-backend/internal/decisions/repository"
	"github.com/decisio-app/decisio-backend/internal/schedule"
	"github.com/decisio-app/decisio-backend/internal/storage/postgres"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker sweep")
	}

	switch os.Args[1] {
	case "sweep":
		runSweep()
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

// runSweep evaluates every decision once and exits.
func runSweep() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	database, err := db.Open(ctx, postgres.DSN(&cfg.Database))
	if err != nil {
		log.Fatalf("open db pool: %v", err)
	}
	defer database.Close()

	_, evaluationService, _ := bootstrap.BuildServices(database.Pool, nil)
	sched := schedule.NewScheduler(cfg.Sweep.Schedule, decisionsrepo.NewRepo(database.Pool), evaluationService)

	if err := sched.Sweep(ctx); err != nil {
		log.Fatalf("sweep failed: %v", err)
	}
}
