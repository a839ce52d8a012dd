package main

import (
	"context"
	"log"
	"time"

	"litscan/internal/activities"
	"litscan/internal/config"
	"litscan/internal/storage"
	"litscan/internal/workflows"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	_ = godotenv.Load(".env")
	if err := run(config.Load()); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config) error {
	dialCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(dialCtx, cfg.PostgresURL)
	if err != nil {
		return err
	}
	defer db.Close()

	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		return err
	}
	defer c.Close()

	a, err := activities.New(cfg, db)
	if err != nil {
		return err
	}

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)
	activities.Register(w, a)

	log.Printf("litscan worker listening on %s queue=%s llm_providers=%q strategy=%s",
		cfg.TemporalAddress, cfg.TemporalTaskQueue, cfg.LLMProviders, cfg.TruncateStrategy)
	return w.Run(worker.InterruptCh())
}
