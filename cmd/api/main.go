package main

import (
	"log"
	"net/http"
	"time"

	"litscan/internal/api"
	"litscan/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	if err := run(config.Load()); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config) error {
	srv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           api.NewServer(cfg).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("litscan api listening on %s llm_providers=%q papers_dir=%s",
		cfg.APIAddr, cfg.LLMProviders, cfg.PapersRoot)
	return srv.ListenAndServe()
}
