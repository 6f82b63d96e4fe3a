// Command agentd runs the career agent service: the action endpoints backing
// the voice client, served over HTTP in front of the jobs database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"quest/jobs"
	"quest/log"
	"quest/server"
	"quest/shutdown"
)

func main() {
	demo := flag.Bool("demo", false, "serve built-in sample jobs instead of Postgres")
	flag.Parse()

	// Optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logDir, err := log.ResolveDir("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "log path: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logDir)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "log init: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	cfg := server.LoadConfig()

	store, cleanup, err := openStore(cfg, *demo)
	if err != nil {
		log.Errorf("store: %v", err)
		fmt.Fprintf(os.Stderr, "agentd: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.NewHandler(store, cfg).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("agentd listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	shutdown.Notify(stop)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("serve: %v", err)
			os.Exit(1)
		}
	case sig := <-stop:
		log.Infof("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}
}

func openStore(cfg server.Config, demo bool) (jobs.Store, func(), error) {
	if demo || cfg.DatabaseURL == "" {
		if !demo {
			log.Warnf("DATABASE_URL not set, serving sample jobs")
		}
		return jobs.NewMemory(sampleJobs()), func() {}, nil
	}

	pg, err := jobs.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pg.Ping(ctx); err != nil {
		pg.Close()
		return nil, nil, fmt.Errorf("ping jobs database: %w", err)
	}
	return pg, func() { pg.Close() }, nil
}

func sampleJobs() []jobs.Job {
	now := time.Now()
	return []jobs.Job{
		{ID: "d1", Title: "Fractional CFO", Company: "Northwind Robotics", Location: "London",
			Salary: "£900/day", URL: "https://jobs.example/d1", ExecutiveTitle: "CFO",
			PostedDate: now.AddDate(0, 0, -1)},
		{ID: "d2", Title: "Interim Chief Marketing Officer", Company: "Bluebird Health", Location: "Manchester",
			Remote: true, Salary: "£750/day", URL: "https://jobs.example/d2", ExecutiveTitle: "CMO",
			PostedDate: now.AddDate(0, 0, -2)},
		{ID: "d3", Title: "Fractional CTO", Company: "Kestrel Analytics", Location: "Remote",
			Remote: true, URL: "https://jobs.example/d3", ExecutiveTitle: "CTO",
			PostedDate: now.AddDate(0, 0, -3)},
		{ID: "d4", Title: "Operations Director (part-time)", Company: "Harbor Foods", Location: "Leeds",
			Salary: "£600/day", URL: "https://jobs.example/d4", ExecutiveTitle: "COO",
			PostedDate: now.AddDate(0, 0, -5)},
		{ID: "d5", Title: "Chief People Officer", Company: "Fenwick Studios", Location: "London",
			Remote: true, URL: "https://jobs.example/d5", ExecutiveTitle: "CHRO",
			PostedDate: now.AddDate(0, 0, -8)},
	}
}
