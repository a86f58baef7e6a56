package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JJansen36/plan/auth"
	"github.com/JJansen36/plan/cliparse"
	"github.com/JJansen36/plan/planning"
	"github.com/JJansen36/plan/router"
	"github.com/JJansen36/plan/store"
)

func main() {
	// Local development keeps credentials in .env; absence is fine.
	_ = godotenv.Load()

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect the tabular store
	var st store.Store
	switch cfg.StoreBackend {
	case "rest":
		st = store.NewREST(cfg.StoreURL, cfg.StoreKey)
	default:
		st, err = store.Open(cfg.StoreBackend, cfg.StoreURL)
		if err != nil {
			slog.Error("store connection failed", "backend", cfg.StoreBackend, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("store ready", "backend", cfg.StoreBackend)

	authClient := auth.NewClient(cfg.AuthURL, cfg.AuthKey)

	ctrl := planning.NewController(st, cfg.RangeDays, planning.Thresholds{
		Warn: cfg.WarnThreshold,
		Bad:  cfg.BadThreshold,
	})

	mux := router.NewRouter(st, authClient, ctrl)

	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	slog.Info("Listening", "port", cfg.Port, "range_days", cfg.RangeDays)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
