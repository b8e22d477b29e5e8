package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"tilecraft.ai/internal/persistence/library"
	persistlog "tilecraft.ai/internal/persistence/log"
	"tilecraft.ai/internal/sim/catalogs"
	"tilecraft.ai/internal/sim/tuning"
	"tilecraft.ai/internal/sim/world"
	"tilecraft.ai/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		worldID    = flag.String("world", "W1", "world id")
		configDir  = flag.String("configs", "./configs", "config directory")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite blueprint library")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		logger.Fatalf("load tuning: %v", err)
	}

	worldDir := filepath.Join(*dataDir, "worlds", *worldID)
	_ = os.MkdirAll(worldDir, 0o755)

	w, err := world.New(world.WorldConfig{
		ID:             *worldID,
		TickRateHz:     tune.TickRateHz,
		BoundaryR:      tune.WorldBoundaryR,
		CurrencyKey:    tune.Blueprint.CurrencyKey,
		StarterBalance: tune.Blueprint.StarterBalance,
		FreePlacement:  tune.Blueprint.FreePlacement,
		DebugFreeCost:  tune.Blueprint.DebugFreeCost,
	}, cats)
	if err != nil {
		logger.Fatalf("world: %v", err)
	}

	if !*disableDB {
		lib, err := library.Open(filepath.Join(worldDir, "library.db"))
		if err != nil {
			logger.Fatalf("open blueprint library: %v", err)
		}
		defer lib.Close()
		w.SetLibrary(lib)
	}

	placeLog := persistlog.NewPlacementLogger(worldDir)
	defer placeLog.Close()
	w.SetAuditor(placeLog)

	ctx, cancel := signalContext()
	defer cancel()

	go func() {
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("world stopped: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")

		// Minimal Prometheus exposition format.
		fmt.Fprintf(rw, "# HELP tilecraft_world_tick Current world tick.\n")
		fmt.Fprintf(rw, "# TYPE tilecraft_world_tick gauge\n")
		fmt.Fprintf(rw, "tilecraft_world_tick{world=%q} %d\n", *worldID, w.Tick())
	})
	mux.HandleFunc("/v1/ws", ws.NewServer(w, logger).Handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
