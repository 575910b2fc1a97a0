package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"wormarena/server"
)

func main() {
	addr := envOr("PORT", ":8080")
	if addr[0] != ':' {
		addr = ":" + addr
	}
	adminToken := os.Getenv("ADMIN_TOKEN")
	if adminToken == "" {
		panic("ADMIN_TOKEN must be set to a non-empty value")
	}

	logger, err := server.InitLogger(os.Getenv("LOG_FILE"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	clock := server.NewSystemClock()
	metrics := &server.Metrics{}
	events := server.NewEventLog(500)

	var seedCounter int64 = time.Now().UnixNano()
	seedSource := func() int64 { return atomic.AddInt64(&seedCounter, 1) }

	manager := server.NewRoomManager(clock, metrics, events, logger, 50*time.Millisecond, seedSource)
	registry := server.NewSessionRegistry(manager, metrics, clock, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.HandleWS(registry))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/admin/kick", adminOnly(adminToken, server.HandleAdminKick(manager)))
	mux.HandleFunc("/admin/ban", adminOnly(adminToken, server.HandleAdminBan(manager)))
	mux.HandleFunc("/admin/rooms/", adminOnly(adminToken, server.HandleAdminCloseRoom(manager)))
	mux.HandleFunc("/admin/metrics", adminOnly(adminToken, server.HandleAdminMetrics(metrics)))

	httpServer := &http.Server{Addr: addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Sugar().Infof("listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		runUntilDone(gctx, registry.StartHeartbeat)
		return nil
	})
	g.Go(func() error {
		runUntilDone(gctx, registry.StartIdleSweep)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Sugar().Errorf("shutdown: %v", err)
	}
}

// runUntilDone adapts a stop-channel-driven loop (server package's
// goroutines) to a context, so main.go's errgroup can jointly await every
// background task under one cancellable context.
func runUntilDone(ctx context.Context, loop func(stop <-chan struct{})) {
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		loop(stop)
		close(done)
	}()
	<-ctx.Done()
	close(stop)
	<-done
}

func adminOnly(token string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
