package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"viralscout/internal/analytics"
	"viralscout/internal/apify"
	"viralscout/internal/bot"
	"viralscout/internal/delivery"
	"viralscout/internal/metrics"
	"viralscout/internal/search"
	"viralscout/internal/server"
	"viralscout/internal/session"
	"viralscout/internal/tracking"
)

func main() {
	// Load .env if present; variables may also be set directly.
	_ = godotenv.Load()

	log := newLogger()
	defer log.Sync() //nolint:errcheck

	apifyClient, err := apify.New(os.Getenv("APIFY_API_TOKEN"), log.Named("apify"))
	if err != nil {
		log.Fatal("provider client init failed", zap.Error(err))
	}

	store := session.NewStore(session.DefaultCapacity)
	tracker := tracking.NewTracker()
	events := analytics.NewEmitter(
		os.Getenv("MASTERMIND_API_URL"),
		os.Getenv("MASTERMIND_BOT_KEY"),
		log.Named("analytics"),
	)
	orch := search.NewOrchestrator(apifyClient, log.Named("search"))
	pages := delivery.NewController(store, delivery.DefaultBatchSize)

	tg, err := bot.New(
		os.Getenv("TELEGRAM_BOT_TOKEN"),
		orch, store, pages, tracker, events,
		log.Named("bot"),
	)
	if err != nil {
		log.Fatal("bot init failed", zap.Error(err))
	}

	stats := server.New(envInt("PORT", 3000), tracker, log.Named("server"))
	prom := metrics.Start(envInt("METRICS_PORT", 9090))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tg.Run(ctx)
	})
	g.Go(func() error {
		return stats.ListenAndServe()
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx := context.Background()
		_ = prom.Stop(sctx)
		return stats.Stop(sctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("shutdown with error", zap.Error(err))
	}
	log.Info("shutdown complete")
}

func newLogger() *zap.Logger {
	if os.Getenv("DEBUG") != "" {
		log, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return log
	}
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return log
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
