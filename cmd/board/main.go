package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TickerBoard/internal/board"
	"TickerBoard/internal/collector"
	"TickerBoard/internal/config"
	"TickerBoard/internal/journal"
	"TickerBoard/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TickerBoard starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	fetchTimeout := time.Duration(cfg.Refresh.FetchTimeoutSec) * time.Second
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, fetchTimeout)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy, fetchTimeout)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	if ttl := time.Duration(*cfg.Refresh.CacheTTLSec) * time.Second; ttl > 0 {
		fetcher = collector.NewCachingFetcher(fetcher, ttl)
	}

	// Init fetch journal
	var jnl journal.Journal
	if cfg.Database.SQLitePath != "" {
		sj, err := journal.NewSQLiteJournal(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite journal failed, using noop: %v", err)
			jnl = journal.NewNoopJournal()
		} else {
			jnl = sj
			defer sj.Close()
		}
	} else {
		jnl = journal.NewNoopJournal()
	}

	// Init adapter and presentation
	adapter := collector.NewAdapter(fetcher, jnl)
	brd := board.NewBoard()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, adapter, brd, scheduler.Config{
		Symbols:       cfg.Symbols,
		PriceInterval: time.Duration(cfg.Refresh.PriceIntervalMs) * time.Millisecond,
		ChartInterval: time.Duration(cfg.Refresh.ChartIntervalMs) * time.Millisecond,
	})
	retention := time.Duration(cfg.Maintenance.RetentionDays) * 24 * time.Hour
	if err := sched.RegisterMaintenance(cfg.Maintenance.PruneCron, jnl, retention); err != nil {
		log.Fatalf("[FATAL] register maintenance: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: open a detail view on start
	if v := os.Getenv("WATCH_DETAIL"); v != "" {
		log.Printf("[INFO] WATCH_DETAIL enabled, opening detail view for %s", v)
		sched.OpenDetail(v)
	}

	log.Println("[INFO] TickerBoard is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] TickerBoard stopped")
}
