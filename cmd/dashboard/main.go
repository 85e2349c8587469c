package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"CryptoBoard/internal/collector"
	"CryptoBoard/internal/config"
	"CryptoBoard/internal/dashboard"
	"CryptoBoard/internal/model"
	"CryptoBoard/internal/notifier"
	"CryptoBoard/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CryptoBoard starting...")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

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
	loc, _ := cfg.Location()

	// Init fetcher
	var fetcher collector.Fetcher
	if os.Getenv("MOCK_MARKET") == "true" {
		fetcher = &collector.MockFetcher{}
	} else {
		fetcher = collector.NewCoinGeckoFetcher(cfg.Market.BaseURL, collector.CoinGeckoOptions{
			APIKey:          cfg.Market.APIKey,
			ProxyURL:        cfg.Proxy,
			Timeout:         time.Duration(cfg.Market.RequestTimeoutSec) * time.Second,
			RateLimitPerSec: *cfg.Market.RateLimitPerSec,
			RateLimitBurst:  cfg.Market.RateLimitBurst,
		})
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init dashboard
	dash := dashboard.NewController(fetcher, dashboard.Options{
		Limit:           cfg.Market.Limit,
		VsCurrency:      cfg.Market.VsCurrency,
		RefreshInterval: cfg.Dashboard.RefreshInterval,
		TimeFrame:       cfg.TimeFrame(),
		ShowRSI:         *cfg.Dashboard.ShowRSI,
		RSIPeriod:       cfg.Dashboard.RSIPeriod,
		Location:        loc,
	}, dashboard.WithUpdateHook(func(v model.DashboardView) {
		os.Stdout.WriteString(notifier.FormatDashboard(v))
	}))

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := dash.Start(ctx); err != nil {
		log.Fatalf("[FATAL] start dashboard: %v", err)
	}
	defer dash.Stop()

	var srv *server.Server
	if cfg.Server.Addr != "" {
		srv = server.New(cfg.Server.Addr, server.NewHandler(dash))
		srv.Start()
	}

	log.Println("[INFO] CryptoBoard is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	if srv != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[ERROR] %v", err)
		}
		done()
	}
	cancel()
	log.Println("[INFO] CryptoBoard stopped")
}
