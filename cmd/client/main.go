package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tyrexapp/tyrex_client/internal/infrastructure/api"
	"github.com/tyrexapp/tyrex_client/internal/infrastructure/logger"
	"github.com/tyrexapp/tyrex_client/internal/infrastructure/pricefeed"
	"github.com/tyrexapp/tyrex_client/internal/usecase"
	"github.com/tyrexapp/tyrex_client/internal/web"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"backend"`
	PriceFeed struct {
		WSEndpoint string `yaml:"ws_endpoint"`
	} `yaml:"price_feed"`
	Polling struct {
		RefreshMs int `yaml:"refresh_ms"`
	} `yaml:"polling"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	// 1. Load Config (.env holds the bearer token / initData, never the yaml)
	_ = godotenv.Load()

	cfg, err := loadConfig("config/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Init Backend Client
	backend := api.NewClient(cfg.Backend.BaseURL, os.Getenv("TYREX_TOKEN"), log)
	if initData := os.Getenv("TYREX_INIT_DATA"); initData != "" {
		if _, err := backend.Login(ctx, initData); err != nil {
			log.Error("Login failed, continuing unauthenticated", zap.Error(err))
		}
	}

	// 4. Init Store
	store := usecase.NewStoreService(log)

	// 5. Connect Price Feed
	feed := pricefeed.NewBinanceFeed(cfg.PriceFeed.WSEndpoint, log)
	feed.OnPriceUpdate(func(price float64) {
		store.IngestPriceTick(price)
	})
	if err := feed.Connect(); err != nil {
		// The store renders with server override prices until the feed is up.
		log.Error("Price feed unavailable at startup", zap.Error(err))
	}
	defer feed.Close()

	// 6. Start Refresh Loop
	refresher := usecase.NewRefresher(backend, store,
		time.Duration(cfg.Polling.RefreshMs)*time.Millisecond, log)
	refresher.Start(ctx)
	defer refresher.Stop()

	// 7. Init Web Server
	port := cfg.Server.Port
	if port == 0 {
		port = 8080 // Default
	}
	server := web.NewServer(port, store, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// 8. Wait for Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	cancel()
	server.Shutdown(context.Background())
}
