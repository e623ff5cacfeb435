package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tyrexapp/tyrex_client/internal/infrastructure/pricefeed"
)

// Streams BTC/USD ticks to stdout until interrupted.
func main() {
	wsURL := os.Getenv("TYREX_FEED_URL")

	feed := pricefeed.NewBinanceFeed(wsURL, nil)
	feed.OnPriceUpdate(func(price float64) {
		fmt.Printf("BTC/USD %.2f\n", price)
	})

	if err := feed.Connect(); err != nil {
		fmt.Printf("Connect failed: %v\n", err)
		os.Exit(1)
	}
	defer feed.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}
