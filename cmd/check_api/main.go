package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/tyrexapp/tyrex_client/internal/infrastructure/api"
)

// Connectivity probe: fetches the market listings and, when a token is
// present, the profile snapshot.
func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("TYREX_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000/api/v1"
	}

	client := api.NewClient(baseURL, os.Getenv("TYREX_TOKEN"), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	types, err := client.GetMarketTypes(ctx)
	if err != nil {
		fmt.Printf("Market types fetch failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Market types: %d\n", len(types))
	for _, t := range types {
		fmt.Printf("  %s  %s sats  apy=%s%%  available=%s  active=%v\n",
			t.Name, t.NominalSats, t.ClientAPY, t.Available, t.IsActive)
	}

	if os.Getenv("TYREX_TOKEN") == "" {
		fmt.Println("No TYREX_TOKEN set, skipping profile check")
		return
	}

	profile, err := client.GetProfile(ctx)
	if err != nil {
		fmt.Printf("Profile fetch failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Profile: walletUsd=%s cards=%d\n",
		profile.Balance.WalletUSD, len(profile.Cards))
}
