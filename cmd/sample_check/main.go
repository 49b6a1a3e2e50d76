package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/raushankrgupta/price-watcher/config"
	"github.com/raushankrgupta/price-watcher/scrapers"
)

func main() {
	config.LoadConfig()

	urls := os.Args[1:]
	if len(urls) == 0 {
		fmt.Println("Usage: sample_check <product_url> [<product_url> ...]")
		os.Exit(1)
	}

	service := scrapers.NewService()

	for _, u := range urls {
		fmt.Printf("Sampling URL: %s\n", u)

		ctx, cancel := context.WithTimeout(context.Background(), config.SampleTimeout)
		sample, err := service.Sample(ctx, u)
		cancel()
		if err != nil {
			log.Printf("Failed to sample %s: %v\n", u, err)
			continue
		}

		b, _ := json.MarshalIndent(sample, "", "  ")
		fmt.Printf("Sample: %s\n", string(b))
		if sample.Price == nil {
			fmt.Println("No price found on page")
		}
		fmt.Println("--------------------------------------------------")

		time.Sleep(time.Second)
	}
}
