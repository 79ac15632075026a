package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/raine/telegram-sushi-bot/internal/menu"
	"github.com/raine/telegram-sushi-bot/internal/scrape"
	"github.com/raine/telegram-sushi-bot/internal/storage"
)

func main() {
	var (
		url    string
		file   string
		out    string
		strict bool
	)
	flag.StringVar(&url, "url", scrape.DefaultMenuURL, "Menu page URL")
	flag.StringVar(&file, "file", "", "Read the menu page from a local HTML file instead of fetching it")
	flag.StringVar(&out, "o", "", "Save the catalog to this path")
	flag.BoolVar(&strict, "strict", false, "Fail on sections or items with missing nodes")
	flag.Parse()

	var document string
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Printf("Failed to read %s: %v\n", file, err)
			os.Exit(1)
		}
		document = string(data)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		body, err := scrape.NewClient(url).Fetch(ctx)
		if err != nil {
			fmt.Printf("Failed to fetch menu: %v\n", err)
			os.Exit(1)
		}
		document = body
	}

	extraction, err := (&menu.Extractor{Strict: strict}).Extract(document)
	if err != nil {
		fmt.Printf("Failed to extract menu: %v\n", err)
		os.Exit(1)
	}

	catalog, err := menu.BuildCatalog(extraction.Sections)
	if err != nil {
		fmt.Printf("Failed to classify menu: %v\n", err)
		os.Exit(1)
	}

	for _, e := range catalog {
		fmt.Printf("%-12s %s\n", e.Category, e.Name)
	}
	fmt.Printf("\n%d entries", len(catalog))
	if extraction.SkippedSections > 0 || extraction.SkippedItems > 0 {
		fmt.Printf(" (skipped %d sections, %d items)", extraction.SkippedSections, extraction.SkippedItems)
	}
	fmt.Println()

	if out != "" {
		if err := storage.NewCatalogFile(out).Save(catalog); err != nil {
			fmt.Printf("Failed to save catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✓ Saved to %s\n", out)
	}
}
