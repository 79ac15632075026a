package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/raine/telegram-sushi-bot/internal/assign"
	"github.com/raine/telegram-sushi-bot/internal/storage"
)

func main() {
	var (
		catalogPath string
		seed        int64
	)
	flag.StringVar(&catalogPath, "catalog", "menu.json", "Catalog file")
	flag.Int64Var(&seed, "seed", 0, "Random seed (defaults to the current time)")
	flag.Parse()

	participants := flag.Args()
	if len(participants) == 0 {
		fmt.Println("Usage: draw [-catalog menu.json] [-seed N] name...")
		os.Exit(2)
	}

	seedSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})
	if !seedSet {
		seed = time.Now().UnixNano()
	}

	catalog, err := storage.NewCatalogFile(catalogPath).Load()
	if err != nil {
		fmt.Printf("Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	result, err := assign.Assign(catalog, participants, seed)
	if err != nil {
		fmt.Printf("Failed to draw: %v\n", err)
		os.Exit(1)
	}

	for _, a := range result {
		fmt.Printf("%s: %s\n", a.Participant, a.Entry.Name)
	}
	fmt.Printf("\nseed: %d\n", seed)
}
