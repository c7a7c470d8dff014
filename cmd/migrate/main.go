package main

import (
	"flag"
	"fmt"
	"os"
	"wonderchain/internal/config"
	"wonderchain/internal/db"
)

func main() {
	steps := flag.Int("steps", 0, "number of migrations to apply, negative values roll back, 0 applies all")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	version, err := db.Migrate(cfg.MigrationsPath, cfg.PostgresqlURL, *steps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Schema version: %d\n", version)
}
