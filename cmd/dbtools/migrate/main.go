// cmd/dbtools/migrate/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/codr1/Rosterboard/internal/config"
	"github.com/codr1/Rosterboard/internal/db"
)

func main() {
	var (
		dbPath     = flag.String("db", "", "Path to SQLite database (defaults to the configured activity log)")
		configPath = flag.String("config", config.DefaultConfigPath, "Path to app config, used when -db is empty")
		command    = flag.String("command", "", "Command to run (up, down, version)")
	)
	flag.Parse()

	if *command == "" {
		flag.Usage()
		os.Exit(1)
	}

	if *dbPath == "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		*dbPath = cfg.Database.Filename
	}

	// Create database directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	out, err := db.Migrate(ctx, *dbPath, *command)
	if err != nil {
		log.Fatalf("Migration %s failed: %v", *command, err)
	}
	fmt.Println(out)
}
