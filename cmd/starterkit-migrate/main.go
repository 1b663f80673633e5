// Package main is the entry point for the StarterKit database migration tool.
// It manages schema migrations for both the SQLite and PostgreSQL backends.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/prn-tf/starterkit/internal/config"
	"github.com/prn-tf/starterkit/internal/logging"
	"github.com/prn-tf/starterkit/internal/repository/factory"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version":
		fmt.Printf("StarterKit Migration Tool\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "up", "status":
		if err := run(command, os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.MustLoad(*configPath)
	logger := logging.New(cfg.Logging)

	ctx := context.Background()

	result, err := factory.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer result.DB.Close()

	switch command {
	case "up":
		if err := result.DB.Migrate(ctx); err != nil {
			return err
		}
		version, err := result.DB.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Migrations applied, current version: %d\n", version)

	case "status":
		version, err := result.DB.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Driver:  %s\n", cfg.Database.Driver)
		fmt.Printf("Version: %d\n", version)
	}

	return nil
}

func printUsage() {
	fmt.Println(`StarterKit Migration Tool

Usage:
  starterkit-migrate <command> [options]

Commands:
  up          Apply all pending migrations
  status      Show current migration version
  version     Show version information
  help        Show this help

Options:
  -config <path>    Path to config file (default: ./config.yaml search path)`)
}
