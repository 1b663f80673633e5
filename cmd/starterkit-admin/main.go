// Package main is the entry point for the StarterKit admin CLI.
// This tool provides administrative commands for managing user accounts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/prn-tf/starterkit/internal/config"
	"github.com/prn-tf/starterkit/internal/logging"
	"github.com/prn-tf/starterkit/internal/repository/factory"
	"github.com/prn-tf/starterkit/internal/service"
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
		fmt.Printf("StarterKit Admin CLI\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)

	case "user":
		if err := runUserCommand(os.Args[2:]); err != nil {
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

func runUserCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: user <create|list|activate|deactivate> [options]")
	}

	sub := args[0]
	fs := flag.NewFlagSet("user "+sub, flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")

	var email, password string
	var id int64

	switch sub {
	case "create":
		fs.StringVar(&email, "email", "", "email address (required)")
		fs.StringVar(&password, "password", "", "password (required)")
	case "list":
		// no extra flags
	case "activate", "deactivate":
		fs.Int64Var(&id, "id", 0, "user id (required)")
	default:
		return fmt.Errorf("unknown user subcommand: %s", sub)
	}

	if err := fs.Parse(args[1:]); err != nil {
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

	if err := result.DB.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	users := service.NewUserService(result.Users, logger)

	switch sub {
	case "create":
		if email == "" || password == "" {
			return fmt.Errorf("-email and -password are required")
		}
		output, err := users.Register(ctx, service.RegisterInput{Email: email, Password: password})
		if err != nil {
			return err
		}
		fmt.Printf("Created user %d (%s)\n", output.User.ID, output.User.Email)

	case "list":
		output, err := users.List(ctx, service.ListUsersInput{Limit: 100})
		if err != nil {
			return err
		}
		fmt.Printf("%-6s %-40s %-8s %s\n", "ID", "EMAIL", "ACTIVE", "CREATED")
		for _, u := range output.Users {
			fmt.Printf("%-6d %-40s %-8s %s\n",
				u.ID, u.Email, strconv.FormatBool(u.IsActive), u.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Printf("Total: %d\n", output.Total)

	case "activate", "deactivate":
		if id == 0 {
			return fmt.Errorf("-id is required")
		}
		if err := users.SetActive(ctx, id, sub == "activate"); err != nil {
			return err
		}
		fmt.Printf("User %d %sd\n", id, sub)
	}

	return nil
}

func printUsage() {
	fmt.Println(`StarterKit Admin CLI

Usage:
  starterkit-admin <command> [options]

Commands:
  user create -email <email> -password <password>   Create a user account
  user list                                         List user accounts
  user activate -id <id>                            Activate a user account
  user deactivate -id <id>                          Deactivate a user account
  version                                           Show version information
  help                                              Show this help

Options:
  -config <path>    Path to config file (default: ./config.yaml search path)`)
}
