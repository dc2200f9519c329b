package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"soldo/internal/domain/user"
	"soldo/internal/infrastructure/postgres"
	"soldo/internal/shared/auth"
	"soldo/internal/shared/config"
)

const usage = `Soldo Admin CLI - Management commands for the Soldo API

Usage:
  admin <command> [options]

Commands:
  create-user   Create a user directly, bypassing the HTTP API
  migrate       Apply the database schema

Examples:
  # Create a user
  admin create-user --email=ops@example.com --password=S3cretPass --name="Ops"

  # Apply pending schema changes
  admin migrate
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage, "\n")
		os.Exit(1)
	}

	switch command := os.Args[1]; command {
	case "create-user":
		runCreateUser(os.Args[2:])
	case "migrate":
		runMigrate()
	case "help", "-h", "--help":
		fmt.Print(usage, "\n")
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage, "\n")
		os.Exit(1)
	}
}

func runCreateUser(args []string) {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	email := fs.String("email", "", "Email address for the new user")
	password := fs.String("password", "", "Password for the new user")
	name := fs.String("name", "", "Display name (optional)")
	fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Println("--email and --password are required")
		fs.Usage()
		os.Exit(1)
	}
	if !user.IsValidEmail(*email) {
		log.Fatalf("Invalid email address: %s", *email)
	}
	if errs := user.PasswordErrors(*password); len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("password: %s\n", e)
		}
		os.Exit(1)
	}

	db := mustConnect()
	defer db.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	params := user.CreateParams{Email: *email, PasswordHash: hash}
	if *name != "" {
		params.Name = name
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := postgres.NewUserRepository(db).Create(ctx, params)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	fmt.Printf("Created user %s (%s)\n", created.ID, created.Email)
}

func runMigrate() {
	db := mustConnect()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	fmt.Println("Database schema up to date")
}

func mustConnect() *postgres.DB {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}
