package main

import (
	"context"
	"fmt"
	"os"

	"todo_webapp/internal/config"
	"todo_webapp/internal/db"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/migrate"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	runner := migrate.New(dbPool, cfg.MigrationsDir)
	ctx := context.Background()

	switch command {
	case "up":
		if err := runner.Run(ctx); err != nil {
			logger.Fatal("migration failed", "error", err)
		}
	case "status":
		st, err := runner.Status(ctx)
		if err != nil {
			logger.Fatal("migration status failed", "error", err)
		}
		printStatus(st)
	default:
		fmt.Println("Usage:")
		fmt.Println("  migrate         - run all pending migrations")
		fmt.Println("  migrate up      - run all pending migrations")
		fmt.Println("  migrate status  - show migration status")
		os.Exit(1)
	}
}

func printStatus(st *migrate.Status) {
	fmt.Println("Executed migrations:")
	if len(st.Executed) == 0 {
		fmt.Println("  (none)")
	}
	for _, name := range st.Executed {
		fmt.Println("  -", name)
	}

	fmt.Println("Pending migrations:")
	if len(st.Pending) == 0 {
		fmt.Println("  (none)")
	}
	for _, name := range st.Pending {
		fmt.Println("  -", name)
	}
}
