package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Seed database with data (dev, test)"
}

func (c *SeedCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: dev, test")
	}
	subcmd := args[0]

	var files []string
	switch subcmd {
	case "dev":
		files = []string{
			"internal/database/seeds/dev_inventory.sql",
		}
	case "test":
		files = []string{
			"internal/database/seeds/dev_inventory.sql",
			"internal/database/seeds/test_transactions.sql",
		}
	default:
		return fmt.Errorf("unknown subcommand: %s", subcmd)
	}

	db, err := sql.Open("pgx", databaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	PrintInfo("Running %s seeds...", subcmd)
	for _, file := range files {
		if err := c.executeFile(db, file); err != nil {
			return err
		}
	}

	PrintSuccess("Seeds completed successfully")
	return nil
}

func (c *SeedCommand) executeFile(db *sql.DB, filepath string) error {
	PrintInfo("Executing %s...", filepath)

	content, err := os.ReadFile(filepath) // #nosec G304 - paths are fixed above
	if err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", filepath, err)
	}

	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute seed file %s: %w", filepath, err)
	}

	return nil
}
