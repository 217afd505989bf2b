package main

import (
	"fmt"

	"searchlight/db"
	"searchlight/internal/logger"
)

func main() {
	schema, err := db.SchemaSQL()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to read embedded schema")
	}

	fmt.Println("-- Searchlight database schema")
	fmt.Println("-- Copy everything below and run it in your database's SQL editor.")
	fmt.Println("-- Or apply it with: go run ./cmd/migrator")
	fmt.Println()
	fmt.Print(schema)
}
