package main

import (
	"log"
	"os"

	"spinnerbot/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down]")
	}

	config.ConnectDB()

	switch os.Args[1] {
	case "up":
		config.ExecuteMigrations()
	case "down":
		config.RollbackMigration()
	default:
		log.Fatalf("Unknown command %q, expected up or down", os.Args[1])
	}
}
