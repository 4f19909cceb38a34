package main

import (
	"log"

	"github.com/Omthube23/fastapi-elk-project/config"
	"github.com/Omthube23/fastapi-elk-project/database"
)

func main() {
	// Load environment variables
	if err := config.LoadEnvVars(); err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.StoreDriver == config.DriverMemory {
		log.Println("STORE_DRIVER is memory, nothing to migrate")
		return
	}

	db, err := database.ConnectToDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Printf("Running %s migrations...", cfg.StoreDriver)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("%v", err)
	}

	log.Println("Database migrated successfully!")
}
