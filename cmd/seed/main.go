// Command seed fills the configured database with demo data.
package main

import (
	"flag"
	"log"

	"menagerie/internal/config"
	"menagerie/internal/database"
	"menagerie/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	animals := flag.Int("animals", 3, "animals per user")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, *users, *animals); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
