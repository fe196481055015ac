// cmd/seeder/main.go
package main

import (
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/brandcasthq/brandcast-backend/internal/config"
	"github.com/brandcasthq/brandcast-backend/internal/db"
)

func main() {
	cfg := config.Load()

	conn, err := db.Connect(cfg.DatabaseURL())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedFiles := []string{
		"migrations/schema.sql",
		"seed/users.sql",
		"seed/brands.sql",
		"seed/posts.sql",
	}

	for _, file := range seedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("failed to read %s: %v", file, err)
		}

		if _, err := conn.Exec(string(content)); err != nil {
			log.Fatalf("failed to execute %s: %v", file, err)
		}
		fmt.Printf("Seeded: %s\n", file)
	}

	fmt.Println("Database seeding completed successfully!")
}
