package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joejung/mira/database"
	"github.com/joejung/mira/models"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Wipes all rows from every table. Dev utility only.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := database.Open(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	fmt.Println("Start cleanup...")

	// Children first so foreign keys never dangle
	tables := []struct {
		name  string
		model interface{}
	}{
		{"comments", &models.Comment{}},
		{"issues", &models.Issue{}},
		{"projects", &models.Project{}},
		{"users", &models.User{}},
	}

	for _, t := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(t.model).Error; err != nil {
			log.Fatalf("Failed to delete %s: %v", t.name, err)
		}
		fmt.Printf("✅ Deleted all %s\n", t.name)
	}

	fmt.Println("✅ Cleanup complete!")
}
