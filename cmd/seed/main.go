package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/joejung/mira/auth"
	"github.com/joejung/mira/database"
	"github.com/joejung/mira/models"
	"github.com/joejung/mira/store"
	"github.com/joho/godotenv"
)

var chipsets = []string{
	"Snapdragon 8 Gen 3", "Snapdragon 8 Gen 2", "Dimensity 9300", "Dimensity 8300",
	"Exynos 2400", "Bionic A17 Pro", "Kirin 9000S", "Tensor G3",
}

var statuses = []models.Status{
	models.StatusOpen,
	models.StatusInProgress,
	models.StatusResolved,
	models.StatusClosed,
	models.StatusReopened,
}

var priorities = []models.Priority{
	models.PriorityLow,
	models.PriorityMedium,
	models.PriorityHigh,
	models.PriorityCritical,
}

var titles = []string{
	"Overheating during 5G benchmark",
	"Camera app crashes on video switch",
	"WiFi 6E throughput unstable",
	"Bluetooth latency > 200ms",
	"GPU artifacting in Genshin Impact",
	"Battery drain excessive in standby",
	"NPU inference failure",
	"Display flickering at 120Hz",
	"Kernel panic on boot",
	"Touch sampling rate drop",
	"Audio distortion at max volume",
	"Fingerprint sensor timeout",
	"USB-C charging slow",
	"VoLTE call drop",
	"GPS accuracy drift",
	"Memory leak in launcher",
	"App crash on split screen",
	"Notification delay > 5s",
	"Biometric unlock failure",
	"Screen rotation lag",
}

func strptr(s string) *string { return &s }

func pick[T any](arr []T) T {
	return arr[rand.Intn(len(arr))]
}

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

	fmt.Println("🌱 Seeding demo data...")

	st := store.New(db)
	creds := auth.New([]byte("seed-only"), time.Hour)

	// Users
	users := []struct {
		email, name, password string
		role                  models.Role
	}{
		{"admin@mira.com", "Admin User", "hashedpassword", models.RoleAdmin},
		{"jane@mira.com", "Jane Doe", "pw", models.RoleDeveloper},
		{"bob@mira.com", "Bob Smith", "pw", models.RoleDeveloper},
	}

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		hash, err := creds.HashPassword(u.password)
		if err != nil {
			log.Fatalf("❌ Failed to hash password: %v", err)
		}
		user := &models.User{
			Email:        u.email,
			PasswordHash: hash,
			Name:         strptr(u.name),
			Role:         u.role,
		}
		if err := st.Users.Insert(user); err != nil {
			log.Fatalf("❌ Failed to create user %s: %v", u.email, err)
		}
		ids = append(ids, user.ID)
	}
	adminID := ids[0]

	// Project
	project := &models.Project{
		Name:        "MIRA Core",
		Key:         "MIRA",
		Description: strptr("Main validated chipset project"),
	}
	if err := st.Projects.Insert(project); err != nil {
		log.Fatalf("❌ Failed to create project: %v", err)
	}

	// Issues, spread across statuses/priorities with some left unassigned
	assignees := []*uint{&ids[0], &ids[1], &ids[2], nil, nil}
	count := 1000
	for i := 0; i < count; i++ {
		issue := &models.Issue{
			Title:       fmt.Sprintf("%s [Case %d]", pick(titles), 10000+i),
			Description: strptr("Auto-generated load test issue."),
			Status:      pick(statuses),
			Priority:    pick(priorities),
			ProjectID:   project.ID,
			ReporterID:  adminID,
			AssigneeID:  pick(assignees),
			Chipset:     strptr(pick(chipsets)),
		}
		if err := st.Issues.Insert(issue); err != nil {
			log.Fatalf("❌ Failed to create issue: %v", err)
		}

		if i > 0 && i%100 == 0 {
			fmt.Printf("Created %d issues...\n", i)
		}
	}

	fmt.Println("✅ Seeding complete!")
}
