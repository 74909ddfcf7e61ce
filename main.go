package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joejung/mira/auth"
	"github.com/joejung/mira/database"
	"github.com/joejung/mira/handlers"
	"github.com/joejung/mira/natsserver"
	"github.com/joejung/mira/services"
	"github.com/joejung/mira/store"
	"github.com/joho/godotenv"
)

const tokenTTL = 24 * time.Hour

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	db, err := database.Open(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
	defer database.Close(db)

	// JWT signing key, loaded once for the whole process
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "default-dev-secret-change-me"
		log.Println("⚠️ JWT_SECRET not set, using dev default")
	}
	authenticator := auth.New([]byte(jwtSecret), tokenTTL)

	// Start embedded NATS server for the event bus
	natsPort := 4233
	if p := os.Getenv("NATS_PORT"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			natsPort = parsed
		}
	}
	natsServer, err := natsserver.New(natsserver.Config{
		Port:       natsPort,
		MaxPayload: 1024 * 1024,
	})
	if err != nil {
		log.Fatalf("❌ Failed to start NATS server: %v", err)
	}
	defer natsServer.Shutdown()

	// Event hub for WebSocket streaming of issue/comment mutations
	eventHub := services.NewEventHub(natsServer.Conn())
	if err := eventHub.Start(); err != nil {
		log.Fatalf("❌ Failed to start event hub: %v", err)
	}
	go eventHub.Run()
	log.Println("📺 Event hub initialized")

	// Stores and services
	st := store.New(db)
	authService := services.NewAuthService(st.Users, authenticator)
	projectService := services.NewProjectService(st.Projects)
	issueService := services.NewIssueService(st.Issues, st.Projects, st.Users, natsServer.Conn())
	commentService := services.NewCommentService(st.Comments, st.Issues, st.Users, natsServer.Conn())

	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	issueHandler := handlers.NewIssueHandler(issueService)
	commentHandler := handlers.NewCommentHandler(commentService)
	eventHandler := handlers.NewEventHandler(eventHub)

	// Setup Gin router
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(config))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// WebSocket route for live events (outside /api group)
	router.GET("/ws/events", eventHandler.Stream)

	// API Routes
	api := router.Group("/api")
	{
		api.GET("/events/stats", eventHandler.Stats)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/register", authHandler.Register)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.List)
			projects.POST("", projectHandler.Create)
		}

		issues := api.Group("/issues")
		{
			issues.GET("", issueHandler.List)
			issues.POST("", issueHandler.Create)
			issues.GET("/:id", issueHandler.Get)
			issues.PUT("/:id", issueHandler.Update)
		}

		comments := api.Group("/comments")
		{
			comments.POST("", commentHandler.Create)
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Printf("🚀 Server running on http://localhost:%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
