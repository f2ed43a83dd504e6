package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"inventario/internal/handlers"
	"inventario/internal/middleware"
	"inventario/internal/models"
	"inventario/internal/repositories"
	"inventario/internal/services"
	"inventario/pkg/events"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	// --- Configuration ---
	// A .env file is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("JWT_SECRET", "inventario-dev-secret")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.SetDefault("STORE_BACKEND", "memory")
	viper.SetDefault("DB_DSN", "")
	viper.SetDefault("MOCK_LATENCY_MS", 300)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Initialize RabbitMQ client (optional) ---
	// Inventory change events are published when a broker URL is configured;
	// the services skip publication on a nil client.
	var mqClient *events.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		var err error
		mqClient, err = events.NewClient(events.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	// --- Initialize the catalog repository ---
	catalogRepo, err := buildCatalogRepository()
	if err != nil {
		log.Fatalf("Failed to initialize catalog store: %v", err)
	}

	// --- Initialize Services ---
	catalogService := services.NewCatalogService(catalogRepo, mqClient)
	editSession := services.NewEditSession(catalogService)
	authService, err := services.NewAuthService(
		viper.GetString("ADMIN_USERNAME"),
		viper.GetString("ADMIN_PASSWORD"),
		viper.GetString("JWT_SECRET"),
	)
	if err != nil {
		log.Fatalf("Failed to initialize session gate: %v", err)
	}

	// --- Initialize Handlers ---
	productHandler := handlers.NewProductHandler(catalogService, editSession)
	authHandler := handlers.NewAuthHandler(authService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")

	// Login is public; everything else requires a session token.
	authHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	productHandler.RegisterRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"backend": viper.GetString("STORE_BACKEND"),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Listens for the inventory change events the catalog service publishes.
	// Processing is just a log line here; downstream systems (stock alerts,
	// reorder jobs) would hang their logic off this handler.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for inventory events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received inventory event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeProductEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// buildCatalogRepository selects the catalog backend from configuration.
// The default is the in-memory store with simulated latency, reset to the
// seed catalog on every start; sqlite and postgres back the same contract
// with a real database for deployments that want edits to survive restarts.
func buildCatalogRepository() (repositories.CatalogRepository, error) {
	backend := viper.GetString("STORE_BACKEND")
	switch backend {
	case "memory":
		latency := time.Duration(viper.GetInt("MOCK_LATENCY_MS")) * time.Millisecond
		repo := repositories.NewMemoryCatalogRepository(models.DefaultCatalog(), latency)
		log.Printf("Catalog store: memory (%d seed products, %s latency)", len(models.DefaultCatalog()), latency)
		return repo, nil
	case "sqlite", "postgres":
		dsn := viper.GetString("DB_DSN")
		var dialector gorm.Dialector
		if backend == "sqlite" {
			if dsn == "" {
				dsn = "inventario.db"
			}
			dialector = sqlite.Open(dsn)
		} else {
			if dsn == "" {
				return nil, fmt.Errorf("DB_DSN is required for the postgres backend")
			}
			dialector = postgres.Open(dsn)
		}
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", backend, err)
		}
		if err := db.AutoMigrate(&models.Product{}); err != nil {
			return nil, fmt.Errorf("failed to migrate products table: %w", err)
		}
		repo := repositories.NewGORMCatalogRepository(db)
		if err := repo.Seed(models.DefaultCatalog()); err != nil {
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
		log.Printf("Catalog store: %s", backend)
		return repo, nil
	}
	return nil, fmt.Errorf("unknown STORE_BACKEND %q (want memory, sqlite or postgres)", backend)
}
