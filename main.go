package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shopapi/internal/config"
	"shopapi/internal/handlers"
	"shopapi/internal/models"
	"shopapi/internal/repositories"
	"shopapi/internal/services"
	"shopapi/pkg/events"
)

func main() {
	cfg := config.Load()

	// --- Event broker (optional) ---
	// An empty RABBITMQ_URL runs the API without a broker; every publish
	// path is nil-safe.
	var mqClient *events.Client
	if cfg.RabbitMQURL != "" {
		client, err := events.NewClient(events.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			mqClient = client
			defer mqClient.Close()
		}
	}

	// --- Repositories ---
	// Products and customers follow the configured storage driver. Carts
	// and orders are always in-memory: carts are transient by contract and
	// orders live for the process lifetime.
	var productRepo repositories.ProductRepository
	var customerRepo repositories.CustomerRepository
	switch cfg.StorageDriver {
	case "sqlite", "postgres":
		var dialector gorm.Dialector
		if cfg.StorageDriver == "postgres" {
			dialector = postgres.Open(cfg.DatabaseDSN)
		} else {
			dialector = sqlite.Open(cfg.DatabaseDSN)
		}
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to %s database: %v", cfg.StorageDriver, err)
		}
		if err := db.AutoMigrate(&models.Product{}, &models.Customer{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		productRepo = repositories.NewGORMProductRepository(db)
		customerRepo = repositories.NewGORMCustomerRepository(db)
	default:
		productRepo = repositories.NewMemoryProductRepository()
		customerRepo = repositories.NewMemoryCustomerRepository()
	}
	cartRepo := repositories.NewMemoryCartRepository()
	orderRepo := repositories.NewMemoryOrderRepository()

	seedStore(productRepo, customerRepo)

	// --- Services ---
	productService := services.NewProductService(productRepo)
	customerService := services.NewCustomerService(customerRepo)
	cartService := services.NewCartService(cartRepo, productRepo, customerRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, customerRepo, cartRepo, mqClient)
	analyticsService := services.NewAnalyticsService(orderRepo, productRepo, customerRepo, cfg.LowStockThreshold)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the E-Commerce API",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"products":  "/api/v1/products - Browse and manage products",
				"customers": "/api/v1/customers - Customer management",
				"cart":      "/api/v1/cart - Shopping cart operations",
				"orders":    "/api/v1/orders - Order management",
				"analytics": "/api/v1/analytics/dashboard - Store analytics",
			},
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		products, _ := productRepo.GetAll()
		customers, _ := customerRepo.GetAll()
		orders, _ := orderRepo.GetAll()
		activeCarts, _ := cartRepo.ActiveCount()
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store": fiber.Map{
				"products":     len(products),
				"customers":    len(customers),
				"orders":       len(orders),
				"active_carts": activeCarts,
			},
		})
	})

	apiV1 := app.Group("/api/v1")
	productHandler.RegisterRoutes(apiV1)
	customerHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1)
	analyticsHandler.RegisterRoutes(apiV1)

	// --- Order event consumer ---
	if mqClient != nil {
		log.Println("Starting order event consumer...")
		consumeErr := mqClient.Consume(func(msg amqp.Delivery) error {
			log.Printf("Received %s event (tag %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
			return nil
		})
		if consumeErr != nil {
			log.Printf("Failed to start order event consumer: %v", consumeErr)
		}
	}

	// --- Start HTTP server ---
	log.Printf("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
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

// seedStore loads the demo catalog and customers.
func seedStore(productRepo repositories.ProductRepository, customerRepo repositories.CustomerRepository) {
	products := []models.Product{
		{
			Name:               "Wireless Headphones",
			Description:        "Premium noise-cancelling wireless headphones",
			Price:              299.99,
			Category:           models.CategoryElectronics,
			StockQuantity:      50,
			ImageURL:           "https://example.com/headphones.jpg",
			DiscountPercentage: 10,
		},
		{
			Name:               "Running Shoes",
			Description:        "Lightweight running shoes for athletes",
			Price:              129.99,
			Category:           models.CategorySports,
			StockQuantity:      100,
			ImageURL:           "https://example.com/shoes.jpg",
			DiscountPercentage: 15,
		},
		{
			Name:          "Smart Watch",
			Description:   "Fitness tracking smart watch with heart rate monitor",
			Price:         249.99,
			Category:      models.CategoryElectronics,
			StockQuantity: 30,
			ImageURL:      "https://example.com/watch.jpg",
		},
	}
	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		}
	}

	customers := []models.Customer{
		{
			ID:        1,
			Name:      "John Doe",
			Email:     "john@example.com",
			Phone:     "+1-555-0123",
			Address:   "123 Main St, New York, NY 10001",
			IsPremium: true,
		},
		{
			ID:      2,
			Name:    "Jane Smith",
			Email:   "jane@example.com",
			Phone:   "+1-555-0456",
			Address: "456 Oak Ave, Los Angeles, CA 90001",
		},
	}
	for i := range customers {
		if err := customerRepo.Create(&customers[i]); err != nil {
			log.Printf("Error seeding customer %s: %v", customers[i].Name, err)
		}
	}
}
