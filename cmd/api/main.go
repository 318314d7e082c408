package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"autotrack-pos/internal/handler"
	"autotrack-pos/internal/insight"
	"autotrack-pos/internal/ledger"
	"autotrack-pos/internal/middleware"
	"autotrack-pos/internal/model"
	"autotrack-pos/internal/outbox"
	"autotrack-pos/internal/repository"
	"autotrack-pos/internal/seed"
	"autotrack-pos/internal/service"
	"autotrack-pos/internal/ws"
	"autotrack-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 3. Setup persistence. Without a configured database the server runs in
	// offline mode: the ledger boots from mock data and mirror writes are
	// dropped instead of queued.
	var (
		db    *gorm.DB
		repos service.Repos
		ob    *outbox.Outbox
		state ledger.State
		users []model.User
	)
	if database.IsConfigured() {
		var err error
		db, err = database.Connect()
		if err != nil {
			log.Fatalf("Database connection failed: %v", err)
		}
		if err := db.AutoMigrate(
			&model.Product{}, &model.Service{}, &model.Transaction{},
			&model.Customer{}, &model.CashFlowEntry{}, &model.User{},
			&model.Employee{}, &model.Attendance{},
		); err != nil {
			log.Fatalf("Auto migration failed: %v", err)
		}

		repos = service.Repos{
			Catalog:  repository.NewCatalogRepo(db),
			Tx:       repository.NewTransactionRepo(db),
			Customer: repository.NewCustomerRepo(db),
			CashFlow: repository.NewCashFlowRepo(db),
			Employee: repository.NewEmployeeRepo(db),
		}
		userRepo := repository.NewUserRepo(db)

		seedDefaults(repos, userRepo)

		state, users = loadState(repos, userRepo)
		ob = outbox.New(256, func(failure *outbox.PersistenceFailureError) {
			wsHub.BroadcastEvent(ws.Event{
				Type:    "durability_warning",
				Message: "A change could not be saved to the database: " + failure.Op,
			})
		})
		go ob.Run()
	} else {
		log.Println("No database configured, running in offline mode with mock data")
		state = ledger.State{
			Products: seed.Products(),
			Services: seed.Services(),
		}
		var err error
		users, err = seed.Users()
		if err != nil {
			log.Fatalf("Failed to build mock users: %v", err)
		}
		ob = outbox.NewDisabled()
	}

	led := ledger.New(state)

	// 4. Dependency Injection (Wiring Layers)
	ledgerService := service.NewLedgerService(led, ob, wsHub, repos)
	dashService := service.NewDashboardService(led)
	authService := service.NewAuthService(users)
	generator := insight.New()

	authHandler := handler.NewAuthHandler(authService)
	saleHandler := handler.NewSaleHandler(ledgerService)
	catalogHandler := handler.NewCatalogHandler(ledgerService)
	cashFlowHandler := handler.NewCashFlowHandler(ledgerService)
	employeeHandler := handler.NewEmployeeHandler(ledgerService)
	dashHandler := handler.NewDashboardHandler(dashService, ledgerService)
	insightHandler := handler.NewInsightHandler(generator, ledgerService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "AutoTrack POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(authService))

	// Dashboard Routes
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/dashboard/revenue", dashHandler.GetRevenueSeries)
	protected.Get("/dashboard/low-stock", dashHandler.GetLowStock)

	// Catalog Routes
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Post("/products", catalogHandler.CreateProduct)
	protected.Put("/products/:id", catalogHandler.UpdateProduct)
	protected.Get("/services", catalogHandler.GetServices)
	protected.Post("/services", catalogHandler.CreateService)
	protected.Put("/services/:id", catalogHandler.UpdateService)

	// Transaction Routes
	protected.Get("/transactions", saleHandler.GetTransactions)
	protected.Get("/transactions/:id", saleHandler.GetTransaction)
	protected.Post("/transactions", saleHandler.CreateTransaction)
	protected.Put("/transactions/:id", saleHandler.UpdateTransaction)
	protected.Delete("/transactions/:id", saleHandler.DeleteTransaction)
	protected.Get("/transactions/:id/permissions", saleHandler.GetPermissions)

	// Customer Routes
	protected.Get("/customers", saleHandler.GetCustomers)

	// Cash Flow Routes
	protected.Get("/cashflows", cashFlowHandler.GetCashFlows)
	protected.Post("/cashflows", cashFlowHandler.CreateCashFlow)

	// Employee Routes
	protected.Get("/employees", employeeHandler.GetEmployees)
	protected.Post("/employees", employeeHandler.CreateEmployee)
	protected.Put("/employees/:id", employeeHandler.UpdateEmployee)
	protected.Delete("/employees/:id", middleware.RequireAdmin(), employeeHandler.DeleteEmployee)
	protected.Get("/attendance", employeeHandler.GetAttendance)
	protected.Post("/attendance", employeeHandler.MarkAttendance)
	protected.Post("/employees/:id/pay-salary", employeeHandler.PaySalary)

	// Insight Routes
	protected.Get("/insights/business", insightHandler.GetBusinessInsights)
	protected.Get("/insights/pricing/:id", insightHandler.GetPricingAnalysis)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	ob.Close()

	log.Println("Server exited")
}

// seedDefaults populates an empty database with the starter catalog and the
// two default accounts.
func seedDefaults(repos service.Repos, userRepo repository.UserRepository) {
	products, err := repos.Catalog.FindAllProducts()
	if err != nil {
		log.Printf("Warning: Failed to check catalog: %v", err)
		return
	}
	if len(products) == 0 {
		if err := repos.Catalog.SeedProducts(seed.Products()); err != nil {
			log.Printf("Warning: Failed to seed products: %v", err)
		}
		if err := repos.Catalog.SeedServices(seed.Services()); err != nil {
			log.Printf("Warning: Failed to seed services: %v", err)
		}
		log.Println("Seeded starter catalog")
	}

	existing, err := userRepo.FindAll()
	if err != nil {
		log.Printf("Warning: Failed to check users: %v", err)
		return
	}
	if len(existing) == 0 {
		defaults, err := seed.Users()
		if err != nil {
			log.Printf("Warning: Failed to build default users: %v", err)
			return
		}
		for i := range defaults {
			if err := userRepo.Create(&defaults[i]); err != nil {
				log.Printf("Warning: Failed to create user %s: %v", defaults[i].Email, err)
			}
		}
		log.Println("Created default users: admin@autotrack.com, manager@autotrack.com (password 1234)")
	}
}

// loadState reads the full persisted dataset into the boot snapshot. Load
// failures leave the affected collection empty rather than aborting startup.
func loadState(repos service.Repos, userRepo repository.UserRepository) (ledger.State, []model.User) {
	var state ledger.State
	var err error

	if state.Products, err = repos.Catalog.FindAllProducts(); err != nil {
		log.Printf("Warning: Failed to load products: %v", err)
	}
	if state.Services, err = repos.Catalog.FindAllServices(); err != nil {
		log.Printf("Warning: Failed to load services: %v", err)
	}
	if state.Transactions, err = repos.Tx.FindAll(); err != nil {
		log.Printf("Warning: Failed to load transactions: %v", err)
	}
	if state.Customers, err = repos.Customer.FindAll(); err != nil {
		log.Printf("Warning: Failed to load customers: %v", err)
	}
	if state.CashFlows, err = repos.CashFlow.FindAll(); err != nil {
		log.Printf("Warning: Failed to load cash flows: %v", err)
	}
	if state.Employees, err = repos.Employee.FindAll(); err != nil {
		log.Printf("Warning: Failed to load employees: %v", err)
	}
	if state.Attendance, err = repos.Employee.FindAllAttendance(); err != nil {
		log.Printf("Warning: Failed to load attendance: %v", err)
	}

	users, err := userRepo.FindAll()
	if err != nil {
		log.Printf("Warning: Failed to load users: %v", err)
	}
	return state, users
}
