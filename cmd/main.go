package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	_ "github.com/franciscosanchezn/pizza-delivery-api/docs" // Import generated docs
	"github.com/franciscosanchezn/pizza-delivery-api/internal/config"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/controllers"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/database"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/gateway"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/jobs"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/middleware"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/notify"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	db                *gorm.DB
	hub               *notify.Hub
	pizzaController   controllers.PizzaController
	orderController   controllers.OrderController
	paymentController controllers.PaymentController
	adminController   controllers.AdminController
	eventsController  controllers.EventsController
	configuration     *config.Config
)

// @title Pizza Delivery API
// @version 1.0
// @description Pizza ordering service with custom pizza builder, payment gateway checkout and realtime order notifications
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Set JWT secret from configuration
	middleware.SetJWTSecret(configuration.JWTSecret)

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize notification hub, services and controllers
	hub = notify.NewHub()
	gatewayClient := gateway.NewRazorpayClient(configuration.RazorpayKeyID, configuration.RazorpayKeySecret)

	pricingService := services.NewPricingService(db)
	inventoryService := services.NewInventoryService(db)
	pizzaService := services.NewPizzaService(db)
	orderService := services.NewOrderService(db, pricingService, hub)
	paymentService := services.NewPaymentService(db, gatewayClient, orderService, inventoryService, hub)
	adminService := services.NewAdminService(db, inventoryService)

	pizzaController = controllers.NewPizzaController(pizzaService, inventoryService, pricingService)
	orderController = controllers.NewOrderController(orderService)
	paymentController = controllers.NewPaymentController(paymentService)
	adminController = controllers.NewAdminController(adminService, inventoryService, pizzaService)
	eventsController = controllers.NewEventsController(hub)

	// Start the daily low-stock scan
	stockChecker := jobs.NewStockChecker(inventoryService, hub, time.Duration(configuration.StockCheckIntervalHours)*time.Hour)
	stockChecker.Start(context.Background())
	defer stockChecker.Stop()

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection and returns a gorm.DB instance
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  "disable",
		Path:     conf.DBPath,
	})
	checkPanicErr(err)

	// Migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.InventoryItem{},
		&models.Pizza{},
		&models.Order{},
		&models.OrderItem{},
	)
	checkPanicErr(err)

	// Seed only if empty
	var count int64
	db.Model(&models.InventoryItem{}).Count(&count)
	if count == 0 {
		log.Info("Database is empty, seeding initial data")
		seedDatabase()
	} else {
		log.Info("Database already seeded with initial data")
	}
	return db
}

// seedDatabase seeds the database with initial users, inventory and menu data
func seedDatabase() {
	adminPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	userPassword, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	users := []models.User{
		{Name: "Admin User", Email: "admin@pizzadelivery.com", Password: string(adminPassword), Phone: "+1234567890", Role: "admin", IsEmailVerified: true},
		{Name: "Test User", Email: "user@example.com", Password: string(userPassword), Phone: "+1234567891", Role: "user", IsEmailVerified: true},
	}
	for _, user := range users {
		db.Create(&user)
	}

	inventory := []models.InventoryItem{
		// Bases
		{Name: "Thin Crust", ItemType: models.ItemTypeBase, Price: 50, StockQuantity: 100, ThresholdQuantity: 20, Unit: "pieces", Category: models.CategoryVegetarian, Description: "Crispy thin crust base", IsAvailable: true},
		{Name: "Thick Crust", ItemType: models.ItemTypeBase, Price: 60, StockQuantity: 100, ThresholdQuantity: 20, Unit: "pieces", Category: models.CategoryVegetarian, Description: "Soft thick crust base", IsAvailable: true},
		{Name: "Whole Wheat", ItemType: models.ItemTypeBase, Price: 55, StockQuantity: 80, ThresholdQuantity: 15, Unit: "pieces", Category: models.CategoryVegetarian, Description: "Healthy whole wheat base", IsAvailable: true},
		{Name: "Gluten Free", ItemType: models.ItemTypeBase, Price: 70, StockQuantity: 50, ThresholdQuantity: 10, Unit: "pieces", Category: models.CategoryVegan, Description: "Gluten-free base", IsAvailable: true},
		{Name: "Cauliflower", ItemType: models.ItemTypeBase, Price: 65, StockQuantity: 60, ThresholdQuantity: 12, Unit: "pieces", Category: models.CategoryVegetarian, Description: "Low-carb cauliflower base", IsAvailable: true},

		// Sauces
		{Name: "Tomato Sauce", ItemType: models.ItemTypeSauce, Price: 15, StockQuantity: 200, ThresholdQuantity: 30, Unit: "liters", Category: models.CategoryVegetarian, Description: "Classic tomato sauce", IsAvailable: true},
		{Name: "BBQ Sauce", ItemType: models.ItemTypeSauce, Price: 20, StockQuantity: 150, ThresholdQuantity: 25, Unit: "liters", Category: models.CategoryVegetarian, Description: "Smoky BBQ sauce", IsAvailable: true},
		{Name: "Pesto Sauce", ItemType: models.ItemTypeSauce, Price: 25, StockQuantity: 100, ThresholdQuantity: 20, Unit: "liters", Category: models.CategoryVegetarian, Description: "Fresh basil pesto", IsAvailable: true},
		{Name: "Alfredo Sauce", ItemType: models.ItemTypeSauce, Price: 22, StockQuantity: 120, ThresholdQuantity: 20, Unit: "liters", Category: models.CategoryVegetarian, Description: "Creamy alfredo sauce", IsAvailable: true},
		{Name: "Buffalo Sauce", ItemType: models.ItemTypeSauce, Price: 18, StockQuantity: 80, ThresholdQuantity: 15, Unit: "liters", Category: models.CategoryVegetarian, Description: "Spicy buffalo sauce", IsAvailable: true},

		// Cheeses
		{Name: "Mozzarella", ItemType: models.ItemTypeCheese, Price: 30, StockQuantity: 150, ThresholdQuantity: 25, Unit: "kg", Category: models.CategoryVegetarian, Description: "Fresh mozzarella cheese", IsAvailable: true},
		{Name: "Cheddar", ItemType: models.ItemTypeCheese, Price: 28, StockQuantity: 120, ThresholdQuantity: 20, Unit: "kg", Category: models.CategoryVegetarian, Description: "Sharp cheddar cheese", IsAvailable: true},
		{Name: "Parmesan", ItemType: models.ItemTypeCheese, Price: 35, StockQuantity: 80, ThresholdQuantity: 15, Unit: "kg", Category: models.CategoryVegetarian, Description: "Aged parmesan cheese", IsAvailable: true},
		{Name: "Vegan Cheese", ItemType: models.ItemTypeCheese, Price: 40, StockQuantity: 60, ThresholdQuantity: 12, Unit: "kg", Category: models.CategoryVegan, Description: "Plant-based cheese", IsAvailable: true},
		{Name: "Goat Cheese", ItemType: models.ItemTypeCheese, Price: 45, StockQuantity: 40, ThresholdQuantity: 8, Unit: "kg", Category: models.CategoryVegetarian, Description: "Creamy goat cheese", IsAvailable: true},

		// Vegetables
		{Name: "Bell Peppers", ItemType: models.ItemTypeVeggie, Price: 8, StockQuantity: 50, ThresholdQuantity: 10, Unit: "kg", Category: models.CategoryVegetarian, Description: "Fresh bell peppers", IsAvailable: true},
		{Name: "Mushrooms", ItemType: models.ItemTypeVeggie, Price: 12, StockQuantity: 40, ThresholdQuantity: 8, Unit: "kg", Category: models.CategoryVegetarian, Description: "Fresh mushrooms", IsAvailable: true},
		{Name: "Onions", ItemType: models.ItemTypeVeggie, Price: 6, StockQuantity: 60, ThresholdQuantity: 12, Unit: "kg", Category: models.CategoryVegetarian, Description: "Red onions", IsAvailable: true},
		{Name: "Olives", ItemType: models.ItemTypeVeggie, Price: 15, StockQuantity: 30, ThresholdQuantity: 6, Unit: "kg", Category: models.CategoryVegetarian, Description: "Black olives", IsAvailable: true},
		{Name: "Tomatoes", ItemType: models.ItemTypeVeggie, Price: 10, StockQuantity: 45, ThresholdQuantity: 9, Unit: "kg", Category: models.CategoryVegetarian, Description: "Fresh tomatoes", IsAvailable: true},
		{Name: "Spinach", ItemType: models.ItemTypeVeggie, Price: 9, StockQuantity: 35, ThresholdQuantity: 7, Unit: "kg", Category: models.CategoryVegetarian, Description: "Fresh spinach", IsAvailable: true},
		{Name: "Jalapeños", ItemType: models.ItemTypeVeggie, Price: 11, StockQuantity: 25, ThresholdQuantity: 5, Unit: "kg", Category: models.CategoryVegetarian, Description: "Spicy jalapeños", IsAvailable: true},

		// Meat
		{Name: "Pepperoni", ItemType: models.ItemTypeMeat, Price: 25, StockQuantity: 40, ThresholdQuantity: 8, Unit: "kg", Category: models.CategoryNonVegetarian, Description: "Classic pepperoni", IsAvailable: true},
		{Name: "Chicken", ItemType: models.ItemTypeMeat, Price: 30, StockQuantity: 35, ThresholdQuantity: 7, Unit: "kg", Category: models.CategoryNonVegetarian, Description: "Grilled chicken", IsAvailable: true},
		{Name: "Bacon", ItemType: models.ItemTypeMeat, Price: 35, StockQuantity: 30, ThresholdQuantity: 6, Unit: "kg", Category: models.CategoryNonVegetarian, Description: "Crispy bacon", IsAvailable: true},
		{Name: "Sausage", ItemType: models.ItemTypeMeat, Price: 28, StockQuantity: 25, ThresholdQuantity: 5, Unit: "kg", Category: models.CategoryNonVegetarian, Description: "Italian sausage", IsAvailable: true},
		{Name: "Ham", ItemType: models.ItemTypeMeat, Price: 32, StockQuantity: 20, ThresholdQuantity: 4, Unit: "kg", Category: models.CategoryNonVegetarian, Description: "Smoked ham", IsAvailable: true},
	}
	for _, item := range inventory {
		db.Create(&item)
	}

	pizzas := []models.Pizza{
		{
			Name: "Margherita", Description: "Classic delight with fresh mozzarella and basil", BasePrice: 299,
			Category: models.CategoryVegetarian, Ingredients: datatypes.NewJSONSlice([]string{"Tomato Sauce", "Mozzarella", "Basil"}),
			Nutrition: datatypes.NewJSONType(models.NutritionFacts{Calories: 850, Protein: 35, Carbs: 90, Fat: 38}), IsAvailable: true,
		},
		{
			Name: "Pepperoni", Description: "Loaded with pepperoni and extra cheese", BasePrice: 349,
			Category: models.CategoryNonVegetarian, Ingredients: datatypes.NewJSONSlice([]string{"Tomato Sauce", "Mozzarella", "Pepperoni"}),
			Nutrition: datatypes.NewJSONType(models.NutritionFacts{Calories: 1050, Protein: 45, Carbs: 88, Fat: 52}), IsAvailable: true,
		},
		{
			Name: "Veggie Supreme", Description: "Garden fresh vegetables on a crispy crust", BasePrice: 329,
			Category: models.CategoryVegetarian, Ingredients: datatypes.NewJSONSlice([]string{"Tomato Sauce", "Mozzarella", "Bell Peppers", "Mushrooms", "Onions", "Olives"}),
			Nutrition: datatypes.NewJSONType(models.NutritionFacts{Calories: 780, Protein: 30, Carbs: 95, Fat: 30}), IsAvailable: true,
		},
		{
			Name: "BBQ Chicken", Description: "Grilled chicken with smoky BBQ sauce", BasePrice: 399,
			Category: models.CategoryNonVegetarian, Ingredients: datatypes.NewJSONSlice([]string{"BBQ Sauce", "Mozzarella", "Chicken", "Onions"}),
			Nutrition: datatypes.NewJSONType(models.NutritionFacts{Calories: 980, Protein: 52, Carbs: 85, Fat: 42}), IsAvailable: true,
		},
	}
	for _, pizza := range pizzas {
		db.Create(&pizza)
	}
	log.Info("Database seeded successfully")
}

// setupRouter initializes the Gin router and sets up the routes
func setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{configuration.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	setupRoutes(router)
	return router
}

// Add this handler for testing.
// TODO remove when the authorization service issues real tokens
func generateTestTokenHandler(c *gin.Context) {
	role := c.DefaultQuery("role", "admin")
	claims := jwt.MapClaims{
		"uid":  1,
		"role": role,
		"exp":  time.Now().Add(time.Hour * 24).Unix(), // 24 hours
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(configuration.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      tokenString,
		"type":       "Bearer",
		"expires_in": 86400, // 24 hours in seconds
	})
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Test token generation endpoint
	router.GET("/test-token", generateTestTokenHandler)

	// Public menu and builder options
	pizza := router.Group("/pizza")
	{
		pizza.GET("", pizzaController.GetPizzas)
		pizza.GET("/customization/options", pizzaController.GetCustomizationOptions)
		pizza.POST("/customization/calculate-price", middleware.JWTAuth(), pizzaController.CalculatePrice)
		pizza.GET("/:id", pizzaController.GetPizzaByID)
	}

	// Checkout and payment verification
	payment := router.Group("/payment")
	payment.Use(middleware.JWTAuth())
	{
		payment.POST("/create-order", paymentController.CreateOrder)
		payment.POST("/verify-payment", paymentController.VerifyPayment)
	}

	// Order lookups and lifecycle
	orders := router.Group("/orders")
	orders.Use(middleware.JWTAuth())
	{
		orders.GET("/my-orders", orderController.GetMyOrders)
		orders.GET("/stats/overview", middleware.RequireRole("admin"), orderController.Stats)
		orders.GET("", middleware.RequireRole("admin"), orderController.ListOrders)
		orders.GET("/:id", orderController.GetOrder)
		orders.PATCH("/:id/status", middleware.RequireRole("admin"), orderController.UpdateStatus)
		orders.PATCH("/:id/cancel", orderController.CancelOrder)
	}

	// Administrative console
	admin := router.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireRole("admin"))
	{
		admin.GET("/dashboard", adminController.Dashboard)
		admin.GET("/inventory", adminController.ListInventory)
		admin.POST("/inventory", adminController.CreateInventoryItem)
		admin.PATCH("/inventory/:id", adminController.UpdateInventoryItem)
		admin.DELETE("/inventory/:id", adminController.DeleteInventoryItem)
		admin.GET("/pizzas", adminController.ListPizzas)
		admin.POST("/pizzas", adminController.CreatePizza)
		admin.PATCH("/pizzas/:id", adminController.UpdatePizza)
		admin.DELETE("/pizzas/:id", adminController.DeletePizza)
		admin.GET("/users", adminController.ListUsers)
	}

	// Realtime notification stream
	router.GET("/events", middleware.JWTAuth(), eventsController.Stream)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pizza-delivery-api",
	})
}
