package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/franciscosanchezn/pizzeria-backoffice/docs" // Import generated docs
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/auth"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/config"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/controllers"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/database"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/journal"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/photo"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/pizzeria"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/services"
)

// @title Pizzeria Back-Office API
// @version 1.0
// @description Catalog, client orders, evaluations and statistics of a pizzeria
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
	configuration := loadConfig()

	// Initialize database connection
	db := setupDatabase(configuration)

	// Build the pizzeria and its collaborators
	orderJournal := journal.NewOrderJournal(db)
	shop := pizzeria.New(
		pizzeria.WithLogger(log.StandardLogger()),
		pizzeria.WithSessionTTL(configuration.SessionTTL),
		pizzeria.WithPasswordCost(configuration.PasswordCost),
		pizzeria.WithPhotoChecker(photo.NewFileChecker(configuration.PhotoRoot)),
		pizzeria.WithRecorder(orderJournal),
	)
	oauthService := auth.NewOAuthService(db, configuration.JWTSecret)

	handlers := controllers.Handlers{
		Auth:        controllers.NewAuthController(shop, auth.NewSessionSigner(configuration.JWTSecret)),
		Pizzas:      controllers.NewPizzaController(shop),
		Orders:      controllers.NewOrderController(shop, orderJournal),
		Filters:     controllers.NewFilterController(shop),
		Evaluations: controllers.NewEvaluationController(shop),
		Statistics:  controllers.NewStatisticsController(shop),
		Clients:     controllers.NewClientController(shop, orderJournal, services.NewStaffClientService(db, configuration.PasswordCost)),
		Token:       oauthService.HandleToken,
	}

	// Initialize Gin router
	router := setupRouter(handlers, []byte(configuration.JWTSecret))

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	checkPanicErr(router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port)))
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
	log.SetLevel(config.LevelForEnvironment(config.GetEnvWithDefault("APP_ENV", "development")))
	if level, err := log.ParseLevel(config.GetEnvWithDefault("LOG_LEVEL", "")); err == nil {
		log.SetLevel(level)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %s", conf)
	return conf
}

// setupDatabase connects to the configured database, migrates the schema
// and drops staff tokens that already expired
func setupDatabase(conf *config.Config) *gorm.DB {
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), time.Minute)
	defer cancelConnect()
	db, err := database.InitDatabase(connectCtx, conf.Database())
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	purged, err := auth.NewGormTokenStore(db).PurgeExpired(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to purge expired staff tokens")
	} else if purged > 0 {
		log.WithField("tokens", purged).Info("Purged expired staff tokens")
	}
	return db
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter(handlers controllers.Handlers, jwtSecret []byte) *gin.Engine {
	router := gin.Default()

	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	controllers.RegisterRoutes(router, handlers, jwtSecret)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
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
		"service":   "pizzeria-backoffice",
	})
}
