package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"property-catalog/internal/config"
	"property-catalog/internal/database"
	"property-catalog/internal/handlers"
	"property-catalog/internal/search"
	"property-catalog/internal/service"
)

func main() {
	// Load .env for local development; ignore if absent
	_ = godotenv.Load()

	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config/catalog.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	// Initialize database based on configuration
	dbType := appConfig.Database.Type
	if dbType == "" {
		dbType = getEnv("DB_TYPE", "postgres")
	}

	var store database.PropertyStore

	if dbType == "mysql" {
		log.Println("Using MySQL with GORM")
		mysqlCfg := appConfig.Database.MySQL

		// Get port as string, handle 0 as empty
		portStr := ""
		if mysqlCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", mysqlCfg.Port)
		}

		gormDB, err := database.NewGormDB(
			getEnvOrConfig(mysqlCfg.Host, "DB_HOST", "mysql"),
			getEnvOrConfig(portStr, "DB_PORT", "3306"),
			getEnvOrConfig(mysqlCfg.User, "DB_USER", "catalog_user"),
			getEnvOrConfig(mysqlCfg.Password, "DB_PASSWORD", "catalog_pass"),
			getEnvOrConfig(mysqlCfg.Database, "DB_NAME", "catalog_db"),
		)
		if err != nil {
			log.Fatalf("Failed to connect to MySQL: %v", err)
		}
		defer gormDB.Close()

		// Initialize schema with GORM AutoMigrate
		if err := gormDB.InitSchema(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		store = gormDB
	} else {
		log.Println("Using PostgreSQL")
		pgCfg := appConfig.Database.Postgres

		portStr := ""
		if pgCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", pgCfg.Port)
		}

		db, err := database.NewDB(
			getEnvOrConfig(pgCfg.Host, "DB_HOST", "db"),
			getEnvOrConfig(portStr, "DB_PORT", "5432"),
			getEnvOrConfig(pgCfg.User, "DB_USER", "catalog_user"),
			getEnvOrConfig(pgCfg.Password, "DB_PASSWORD", "catalog_pass"),
			getEnvOrConfig(pgCfg.Database, "DB_NAME", "catalog_db"),
			pgCfg.SSLMode,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.InitSchema(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		store = db
	}

	// Initialize Meilisearch when enabled; the store remains the source of truth
	var searchClient *search.SearchClient
	if appConfig.Search.Meilisearch.Enabled {
		meilisearchHost := getEnvOrConfig(appConfig.Search.Meilisearch.Host, "MEILISEARCH_HOST", "http://meilisearch:7700")
		meilisearchKey := getEnvOrConfig(appConfig.Search.Meilisearch.APIKey, "MEILISEARCH_KEY", "")

		searchClient = search.NewSearchClient(meilisearchHost, meilisearchKey)
		if err := searchClient.InitIndex(); err != nil {
			log.Printf("Warning: Failed to initialize search index: %v", err)
		}
	}

	propertyService := service.NewPropertyService(store, searchClient)
	propertyHandler := handlers.NewPropertyHandler(propertyService)

	// Setup Gin router
	r := gin.Default()

	// CORS configuration: the catalog accepts cross-origin requests from any origin
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))

	// Routes
	r.GET("/health", healthCheck)
	propertyHandler.RegisterRoutes(r)

	port := getEnv("PORT", fmt.Sprintf("%d", appConfig.Server.Port))
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrConfig returns config value if set, otherwise falls back to environment variable, then default
func getEnvOrConfig(configValue, envKey, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, defaultValue)
}
