package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"fulfillment/cmd"
	adapterhttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/partnerrepo"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := connectDB(configs)
	app := cmd.NewCompositionRoot(configs, db)

	getViewsHandler := app.CreateGetViewsQueryHandler()
	getStatsHandler := app.CreateGetStatsQueryHandler()

	jobManager := jobs.NewJobManager(
		getViewsHandler, getStatsHandler, configs.ViewRefreshInterval, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	server := adapterhttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateSetOrderStatusCommandHandler(),
		app.CreateAssignPartnerCommandHandler(),
		app.CreateRegisterPartnerCommandHandler(),
		getViewsHandler,
		getStatsHandler,
		app.CreateListPartnersQueryHandler(),
		app.CreateExportOrdersQueryHandler(),
		jobManager.ViewRefreshJob(),
	)

	startWebServer(server, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		ViewRefreshInterval: refreshInterval(goDotEnvVariable("VIEW_REFRESH_INTERVAL")),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// refreshInterval parses the polling cadence, falling back to the default
// when unset or unparsable.
func refreshInterval(raw string) time.Duration {
	if raw == "" {
		return jobs.DefaultRefreshInterval
	}
	interval, err := time.ParseDuration(raw)
	if err != nil {
		log.Warnf("Invalid VIEW_REFRESH_INTERVAL %q, using default", raw)
		return jobs.DefaultRefreshInterval
	}
	return interval
}

func connectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.OrderStatusHistoryDTO{},
		&partnerrepo.PartnerDTO{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func startWebServer(server *adapterhttp.Server, port string) {
	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
