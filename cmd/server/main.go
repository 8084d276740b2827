package main

import (
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"leasehawk/server/config"
	"leasehawk/server/internal/alerts"
	"leasehawk/server/internal/api"
	"leasehawk/server/internal/database"
	"leasehawk/server/internal/geocoding"
	"leasehawk/server/internal/matching"
	"leasehawk/server/internal/processor"
	"leasehawk/server/internal/queue"
	"leasehawk/server/internal/scheduler"
	"leasehawk/server/internal/scoring"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	scoringCfg, err := config.LoadScoringConfig(cfg.Server.ScoringConfigPath)
	if err != nil {
		logger.WithError(err).Fatal("Invalid scoring configuration")
	}

	dbPath := cfg.Server.DatabasePath
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	logger.Infof("Using database at: %s", dbPath)

	db, err := database.NewDatabase(dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Second handle on the same file for the batch write path
	gormDB, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to open batch database connection")
	}

	// Initialize geocoder
	cacheDir := filepath.Join(os.TempDir(), "leasehawk", "geocode_cache")
	geocoder := geocoding.NewGeocoder(logger, cacheDir)

	// Run initial geocoding for prospectuses without coordinates
	logger.Info("Starting initial geocoding of prospectuses without coordinates...")
	if err := db.UpdateMissingCoordinates(geocoder); err != nil {
		logger.WithError(err).Error("Failed to update coordinates")
	}

	// Match persistence pipeline: queue feeding batched upserts
	matchQueue := queue.NewMatchQueue(cfg.BatchProcessing.QueueSize, logger)
	batchProcessor := processor.NewBatchProcessor(gormDB, matchQueue, cfg, logger)
	batchProcessor.Start()
	matchQueue.Start()
	defer matchQueue.Close()
	defer batchProcessor.Stop()

	engine := scoring.NewEngine(scoringCfg)
	matcher := matching.NewManager(db, engine, matchQueue, logger)

	alertService := alerts.NewService(logger)
	alertService.SetDatabase(db)
	if alertConfig, err := db.GetAlertConfig(); err == nil && alertConfig != nil {
		alertService.UpdateConfig(alertConfig)
	}

	handler := api.NewHandler(db, matcher, geocoder, alertService, scoringCfg, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.RequestID())
	router.Use(api.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
	}))

	api.SetupRoutes(router, handler)

	sched := scheduler.NewScheduler(db, matcher, geocoder, alertService, scoringCfg, logger)
	sched.Start()
	defer sched.Stop()

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
