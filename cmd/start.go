package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"movies-app/core/config"
	"movies-app/core/database"
	"movies-app/core/loader"
	"movies-app/core/logger"
	"movies-app/core/middleware/auth"
	"movies-app/core/middleware/rayid"
	"movies-app/core/storage"
	"movies-app/feature/artists"
	"movies-app/feature/catalog"
	"movies-app/feature/export"
	"movies-app/feature/integrity"
	"movies-app/feature/movies"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "movies-app/docs/swagger"
)

// @title Movies API
// @version 1.0
// @description API for managing movies, artists and the links between them.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the movies catalog server",
	Long:  `Starts the HTTP server, migrates the catalog schema and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (required: the catalog lives there)
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		logg.Info("Connected to catalog database", zap.String("driver", cfg.Database.Driver))

		if err := catalog.Migrate(db); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}

		// 4. Initialize Storage (optional: export and the storage check need it)
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Warn("Storage unavailable, export disabled", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 5. Register Features
		validator := catalog.NewValidator(nil)
		opts := cfg.Reconcile.Options()

		mgr := loader.NewManager(logg)
		mgr.Register(movies.NewFeature(db, logg, validator, opts))
		mgr.Register(artists.NewFeature(db, logg, validator, opts))
		mgr.Register(export.NewFeature(store, cfg.Storage, db, logg))
		mgr.Register(integrity.NewFeature(store, cfg.Storage, db, logg))

		// Middleware: ray id first so every later log line carries it.
		app.Use(rayid.New())
		app.Use(logger.Middleware(logg))

		// Swagger stays public.
		app.Get("/swagger/*", swagger.HandlerDefault)

		if !cfg.Server.AuthEnabled() {
			logg.Warn("No api key or jwt secret configured, every caller is treated as admin")
		}
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, JWTSecret: cfg.Server.JWTSecret}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
