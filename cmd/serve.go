package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"twii-miner/core/database"
	"twii-miner/core/loader"
	"twii-miner/core/logger"
	"twii-miner/core/middleware/auth"
	"twii-miner/core/middleware/rayid"
	"twii-miner/core/storage"
	"twii-miner/core/xmldoc"
	"twii-miner/feature/extract"
	"twii-miner/feature/integrity"
	"twii-miner/feature/skills"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reconciled skill catalogue over HTTP",
	Long: `Starts the HTTP server. The catalogue is rebuilt from the data root on
first use and at most once per cache TTL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		fallback, err := cfg.Data.Group()
		if err != nil {
			return err
		}

		// Storage and database only back the integrity checks.
		var store storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional storage client failed", zap.Error(err))
		} else {
			store = client
		}
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to export database")
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		reader := xmldoc.FileReader{}
		builder := extract.NewService(cfg.Data, reader, logg)

		mgr := loader.NewManager()
		mgr.Register(skills.NewFeature(builder, cfg.Data.Root, fallback, cfg.Server.CacheTTL(), logg))
		mgr.Register(integrity.NewFeature(integrity.Options{
			Reader: reader,
			Data:   cfg.Data,
			Client: store,
			Bucket: cfg.Storage.Bucket,
			Prefix: cfg.Storage.Prefix,
			DB:     db,
		}, logg))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
