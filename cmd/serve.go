package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jjenkins/mateng/internal/handlers"
	"github.com/jjenkins/mateng/internal/service"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Mateng web server",
	Long:  `Start the web server for the Mateng website and the admit card lookup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		// --port wins over configuration
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = port
		}

		source, err := openDataSource(cfg, log)
		if err != nil {
			log.Error("Failed to open data source", zap.Error(err))
			return err
		}
		defer source.close()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		app := fiber.New(fiber.Config{
			AppName: cfg.Server.AppName,
		})

		app.Use(recover.New())
		app.Use(logger.New())

		deps := handlers.Dependencies{
			Fetcher:  source.fetcher,
			Recorder: service.NewLookupMetrics(reg),
			Gatherer: reg,
			Logger:   log,
		}
		if source.pinger != nil {
			deps.Pinger = source.pinger
		}
		handlers.Register(app, deps)

		go func() {
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan
			log.Info("Received interrupt signal, shutting down...")
			if err := app.Shutdown(); err != nil {
				log.Error("Shutdown failed", zap.Error(err))
			}
		}()

		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Error("Failed to start server", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on")
}
