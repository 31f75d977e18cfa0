package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jjenkins/mateng/internal/admitcard"
	"github.com/jjenkins/mateng/internal/config"
	"github.com/jjenkins/mateng/internal/logger"
	"github.com/jjenkins/mateng/internal/service"
	"github.com/jjenkins/mateng/internal/store"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "mateng",
	Short: "Mateng website and admit card lookup",
	Long: `Mateng serves the company website (delivery, education and marketplace)
and the Mental Maths Competition admit card lookup.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the logger shared by every command
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return cfg, log, nil
}

// dataSource is the configured application fetcher. close releases any
// connection it holds.
type dataSource struct {
	fetcher admitcard.Fetcher
	pinger  interface{ Ping(ctx context.Context) error }
	close   func() error
}

func openDataSource(cfg *config.Config, log *zap.Logger) (*dataSource, error) {
	switch cfg.Data.Source {
	case config.SourceSupabase:
		log.Info("Using hosted database", zap.String("url", cfg.Supabase.URL), zap.String("table", cfg.AdmitCard.Table))
		client := service.NewSupabaseClient(cfg.Supabase.URL, cfg.Supabase.APIKey, cfg.AdmitCard.Table, cfg.Supabase.Timeout)
		return &dataSource{fetcher: client, close: func() error { return nil }}, nil
	default:
		log.Info("Connecting to database...", zap.String("table", cfg.AdmitCard.Table))
		db, err := store.NewDB(cfg.Database.URL, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
		if err != nil {
			return nil, err
		}
		applications := store.NewApplicationStore(db, cfg.AdmitCard.Table)
		return &dataSource{fetcher: applications, pinger: applications, close: db.Close}, nil
	}
}
