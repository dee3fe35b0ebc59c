package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/tool-rental/internal/calendar"
	"github.com/username/tool-rental/internal/catalog"
	"github.com/username/tool-rental/internal/config"
	"github.com/username/tool-rental/internal/rental"
)

var (
	configPath string
	logger     = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tool-rental",
		Short:         "Tool rental checkout",
		Long:          "Compute tool rental agreements with weekend and US holiday aware charge days",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log settings
			cfg, err := config.Load(configPath)
			if err != nil {
				initLogger("info")
				return
			}
			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger(cfg.Log.Level) // Fallback to console
				}
				return
			}
			initLogger(cfg.Log.Level)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./config.yaml if present)")

	rootCmd.AddCommand(checkoutCmd())
	rootCmd.AddCommand(toolsCmd())
	rootCmd.AddCommand(serveCmd())

	return rootCmd
}

// loadConfig loads and expands the configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ExpandEnvVars()
	return cfg, nil
}

// buildCalculator wires the configured catalog and calendar into a calculator
func buildCalculator(ctx context.Context, cfg *config.Config) (*rental.Calculator, error) {
	cat, err := buildCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}

	observance := cfg.Calendar.GetObservance()
	logger.Info("Using US rental calendar",
		zap.String("observance", observance.String()),
		zap.Int("century_pivot", cfg.Calendar.CenturyPivot))

	return rental.NewCalculator(cat, calendar.NewUSCalendar(observance), cfg.Calendar.CenturyPivot, logger), nil
}

func buildCatalog(ctx context.Context, cfg *config.Config) (catalog.Catalog, error) {
	var primary *catalog.Memory

	switch cfg.Catalog.Source {
	case "", "builtin":
		logger.Info("Using built-in tool inventory")
		return catalog.NewDefault(), nil

	case "file":
		logger.Info("Using tool inventory file", zap.String("file", cfg.Catalog.File))
		loaded, err := catalog.LoadFile(cfg.Catalog.File, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load tool inventory: %w", err)
		}
		primary = loaded

	case "postgres":
		logger.Info("Using Postgres tool inventory", zap.String("table", cfg.Catalog.PostgresTable))
		db, err := catalog.OpenPostgres(ctx, cfg.Catalog.PostgresDSN)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		loaded, err := catalog.LoadPostgres(ctx, db, cfg.Catalog.PostgresTable, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load tool inventory: %w", err)
		}
		primary = loaded

	default:
		return nil, fmt.Errorf("unknown catalog source: %s", cfg.Catalog.Source)
	}

	if cfg.Catalog.FallbackBuiltin {
		logger.Info("Built-in inventory enabled as fallback")
		return catalog.NewComposite(primary, catalog.NewDefault(), logger), nil
	}

	return primary, nil
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		parseLevel(level),
	)

	return zap.New(core), nil
}

func parseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return zapLevel
}
