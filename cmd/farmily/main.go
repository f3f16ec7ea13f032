// Command farmily is the Farmily terminal client: a herd record keeper that
// first asks the remote gate whether to show remote content instead.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farmily/farmily/internal/client/attribution"
	"github.com/farmily/farmily/internal/client/backup"
	"github.com/farmily/farmily/internal/client/cli"
	"github.com/farmily/farmily/internal/client/config"
	"github.com/farmily/farmily/internal/client/gate"
	"github.com/farmily/farmily/internal/client/localdb"
	"github.com/farmily/farmily/internal/client/resolver"
	"github.com/farmily/farmily/internal/client/services"
	"github.com/farmily/farmily/internal/logging"
	"github.com/farmily/farmily/internal/telemetry"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "farmily: %v\n", err)
		os.Exit(1)
	}
}

func initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func run(args []string) error {
	cfg, err := config.LoadConfig(args)
	if err != nil {
		return err
	}

	logger, logFile, err := logging.NewFile(logging.FileOptions{
		Path:       cfg.LogFile,
		Level:      cfg.LogLevel,
		MaxSizeMB:  5,
		MaxBackups: 3,
		MaxAgeDays: 28,
	})
	if err != nil {
		return fmt.Errorf("logger init error: %w", err)
	}
	defer logFile.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	initSignalHandler(cancel)

	logger.Info(ctx, "Starting farmily...", "database", cfg.DatabasePath, "metrics", cfg.MetricsEnabled)

	repos, err := localdb.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error(ctx, "db init error", "error", err)
		return fmt.Errorf("db init error: %w", err)
	}
	defer repos.Close()

	settings := services.NewSettingsService(repos.Settings)
	languages, err := services.NewLanguageManager(ctx, settings)
	if err != nil {
		return err
	}
	themes, err := services.NewThemeManager(ctx, settings)
	if err != nil {
		return err
	}

	tp := telemetry.New(cfg.MetricsEnabled)
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer scancel()
		if err := tp.Shutdown(sctx, logger); err != nil {
			logger.Warn(sctx, "telemetry shutdown failed", "error", err)
		}
	}()
	metrics, err := telemetry.NewGateMetrics(tp.Meter())
	if err != nil {
		return err
	}

	// The install id is created here so the gate fetch itself never writes it.
	attr := attribution.NewInstallIDProvider(repos.Settings, logger)
	if err := attr.Init(ctx); err != nil {
		logger.Warn(ctx, "attribution id unavailable", "error", err)
	}
	gateClient := gate.NewHTTPClient(cfg.GateEndpoint, cfg.GateSecret, cfg.GateTimeout, attr)

	res := resolver.New(ctx, settings, gateClient, resolver.Options{
		Timeout: cfg.GateTimeout,
		Logger:  logger,
		Metrics: metrics,
	})
	defer res.Close()

	app := cli.NewApp(cli.Deps{
		Resolver:  res,
		Animals:   services.NewAnimalService(repos.Animals),
		Languages: languages,
		Themes:    themes,
		Settings:  settings,
		Backup: backup.New(backup.Config{
			Bucket:    cfg.Backup.Bucket,
			Region:    cfg.Backup.Region,
			Endpoint:  cfg.Backup.Endpoint,
			Prefix:    cfg.Backup.Prefix,
			AccessKey: cfg.Backup.AccessKey,
			SecretKey: cfg.Backup.SecretKey,
		}, repos.DB),
		Logger: logger,
		In:     os.Stdin,
		Out:    os.Stdout,
	})

	// Run blocks on stdin, so a signal has to be able to win without it.
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	select {
	case err = <-done:
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout)
	}

	logger.Info(ctx, "Shutting down", "state", res.State().String())
	return err
}
