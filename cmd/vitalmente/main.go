package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/api"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/cli"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/config"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/db"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/i18n"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/jobs"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/logging"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/payments"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/services"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "vitalmente: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin *os.File, stdout io.Writer) error {
	if len(args) > 0 && !cli.IsCommand(args[0]) {
		return fmt.Errorf("unknown command %q\n%w", args[0], cli.ErrUsage)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLogger, err := logging.New(logging.Options{
		Level:         cfg.LogLevel,
		Format:        cfg.LogFormat,
		LogstashAddr:  cfg.LogstashAddr,
		LogstashLabel: cfg.LogstashLabel,
	})
	if err != nil {
		return fmt.Errorf("logging init failed: %w", err)
	}
	defer func() {
		_ = closeLogger()
	}()

	location, err := cfg.Location()
	if err != nil {
		logger.WithError(err).Warn("falling back to UTC")
	}
	time.Local = location

	database, err := db.Open(db.Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DatabaseDSN(),
		MaxOpenConns: cfg.DBMaxOpenConns,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	if len(args) > 0 {
		return cli.Run(cli.Environment{Database: database, Stdin: stdin, Out: stdout}, args)
	}

	if cfg.SeedCatalog {
		if err := cli.RunSeedCommand(database, stdout); err != nil {
			return err
		}
	}

	return serve(cfg, database, logger, location)
}

func serve(cfg config.Config, database *gorm.DB, logger *logrus.Logger, location *time.Location) error {
	handler, err := buildHandler(cfg, database, logger, location)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := api.NewApp(handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	sweeper := jobs.NewExpirySweeper(handler.SubscriptionService(), cfg.ExpirySchedule, location, logger)
	if err := sweeper.Start(lifecycleCtx); err != nil {
		return fmt.Errorf("expiry job init failed: %w", err)
	}
	defer sweeper.Stop()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.WithError(err).Error("server shutdown failed")
		}
	}()

	logger.WithFields(logrus.Fields{
		"port":     cfg.Port,
		"driver":   cfg.DBDriver,
		"tz":       location.String(),
		"payments": cfg.PaymentsEnabled(),
	}).Info("VitalMente listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func buildHandler(cfg config.Config, database *gorm.DB, logger *logrus.Logger, location *time.Location) (*api.Handler, error) {
	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	gateway, err := buildGateway(cfg)
	if err != nil {
		return nil, err
	}
	if gateway == nil {
		logger.Warn("payment gateway not configured, checkout disabled")
	}

	return api.NewHandler(database, api.Options{
		SecretKey:    cfg.SecretKey,
		Location:     location,
		I18n:         i18nManager,
		CookieSecure: cfg.CookieSecure,
		Logger:       logger,
		Gateway:      gateway,
		Subscription: services.SubscriptionConfig{
			Currency:      cfg.PaymentCurrency,
			WebhookSecret: cfg.PaymentWebhookSecret,
			ReturnURL:     cfg.PaymentReturnURL,
		},
		RequestsPerSecond: cfg.RateLimitPerSecond,
		RequestBurst:      cfg.RateLimitBurst,
	})
}

// buildGateway returns a nil interface when payments are not configured.
func buildGateway(cfg config.Config) (payments.Gateway, error) {
	if !cfg.PaymentsEnabled() {
		return nil, nil
	}
	gateway, err := payments.NewHTTPGateway(payments.Config{
		BaseURL: cfg.PaymentGatewayURL,
		APIKey:  cfg.PaymentGatewayAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("payment gateway init failed: %w", err)
	}
	if cfg.PaymentWebhookSecret == "" {
		return nil, errors.New("PAYMENT_WEBHOOK_SECRET is required when the payment gateway is configured")
	}
	return gateway, nil
}
