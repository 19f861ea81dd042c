package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/salesnorm/internal/application/ingest"
	"github.com/erp/salesnorm/internal/domain/marketplace"
	"github.com/erp/salesnorm/internal/infrastructure/config"
	"github.com/erp/salesnorm/internal/infrastructure/logger"
	"github.com/erp/salesnorm/internal/infrastructure/lookup"
	"github.com/erp/salesnorm/internal/infrastructure/telemetry"
)

const (
	kindTransactions = "transactions"
	kindProductSales = "product_sales"
)

func main() {
	var (
		configFile string
		platformIn string
		kind       string
		file       string
	)

	flag.StringVar(&configFile, "config", "", "Path to config file (default: config.toml in ., ./config or /app)")
	flag.StringVar(&platformIn, "platform", "", "Source platform: shopee, tiktok or lazada (default: ingest.default_platform)")
	flag.StringVar(&kind, "kind", kindTransactions, "Report kind: transactions or product_sales")
	flag.StringVar(&file, "file", "", "Path to the CSV or XLSX export")
	flag.Parse()

	if file == "" {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(log, cfg, platformIn, kind, file); err != nil {
		log.Error("Ingest failed", zap.Error(err))
		_ = logger.Sync(log)
		os.Exit(1)
	}
	_ = logger.Sync(log)
}

func run(log *zap.Logger, cfg *config.Config, platformIn, kind, file string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if platformIn == "" {
		platformIn = cfg.Ingest.DefaultPlatform
	}
	platform, err := marketplace.ParsePlatform(platformIn)
	if err != nil {
		return err
	}

	ctx, plog := logger.WithPlatform(ctx, log, platform.String())
	plog.Info("Starting salesnorm",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("kind", kind),
		zap.String("file", file),
	)

	otelProviders, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		Insecure:          cfg.Telemetry.Insecure,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Environment:       cfg.App.Env,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
	}, log)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := otelProviders.Shutdown(shutdownCtx); err != nil {
			plog.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	metrics, err := telemetry.NewIngestMetrics(telemetry.IngestMetricsConfig{
		Meter:  otelProviders.Meter("salesnorm/ingest"),
		Logger: log,
	})
	if err != nil {
		return fmt.Errorf("init ingest metrics: %w", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	opts := []ingest.Option{
		ingest.WithLogger(log),
		ingest.WithMetrics(metrics),
		ingest.WithTracer(otelProviders.Tracer("salesnorm/ingest")),
		ingest.WithMaxIssues(cfg.Ingest.MaxIssues),
		ingest.WithMaxFileSize(cfg.Ingest.MaxFileSize),
	}

	var result any
	switch kind {
	case kindTransactions:
		result, err = ingest.NewTransactionParser(opts...).Parse(ctx, platform, data)
	case kindProductSales:
		tables := lookup.Empty()
		if cfg.Ingest.LookupFile != "" {
			if tables, err = lookup.LoadFile(cfg.Ingest.LookupFile); err != nil {
				return err
			}
		}
		codeNames := tables.CodeNamesFor(platform)
		uploadID := uuid.New()
		ctx, _ = logger.WithUploadID(ctx, plog, uploadID.String())
		logger.L(ctx).Debug("Lookup tables ready",
			zap.String("lookup_file", cfg.Ingest.LookupFile),
			zap.Int("codes", len(codeNames)),
			zap.Int("provinces", len(tables.ProvinceAliases)),
		)
		result, err = ingest.NewProductSalesParser(opts...).Parse(ctx, platform, data, ingest.Lookups{
			CodeNames:       codeNames,
			ProvinceAliases: tables.ProvinceAliases,
			UploadID:        uploadID,
			ObservedAt:      time.Now().UTC(),
		})
	default:
		return fmt.Errorf("unknown report kind %q", kind)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: salesnorm -file <export> [-platform shopee|tiktok|lazada] [-kind transactions|product_sales] [-config file]")
	flag.PrintDefaults()
}
