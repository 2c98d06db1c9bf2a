package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/careerscan/internal/config"
	"github.com/JakeFAU/careerscan/internal/crawler"
	"github.com/JakeFAU/careerscan/internal/dispatcher"
	collyfetcher "github.com/JakeFAU/careerscan/internal/fetcher/colly"
	"github.com/JakeFAU/careerscan/internal/firms"
	"github.com/JakeFAU/careerscan/internal/id/uuid"
	"github.com/JakeFAU/careerscan/internal/logging"
	"github.com/JakeFAU/careerscan/internal/metrics"
	"github.com/JakeFAU/careerscan/internal/policy/ratelimit"
	"github.com/JakeFAU/careerscan/internal/report"
	"github.com/JakeFAU/careerscan/internal/worker"
)

const shutdownTimeout = 5 * time.Second

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "careerscan [flags] <firms-file>",
		Short: "Find job openings on a list of organization home pages.",
		Long: `careerscan visits each firm's home page, follows links that look like
career pages one hop deep, and reports either which firms have openings
(status mode) or every opening it can identify (itemized mode).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runScan(cmd.Context(), cmd, cfgFile, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("mode", string(crawler.ModeItemized), "report mode: status or itemized")
	flags.Int("workers", dispatcher.DefaultWorkers, "number of firms processed concurrently")
	flags.String("output", report.DefaultOutputPath, "itemized output path (.csv or .xlsx)")
	flags.String("metrics-addr", "", "serve /metrics and /healthz on this address during the scan")

	return cmd
}

func runScan(ctx context.Context, cmd *cobra.Command, cfgFile, firmsFile string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		_ = logger.Sync() //nolint:errcheck // stderr sync fails on some terminals
	}()

	scanID, err := uuid.New().NewID()
	if err != nil {
		return fmt.Errorf("scan id: %w", err)
	}
	logger = logger.With(zap.String("scan_id", scanID))

	list, err := firms.Load(firmsFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("file not found: %s", firmsFile)
		}
		return err
	}

	if cfg.Metrics.ListenAddr != "" {
		srv, err := metrics.Start(cfg.Metrics.ListenAddr, logger)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics shutdown failed", zap.Error(err))
			}
		}()
	}

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent: cfg.Crawler.UserAgent,
		Timeout:   cfg.RequestTimeout(),
		Limiter: ratelimit.New(ratelimit.Config{
			DefaultRPS:   cfg.Crawler.PerHostQPS,
			DefaultBurst: cfg.Crawler.PerHostBurst,
		}),
	})
	processor := worker.NewProcessor(fetcher, logger)
	disp := dispatcher.New(processor, dispatcher.Config{
		Workers: cfg.Scan.Concurrency,
		Mode:    cfg.Mode(),
	}, logger)

	logger.Info("scan started",
		zap.Int("firms", len(list)),
		zap.String("mode", string(cfg.Mode())),
		zap.Int("workers", cfg.Scan.Concurrency))
	start := time.Now()
	results := disp.Scan(ctx, list)
	logger.Info("scan finished", zap.Duration("elapsed", time.Since(start)))

	out := cmd.OutOrStdout()
	if cfg.Mode() == crawler.ModeStatus {
		return writeStatus(out, cfg.Report.StatusFormat, results)
	}
	if err := report.WriteItemized(out, cfg.Report.OutputPath, report.Flatten(results)); err != nil {
		return fmt.Errorf("write openings: %w", err)
	}
	return nil
}

func writeStatus(out io.Writer, format string, results []crawler.ScanResult) error {
	statuses := make([]crawler.FirmResult, len(results))
	for i, r := range results {
		statuses[i] = r.Status
	}
	if format == report.StatusTable {
		report.WriteStatusTable(out, statuses)
		return nil
	}
	return report.WriteStatus(out, statuses)
}
