package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/webmapper-go/webmapper/internal/config"
	goqueryextractor "github.com/webmapper-go/webmapper/internal/extractor/goquery"
	collyfetcher "github.com/webmapper-go/webmapper/internal/fetcher/colly"
	"github.com/webmapper-go/webmapper/internal/logging"
	"github.com/webmapper-go/webmapper/internal/mapper"
	"github.com/webmapper-go/webmapper/internal/progress"
	"github.com/webmapper-go/webmapper/internal/progress/sinks"
	"github.com/webmapper-go/webmapper/internal/report"
	"github.com/webmapper-go/webmapper/internal/server"
)

// newMapCmd creates and configures the 'map' subcommand.
func newMapCmd() *cobra.Command {
	var (
		maxDepth  int
		rateLimit time.Duration
		outputDir string
		noReport  bool
	)

	cmd := &cobra.Command{
		Use:   "map <url>",
		Short: "Maps a web site starting from the given seed URL",
		Long: `Crawls the site anchored at the seed URL, following relative
links up to the configured depth, and prints every discovered page URL in
lexicographic order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("max-depth") {
				cfg.Mapper.MaxDepth = maxDepth
			}
			if cmd.Flags().Changed("rate-limit") {
				cfg.Mapper.RateLimit = rateLimit
			}
			if cmd.Flags().Changed("output-dir") {
				cfg.Output.Dir = outputDir
			}
			if noReport {
				cfg.Output.Enabled = false
			}
			return runMap(cmd, cfg, args[0])
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", mapper.DefaultMaxDepth, "maximum link-following depth")
	cmd.Flags().DurationVar(&rateLimit, "rate-limit", mapper.DefaultRateLimit, "delay between followed links")
	cmd.Flags().StringVar(&outputDir, "output-dir", "./out", "directory the run report is written to")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "skip writing the run report")

	return cmd
}

func runMap(cmd *cobra.Command, cfg config.Config, seed string) error {
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	promSink, err := sinks.NewPrometheusSink(registry)
	if err != nil {
		return fmt.Errorf("init metrics sink: %w", err)
	}
	emitter := progress.NewFanout(sinks.NewLogSink(logger), promSink)

	if cfg.Metrics.Addr != "" {
		srv := server.New(cfg.Metrics.Addr, registry, logger)
		srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if serr := srv.Shutdown(shutdownCtx); serr != nil {
				logger.Warn("metrics listener shutdown failed", zap.Error(serr))
			}
		}()
	}

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.HTTP.Timeout,
	}, logger)

	m, err := mapper.New(seed,
		mapper.WithMaxDepth(cfg.Mapper.MaxDepth),
		mapper.WithRateLimit(cfg.Mapper.RateLimit),
		mapper.WithFetcher(fetcher),
		mapper.WithExtractor(goqueryextractor.New()),
		mapper.WithProgress(emitter),
		mapper.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	start := time.Now().UTC()
	links, mapErr := m.MapSite(ctx)
	for _, link := range links {
		fmt.Fprintln(cmd.OutOrStdout(), link)
	}

	if cfg.Output.Enabled {
		writer, werr := report.NewFileWriter(cfg.Output.Dir, logger)
		if werr != nil {
			return werr
		}
		if _, werr = writer.Write(context.Background(), report.Report{
			RunID:      m.RunID().String(),
			Domain:     m.Domain(),
			StartedAt:  start,
			DurationMs: time.Since(start).Milliseconds(),
			Visited:    len(m.Visited()),
			Links:      links,
		}); werr != nil {
			return werr
		}
	}

	if mapErr != nil && !errors.Is(mapErr, context.Canceled) {
		return fmt.Errorf("map site: %w", mapErr)
	}
	return nil
}
