package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"marketfetcher/internal/cdn"
	"marketfetcher/internal/config"
	"marketfetcher/internal/fetcher"
	"marketfetcher/internal/logger"
	"marketfetcher/internal/market"
	"marketfetcher/internal/ratelimit"
)

// app carries the state shared by every command of one invocation
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer

	cfgFile         string
	dumpMetrics     bool
	pageConcurrency int

	cfg       *config.Config
	logger    *slog.Logger
	transport *fetcher.RestyTransport
	client    *market.Client
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "marketfetcher",
		Short: "Query the Steam Community Market",
		Long: "marketfetcher reads prices, listings, order books and account history\n" +
			"from the Steam Community Market and prints them as JSON.",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./config.yaml or $HOME/.marketfetcher/config.yaml)")
	flags.String("currency", "", "currency code for prices (default USD)")
	flags.String("format", "", "data format requested from the market: json, vdf or xml")
	flags.String("base-url", "", "market host")
	flags.String("cookie", "", "steamLoginSecure cookie value for account endpoints")
	flags.String("cdn-file", "", "yaml table of Counter-Strike image URLs")
	flags.Float64("rps", 0, "requests per second (0 uses the per-endpoint defaults)")
	flags.Duration("timeout", 0, "request timeout")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: text or json")
	flags.BoolVar(&a.dumpMetrics, "metrics", false, "print collected metrics to stderr on exit")
	flags.IntVar(&a.pageConcurrency, "page-concurrency", 1, "pages fetched at once when collecting all listings")

	for key, flag := range map[string]string{
		"currency":            "currency",
		"format":              "format",
		"base_url":            "base-url",
		"steam_cookie":        "cookie",
		"cdn_file":            "cdn-file",
		"requests_per_second": "rps",
		"timeout":             "timeout",
		"log_level":           "log-level",
		"log_format":          "log-format",
	} {
		cobra.CheckErr(a.v.BindPFlag(key, flags.Lookup(flag)))
	}

	root.AddCommand(
		a.priceCmd(),
		a.imageCmd(),
		a.historyCmd(),
		a.listingsCmd(),
		a.activityCmd(),
		a.histogramCmd(),
		a.myHistoryCmd(),
		a.myListingsCmd(),
		a.popularCmd(),
		a.recentCmd(),
		a.watchCmd(),
		a.currenciesCmd(),
	)
	return root
}

// setup loads configuration and builds the market client
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	}

	cfg, err := config.LoadFrom(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger.NewWithWriter(a.errOut, cfg.LogLevel, cfg.LogFormat)

	opts := market.Options{Currency: cfg.Currency, Format: cfg.Format}
	if cfg.CDNFile != "" {
		table, err := cdn.LoadFile(cfg.CDNFile)
		if err != nil {
			return err
		}
		a.logger.Debug("image table loaded", "path", cfg.CDNFile, "items", table.Len())
		opts.CDN = table
	}

	limiter := ratelimit.NewDefault()
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RequestsPerSecond)
	}

	a.transport = fetcher.NewRestyTransport(cfg.BaseURL, cfg.Timeout,
		fetcher.WithLimiter(limiter),
		fetcher.WithTransportLogger(a.logger))

	a.client = market.New(opts,
		market.WithTransport(a.transport),
		market.WithLogger(a.logger),
		market.WithPageConcurrency(a.pageConcurrency))

	a.logger.Debug("market client ready",
		"command", cmd.Name(),
		"currency_id", a.client.Configuration().CurrencyID,
		"format", a.client.Configuration().Format)
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.transport != nil {
		if err := a.transport.Close(); err != nil {
			a.logger.Warn("closing transport", "error", err)
		}
	}
	if a.dumpMetrics {
		return writeMetrics(a.errOut, prometheus.DefaultGatherer)
	}
	return nil
}

// writeMetrics prints the marketfetcher metric families in the text exposition format
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "marketfetcher_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
