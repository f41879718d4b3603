package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/marcodamonte/langtour/internal/config"
	"github.com/marcodamonte/langtour/internal/demo"
	"github.com/marcodamonte/langtour/internal/fetch"
	"github.com/marcodamonte/langtour/internal/logging"
	"github.com/marcodamonte/langtour/internal/metrics"
)

var (
	envFlag  string
	onlyFlag []string
	fastFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "langtour",
	Short: "Tour of Go types and async-call patterns",
	Long: `Runs a fixed sequence of small demonstrations (types, generics, enums,
retry, race, overloading) and prints what each one does.`,
	SilenceUsage: true,
	RunE:         runTour,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tour sections in run order",
	Run: func(cmd *cobra.Command, args []string) {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for i, s := range demo.Sections() {
			fmt.Fprintf(tw, "%2d\t%s\t%s\n", i+1, s.Name, s.Title)
		}
		tw.Flush()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFlag, "env", "dev", "environment (dev, test, prod); selects .env.<env>")
	rootCmd.Flags().StringSliceVar(&onlyFlag, "only", nil, "run only these sections (comma separated)")
	rootCmd.Flags().BoolVar(&fastFlag, "fast", false, "skip every simulated delay")
	rootCmd.Flags().String("log-level", "", "log level (overrides LANGTOUR_LOG_LEVEL)")
	rootCmd.Flags().String("log-format", "", "log format: text or json")

	_ = viper.BindPFlag("LOG_LEVEL", rootCmd.Flags().Lookup("log-level"))
	_ = viper.BindPFlag("LOG_FORMAT", rootCmd.Flags().Lookup("log-format"))

	rootCmd.AddCommand(listCmd)
}

func runTour(cmd *cobra.Command, _ []string) error {
	if err := config.InitConfig(envFlag); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if fastFlag {
		cfg.NoDelays()
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return err
	}

	// Ctrl+C cancels whatever simulated wait is in progress.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()
	rec := metrics.NewRecorder(prometheus.NewRegistry())

	var limiter *rate.Limiter
	if cfg.Fetch.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Fetch.RateLimit), cfg.Fetch.RateBurst)
	}

	fetcher := fetch.New(fetch.Config{
		Delay:      cfg.Fetch.Delay,
		RetryDelay: cfg.Fetch.RetryDelay,
		Clock:      clock,
		Limiter:    limiter,
		Logger:     log,
		Metrics:    rec,
	})

	runner := demo.New(demo.Options{
		Out:        cmd.OutOrStdout(),
		Logger:     log,
		Fetcher:    fetcher,
		Clock:      clock,
		APIDelay:   cfg.Fetch.APIDelay,
		MaxRetries: cfg.Fetch.MaxRetries,
		Metrics:    rec,
	})

	log.WithField("env", envFlag).Debug("starting tour")
	return runner.Run(ctx, onlyFlag...)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
