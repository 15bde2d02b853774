package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"InvestAdvisor/internal/collector"
	"InvestAdvisor/internal/config"
	"InvestAdvisor/internal/model"
	"InvestAdvisor/internal/notifier"
	"InvestAdvisor/internal/scheduler"
	"InvestAdvisor/internal/server"
	"InvestAdvisor/pkg/logger"
)

const defaultConfigPath = "configs/config.yaml"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	var (
		cfgPath string
		dataDir string
		cfg     *config.Config
	)

	rootCmd := &cobra.Command{
		Use:   "advisor",
		Short: "InvestAdvisor - heuristic portfolio recommendations",
		Long: `InvestAdvisor scores each holding of a client's portfolio against market
trends and the client's profile, and recommends whether to hold, increase,
reduce or sell it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(cfgPath); err != nil {
				return err
			}
			if dataDir != "" {
				cfg.Data.Dir = dataDir
			}
			return cfg.Validate()
		},
	}

	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", firstNonEmpty(cfgPath, defaultConfigPath), "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (overrides data.dir)")

	getCfg := func() *config.Config { return cfg }
	rootCmd.AddCommand(newServeCmd(getCfg))
	rootCmd.AddCommand(newAdviseCmd(getCfg))
	rootCmd.AddCommand(newGenerateCmd(getCfg))

	return rootCmd
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
}

// newServeCmd runs the HTTP API, the digest scheduler and Telegram polling.
func newServeCmd(getCfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the scheduled digest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getCfg()
			log := newLogger(cfg)
			logger.SetGlobalLogger(log)

			a, err := newApp(cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.TelegramEnabled() {
				tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
				sched := scheduler.NewScheduler(ctx, a.service, tn, a.metrics, cfg.Digest.ClientIDs, log)
				if err := sched.Register(cfg.Digest.Cron); err != nil {
					return err
				}
				sched.Start()
				defer sched.Stop()

				go tn.StartPolling(ctx, sched.HandleCommand)
				log.Info().Msg("telegram polling started")

				if os.Getenv("RUN_ON_START") == "true" {
					log.Info().Msg("RUN_ON_START enabled, running digest now")
					go sched.RunDigestNow()
				}
			} else {
				log.Info().Msg("telegram not configured, digest and chat commands disabled")
			}

			srv := server.New(server.Config{
				Addr:        cfg.Server.Addr,
				CORSOrigins: cfg.Server.CORSOrigins,
				Log:         log,
				Service:     a.service,
				Metrics:     a.metrics,
			})
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("shutdown signal received, stopping")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

// newAdviseCmd prints advice for one client.
func newAdviseCmd(getCfg func() *config.Config) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "advise CLIENT_ID",
		Short: "Print recommendations for a client",
		Example: `  advisor advise CLIENT0001
  advisor advise CLIENT0001 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getCfg()
			a, err := newApp(cfg, newLogger(cfg))
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.service.Advise(cmd.Context(), args[0], model.TriggerCLI)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res.Response)
			}
			writeReport(cmd.OutOrStdout(), res.Response)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full response as JSON")
	return cmd
}

// newGenerateCmd writes a synthetic data set.
func newGenerateCmd(getCfg func() *config.Config) *cobra.Command {
	var (
		clients int
		seed    uint64
		out     string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic client, portfolio and market data set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getCfg()
			if out == "" {
				out = cfg.Data.Dir
			}
			if !cmd.Flags().Changed("clients") {
				clients = cfg.Data.Clients
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Data.Seed
			}
			if clients <= 0 {
				return fmt.Errorf("--clients must be positive")
			}

			store := collector.NewGenerator(seedOrClock(seed), time.Now()).Generate(clients)
			if err := store.Export(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s clients in %s\n", humanize.Comma(int64(clients)), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&clients, "clients", 100, "Number of clients")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (0 uses the clock)")
	cmd.Flags().StringVar(&out, "out", "", "Output directory (defaults to data.dir)")
	return cmd
}

// writeReport prints a plain-text advice report.
func writeReport(w io.Writer, resp *model.AdviceResponse) {
	fmt.Fprintf(w, "%s (%s) | %s | $%s\n", resp.ClientName, resp.ClientID, resp.RiskProfile,
		humanize.FormatFloat("#,###.##", resp.TotalPortfolioValue))

	f := resp.InvestmentFactors
	fmt.Fprintf(w, "Factors: market %.2f  risk %.2f  diversification %.2f  age %.2f  goal %.2f\n\n",
		f.MarketTrend, f.RiskTolerance, f.Diversification, f.AgeBasedAllocation, f.GoalAlignment)

	for _, r := range resp.Recommendations {
		fmt.Fprintf(w, "%-24s %-20s %6.2f%% -> %6.2f%%  confidence %5.1f\n",
			r.AssetClass, r.Action, r.CurrentAllocation, r.TargetAllocation, r.ConfidenceScore)
		if r.Explanation != "" {
			fmt.Fprintf(w, "    %s\n", r.Explanation)
		}
	}

	fmt.Fprintln(w)
	for _, line := range resp.OverallAdvice {
		fmt.Fprintf(w, "- %s\n", line)
	}
	fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(resp.ModelUsed))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
