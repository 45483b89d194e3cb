package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/internal/core/application/workflow"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// NewRootCmd builds the fulfillment command line.
func NewRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "fulfillment",
		Short:         "Order fulfillment back office",
		Long:          "Runs the fulfillment API and the maintenance tasks around its order store.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")

	open := func(cmd *cobra.Command) (*CompositionRoot, Config, error) {
		cfg, err := LoadConfig(envFile)
		if err != nil {
			return nil, Config{}, err
		}
		root, err := NewCompositionRoot(cfg, newLogger(cmd.ErrOrStderr(), cfg.LogLevel))
		if err != nil {
			return nil, Config{}, err
		}
		return root, cfg, nil
	}

	rootCmd.AddCommand(
		serveCmd(open),
		migrateCmd(open),
		statsCmd(open),
		seedCmd(open),
		expireSessionsCmd(open),
	)
	return rootCmd
}

type opener func(cmd *cobra.Command) (*CompositionRoot, Config, error)

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func serveCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, cfg, err := open(cmd)
			if err != nil {
				return err
			}
			defer root.Close()

			if err = root.Migrate(); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}

			router, err := root.NewRouter()
			if err != nil {
				return err
			}

			jobManager := root.NewJobManager()
			if err = jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- router.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
			}()
			root.logger.Info("fulfillment API listening", "port", cfg.HTTPPort, "store", cfg.StoreDriver)

			select {
			case err = <-serveErr:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			root.logger.Info("shutting down")
			return router.Shutdown(shutdownCtx)
		},
	}
}

func migrateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the Postgres schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, cfg, err := open(cmd)
			if err != nil {
				return err
			}
			defer root.Close()

			if err = root.Migrate(); err != nil {
				return err
			}
			if cfg.StoreDriver == StoreDriverBadger {
				fmt.Fprintln(cmd.OutOrStdout(), "badger store has no schema; nothing to migrate")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", color.New(color.FgGreen).Sprint("✓"))
			return nil
		},
	}
}

func statsCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, _, err := open(cmd)
			if err != nil {
				return err
			}
			defer root.Close()

			stats, err := root.Facade().GetOrderStatistics(cmd.Context())
			if err != nil {
				return err
			}
			printStatistics(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}

func printStatistics(w io.Writer, s workflow.Statistics) {
	header := color.New(color.Bold)
	header.Fprintln(w, "Orders")
	fmt.Fprintf(w, "  total:             %d\n", s.Total)
	fmt.Fprintf(w, "  today:             %d\n", s.TodayCount)
	fmt.Fprintf(w, "  today revenue:     %s\n", formatMinor(s.TodayRevenueMinor))
	fmt.Fprintf(w, "  today net revenue: %s\n", formatMinor(s.TodayNetRevenueMinor))
	fmt.Fprintln(w)
	header.Fprintln(w, "By status")
	rows := []struct {
		name  string
		count int
		c     color.Attribute
	}{
		{"pending", s.Pending, color.FgYellow},
		{"paid", s.Paid, color.FgCyan},
		{"in_packing", s.InPacking, color.FgBlue},
		{"packed", s.Packed, color.FgBlue},
		{"shipped", s.Shipped, color.FgMagenta},
		{"delivered", s.Delivered, color.FgGreen},
		{"cancelled", s.Cancelled, color.FgRed},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-11s %d\n", color.New(row.c).Sprint(row.name), row.count)
	}
}

func formatMinor(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}

func seedCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Create demo orders from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := ReadSeedFile(args[0])
			if err != nil {
				return err
			}

			root, _, err := open(cmd)
			if err != nil {
				return err
			}
			defer root.Close()

			if err = root.Migrate(); err != nil {
				return err
			}

			created, err := Seed(cmd.Context(), root.Facade(), seed)
			for _, o := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					color.New(color.FgGreen).Sprint("created"), o.ID, o.Status)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d orders\n", len(created))
			return nil
		},
	}
}

func expireSessionsCmd(open opener) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "expire-sessions",
		Short: "Cancel packing sessions left in progress",
		Long: `Cancels every packing session in progress for longer than --older-than
(default PACKING_SESSION_TTL) and returns its order to paid.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, cfg, err := open(cmd)
			if err != nil {
				return err
			}
			defer root.Close()

			if olderThan == 0 {
				olderThan = cfg.PackingSessionTTL
			}
			if olderThan <= 0 {
				return errors.New("set --older-than or PACKING_SESSION_TTL")
			}

			expired, err := root.Facade().ExpireStalePackingSessions(cmd.Context(), olderThan)
			fmt.Fprintf(cmd.OutOrStdout(), "expired %d packing sessions\n", expired)
			return err
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "age after which an in-progress session is expired")
	return cmd
}
