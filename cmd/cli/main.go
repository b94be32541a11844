package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/splitnest/internal/infrastructure/bootstrap"
	"github.com/iho/splitnest/internal/infrastructure/config"
	"github.com/iho/splitnest/internal/infrastructure/logger"
	"github.com/iho/splitnest/internal/infrastructure/metrics"
)

// bcryptGenerate is swapped in tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

// cli carries the state shared by all commands: flags and the wired app.
type cli struct {
	loadConfig func() (*config.Config, error)
	app        *bootstrap.App
	username   string
	password   string
	jsonOutput bool
}

func main() {
	c := &cli{loadConfig: config.Load}
	rootCmd := newRootCmd(c)

	err := rootCmd.Execute()
	if closeErr := c.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "splitnest",
		Short:         "SplitNest CLI tool",
		Long:          `Track shared expenses between two partners and see who owes whom.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.username, "username", "", "Username, required when AUTH_ENABLED is set")
	rootCmd.PersistentFlags().StringVar(&c.password, "password", "", "Password, required when AUTH_ENABLED is set")
	rootCmd.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "Print results as JSON")

	rootCmd.AddCommand(
		c.partnersCmd(),
		c.ratioCmd(),
		c.expenseCmd(),
		c.balanceCmd(),
		c.recurringCmd(),
		c.breakdownCmd(),
		c.exportCmd(),
		c.resetCmd(),
		c.ledgerCmd(),
		hashPasswordCmd(),
	)

	return rootCmd
}

// open loads configuration, wires the store and checks credentials.
func (c *cli) open(cmd *cobra.Command) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Keep stderr quiet unless debug logging is requested.
	level := cfg.LogLevel
	if level == "" || level == "info" {
		level = "warn"
	}
	log := logger.New(logger.Config{
		Output: cmd.ErrOrStderr(),
		Level:  level,
		Format: "console",
	})

	// reset must still work on a ledger that no longer loads.
	var opts []bootstrap.Option
	if cmd.Name() == "reset" {
		opts = append(opts, bootstrap.WithoutStoreCheck())
	}

	// A private registry: the CLI exposes no /metrics.
	app, err := bootstrap.New(cmd.Context(), cfg, metrics.NewWithRegistry(prometheus.NewRegistry()), log, opts...)
	if err != nil {
		return err
	}
	c.app = app

	if cfg.AuthEnabled {
		if c.username == "" || c.password == "" {
			return errors.New("authentication is enabled: pass --username and --password")
		}
		if _, err := app.Auth.Authenticate(cmd.Context(), c.username, c.password); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
	}

	return nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password PASSWORD",
		Short: "Print a bcrypt hash to use in the settings file",
		Args:  cobra.ExactArgs(1),
		// Needs neither the store nor credentials.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
