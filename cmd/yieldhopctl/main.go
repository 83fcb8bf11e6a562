package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"yieldhop/internal/client"
	"yieldhop/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type cliOptions struct {
	gateway string
	timeout time.Duration
	verbose bool
	chain   string
	amount  string
}

func main() {
	opts := &cliOptions{}
	var (
		zapLogger *zap.Logger
		log       *slog.Logger
		gw        client.GatewayClient
	)

	root := &cobra.Command{
		Use:           "yieldhopctl",
		Short:         "Command line client for the staking gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := zap.NewDevelopmentConfig()
			if !opts.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
			}
			var err error
			zapLogger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			log = slog.New(zapslog.NewHandler(zapLogger.Core(), zapslog.WithName("yieldhopctl")))
			gw = client.NewGatewayClient(opts.gateway, opts.timeout, zapLogger)
			log.Debug("Gateway client ready", "gateway", opts.gateway, "command", cmd.Name())
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if zapLogger != nil {
				_ = zapLogger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.gateway, "gateway", envOr("YIELDHOP_GATEWAY", "http://localhost:8080"), "gateway base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	ctxFor := func(cmd *cobra.Command) (context.Context, context.CancelFunc) {
		return context.WithTimeout(cmd.Context(), opts.timeout)
	}

	chainsCmd := &cobra.Command{
		Use:   "chains",
		Short: "List the supported chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := ctxFor(cmd)
			defer cancel()
			chains, err := gw.ListChains(ctx)
			if err != nil {
				return err
			}
			return printJSON(chains, "")
		},
	}

	stakingCmd := &cobra.Command{
		Use:   "staking <wallet>",
		Short: "Show the staking view of a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := ctxFor(cmd)
			defer cancel()
			view, msg, err := gw.GetStaking(ctx, args[0], entity.ChainKey(opts.chain))
			if err != nil {
				return err
			}
			return printJSON(view, msg)
		},
	}
	stakingCmd.Flags().StringVar(&opts.chain, "chain", "", "chain to select (sepolia, fuji)")

	refreshCmd := &cobra.Command{
		Use:   "refresh <wallet>",
		Short: "Re-read the staking view of a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := ctxFor(cmd)
			defer cancel()
			view, msg, err := gw.RefreshStaking(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(view, msg)
		},
	}

	portfolioCmd := &cobra.Command{
		Use:   "portfolio <wallet>",
		Short: "Show the cross-chain portfolio of a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := ctxFor(cmd)
			defer cancel()
			view, msg, err := gw.GetPortfolio(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(view, msg)
		},
	}

	prepareCmd := &cobra.Command{
		Use:       "prepare <wallet> <deposit|withdraw|triggerMigration|resetMigration>",
		Short:     "Prepare an unsigned staking call",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{string(entity.ActionDeposit), string(entity.ActionWithdraw), string(entity.ActionTriggerMigration), string(entity.ActionResetMigration)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := ctxFor(cmd)
			defer cancel()
			call, err := gw.PrepareAction(ctx, args[0], entity.ChainKey(opts.chain), entity.ActionKind(args[1]), opts.amount)
			if err != nil {
				return err
			}
			log.Info("Call prepared", "id", call.ID, "to", call.To)
			return printJSON(call, "")
		},
	}
	prepareCmd.Flags().StringVar(&opts.chain, "chain", "", "chain the call targets")
	prepareCmd.Flags().StringVar(&opts.amount, "amount", "", "decimal amount for deposit and withdraw")

	actionCmd := &cobra.Command{
		Use:   "action <id>",
		Short: "Show a prepared call that is still awaiting confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := ctxFor(cmd)
			defer cancel()
			call, err := gw.GetAction(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(call, "")
		},
	}

	confirmCmd := &cobra.Command{
		Use:   "confirm <id> <txHash>",
		Short: "Wait for the receipt of a sent staking call",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := ctxFor(cmd)
			defer cancel()
			conf, msg, err := gw.ConfirmAction(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(conf, msg)
		},
	}

	themeCmd := &cobra.Command{
		Use:   "theme [dark|light|toggle]",
		Short: "Show or change the theme preference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := ctxFor(cmd)
			defer cancel()
			var (
				pref entity.ThemePreference
				err  error
			)
			switch {
			case len(args) == 0:
				pref, err = gw.GetTheme(ctx)
			case args[0] == "toggle":
				pref, err = gw.ToggleTheme(ctx)
			case args[0] == "dark" || args[0] == "light":
				pref, err = gw.SetTheme(ctx, args[0] == "dark")
			default:
				dark, perr := strconv.ParseBool(args[0])
				if perr != nil {
					return fmt.Errorf("unknown theme %q", args[0])
				}
				pref, err = gw.SetTheme(ctx, dark)
			}
			if err != nil {
				return err
			}
			return printJSON(pref, "")
		},
	}

	root.AddCommand(chainsCmd, stakingCmd, refreshCmd, portfolioCmd, prepareCmd, actionCmd, confirmCmd, themeCmd)

	if err := root.Execute(); err != nil {
		if log != nil {
			log.Error("Command failed", "error", err)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printJSON(v any, message string) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(out))
	if message != "" {
		fmt.Fprintln(os.Stderr, message)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
