package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/fatflowers/mollie-ideal/internal/app"
	"github.com/fatflowers/mollie-ideal/internal/app/service/payment"
	"github.com/fatflowers/mollie-ideal/internal/platform/mollie"
	"github.com/fatflowers/mollie-ideal/pkg/config"
	"github.com/fatflowers/mollie-ideal/pkg/types"
)

var configFile string

type services struct {
	fx.In

	Config *config.Config
	Client *mollie.Client
	Single *payment.SinglePaymentService
	Multi  *payment.MultiPaymentService
}

// withServices builds the core app, runs fn and shuts the app down again.
func withServices(ctx context.Context, fn func(s services) error) error {
	if configFile != "" {
		if err := os.Setenv("APP_CONFIG_FILE", configFile); err != nil {
			return err
		}
	}
	cfg, err := config.New()
	if err != nil {
		return err
	}

	var s services
	a := fx.New(app.Core(cfg), fx.NopLogger, fx.Invoke(func(in services) { s = in }))
	if err := a.Err(); err != nil {
		return err
	}
	startCtx, cancel := context.WithTimeout(ctx, app.DefaultStartTimeout)
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), app.DefaultStopTimeout)
		defer cancel()
		_ = a.Stop(stopCtx)
	}()
	return fn(s)
}

func banksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List the banks that currently accept iDeal payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(s services) error {
				banks, err := s.Client.ListBanks(cmd.Context())
				if err != nil {
					return err
				}
				return printBanks(cmd.OutOrStdout(), banks)
			})
		},
	}
}

func showCmd() *cobra.Command {
	var multiple bool
	cmd := &cobra.Command{
		Use:   "show <object_id> [transaction_id]",
		Short: "Print the stored payment state of an object",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(s services) error {
				ctx := cmd.Context()
				objectID := args[0]
				switch {
				case multiple && len(args) == 2:
					rec, err := s.Multi.GetTransaction(ctx, objectID, args[1])
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), rec)
				case multiple:
					recs, err := s.Multi.ListTransactions(ctx, objectID)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), recs)
				default:
					rec, err := s.Single.GetPayment(ctx, objectID)
					if err != nil {
						return err
					}
					return printJSON(cmd.OutOrStdout(), rec)
				}
			})
		},
	}
	cmd.Flags().BoolVarP(&multiple, "multiple", "m", false, "Object uses multiple payment mode")
	return cmd
}

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <object_id> [transaction_id]",
		Short: "Check a payment with Mollie and store the result",
		Long: `Check a payment with Mollie and store the result.

Only the first check of a transaction is authoritative. If Mollie already
reported the payment, this prints CheckedBefore and leaves the stored facts alone.
Pass a transaction id for objects in multiple payment mode.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(s services) error {
				var (
					st  types.PaymentStatus
					err error
				)
				if len(args) == 2 {
					st, err = s.Multi.GetPaymentStatus(cmd.Context(), args[0], args[1])
				} else {
					st, err = s.Single.GetPaymentStatus(cmd.Context(), args[0])
				}
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), st)
				return err
			})
		},
	}
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the postgres tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Building the core app runs the migration when storage.driver is postgres.
			return withServices(cmd.Context(), func(s services) error {
				if s.Config.Storage.Driver != config.StorageDriverPostgres {
					return fmt.Errorf("nothing to migrate for storage driver %q", s.Config.Storage.Driver)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "migration done")
				return err
			})
		},
	}
}

func printBanks(w io.Writer, banks []mollie.Bank) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BANK_ID\tNAME")
	for _, b := range banks {
		fmt.Fprintf(tw, "%s\t%s\n", b.ID, b.Name)
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
