package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitapp/internal/calculator"
	"github.com/mmynk/splitapp/internal/server"
	"github.com/mmynk/splitapp/internal/storage"
)

func newBalancesCommand(opts *globalOptions) *cobra.Command {
	var groupID string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Print a group's balances and suggested settlements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := server.OpenStore(cmd.Context(), opts.cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			return printBalances(cmd.Context(), cmd.OutOrStdout(), store, groupID)
		},
	}

	cmd.Flags().StringVarP(&groupID, "group", "g", "", "group ID (required)")
	_ = cmd.MarkFlagRequired("group")

	return cmd
}

func printBalances(ctx context.Context, out io.Writer, store storage.Store, groupID string) error {
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("loading group: %w", err)
	}
	expenses, err := store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("loading expenses: %w", err)
	}

	balances := calculator.ComputeBalances(group.Members, expenses)
	stats := calculator.ComputeStats(group.Members, expenses)

	fmt.Fprintf(out, "%s: %d expenses, total %s, %s per person\n\n",
		group.Name, stats.ExpenseCount, calculator.Money(stats.Total), calculator.Money(stats.AveragePerPerson))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MEMBER\tBALANCE")
	for _, b := range calculator.OrderedBalances(group.Members, balances) {
		fmt.Fprintf(tw, "%s\t%s\n", b.Name, calculator.Money(b.Amount))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	settlements := calculator.ComputeSettlements(balances)
	if len(settlements) == 0 {
		fmt.Fprintln(out, "\nAll settled up.")
		return nil
	}

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FROM\tTO\tAMOUNT")
	for _, s := range settlements {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.From, s.To, calculator.Money(s.Amount))
	}
	return tw.Flush()
}
