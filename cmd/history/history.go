// Package history handles the expense history command
package history

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/expense-ledger/cmd/root"
	"fjacquet/expense-ledger/internal/aggregator"
	"fjacquet/expense-ledger/internal/container"
	"fjacquet/expense-ledger/internal/models"
	"fjacquet/expense-ledger/internal/report"

	"github.com/spf13/cobra"
)

var limit int

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded expenses, most recent first",
	Long:  `Show the expense history sorted by date, most recent first, followed by the total spend.`,
	RunE:  historyFunc,
}

func init() {
	Cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Show at most this many expenses (0: all)")
}

func historyFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	return Run(cmd.Context(), cmd.OutOrStdout(), c, limit)
}

// Run prints the ledger history.
func Run(ctx context.Context, out io.Writer, c *container.Container, limit int) error {
	expenses, err := c.GetTracker().History(ctx)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		_, err := fmt.Fprintln(out, aggregator.NoticeEmptyLedger)
		return err
	}

	total := aggregator.TotalSpend(expenses)
	if limit > 0 && limit < len(expenses) {
		expenses = expenses[:limit]
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "Date\tAmount\tCategory\tDescription")
	for _, row := range report.NewExpenseRows(expenses) {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Date, row.Amount, row.Category, row.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "\nTotal Expenses: %s\n", models.FormatCurrency(total))
	return err
}
