// Package summary handles the ledger summary command
package summary

import (
	"context"
	"io"

	"fjacquet/expense-ledger/cmd/common"
	"fjacquet/expense-ledger/cmd/root"
	"fjacquet/expense-ledger/internal/container"
	"fjacquet/expense-ledger/internal/report"
	"fjacquet/expense-ledger/internal/validation"

	"github.com/spf13/cobra"
)

// Options holds the summary command flags.
type Options struct {
	Income      string
	Format      string
	WithHistory bool
}

var opts Options

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarise the ledger and check the 50/30/20 rule",
	Long: `Summarise the ledger: total spend, spend by category and over time.
With a monthly after-tax income, also show each budget bucket as a percentage
of income and whether it complies with the 50/30/20 rule.`,
	RunE: summaryFunc,
}

func init() {
	Cmd.Flags().StringVarP(&opts.Income, "income", "i", "", "Monthly after-tax income")
	Cmd.Flags().StringVarP(&opts.Format, "format", "f", report.FormatText, "Output format: text, json or yaml")
	Cmd.Flags().BoolVar(&opts.WithHistory, "history", false, "Include the full expense history")
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	return Run(cmd.Context(), cmd.OutOrStdout(), c, opts)
}

// Run renders the ledger summary.
func Run(ctx context.Context, out io.Writer, c *container.Container, o Options) error {
	if err := validation.IsValidOutputFormat(o.Format); err != nil {
		return err
	}
	income, err := common.ParseIncome(o.Income)
	if err != nil {
		return err
	}

	s, err := c.GetTracker().Summary(ctx, income)
	if err != nil {
		return err
	}
	return c.NewReportGenerator(o.WithHistory).Write(out, s, o.Format)
}
