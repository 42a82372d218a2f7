// Package add handles the add-expense command
package add

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fjacquet/expense-ledger/cmd/common"
	"fjacquet/expense-ledger/cmd/root"
	"fjacquet/expense-ledger/internal/apperror"
	"fjacquet/expense-ledger/internal/container"
	"fjacquet/expense-ledger/internal/models"
	"fjacquet/expense-ledger/internal/report"

	"github.com/spf13/cobra"
)

// Options holds the add command flags.
type Options struct {
	Date        string
	Amount      string
	Description string
	Income      string
}

var opts Options

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Add an expense and classify its description",
	Long: `Add an expense to the ledger. The description is classified into a budgeting
category by the configured AI provider before the record is saved. When the
provider fails, the expense is still saved under the overflow category.`,
	RunE: addFunc,
}

func init() {
	Cmd.Flags().StringVarP(&opts.Date, "date", "t", "", "Expense date (default: today)")
	Cmd.Flags().StringVarP(&opts.Amount, "amount", "a", "", "Expense amount")
	Cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Expense description (e.g. 'Dinner with friends')")
	Cmd.Flags().StringVarP(&opts.Income, "income", "i", "", "Monthly after-tax income, prints the 50/30/20 summary")
	_ = Cmd.MarkFlagRequired("amount")
}

func addFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	return Run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), c, opts)
}

// Run adds one expense and prints the outcome.
func Run(ctx context.Context, out, errOut io.Writer, c *container.Container, o Options) error {
	date, err := common.ParseDateFlag(o.Date)
	if err != nil {
		return &apperror.ValidationError{Field: "date", Value: o.Date, Reason: "unrecognised date format", Err: err}
	}
	amount, err := models.ParseAmount(o.Amount)
	if err != nil {
		return &apperror.ValidationError{Field: "amount", Value: o.Amount, Reason: "not a number", Err: err}
	}
	income, err := common.ParseIncome(o.Income)
	if err != nil {
		return err
	}

	result, err := c.GetTracker().AddExpense(ctx, models.NewExpense{
		Date:        date,
		Amount:      amount,
		Description: o.Description,
	})
	if errors.Is(err, apperror.ErrBlankDescription) {
		common.PrintWarnings(errOut, common.WarningBlankDescription)
		return err
	}
	if err != nil {
		return err
	}

	common.PrintClassification(out, errOut, result.Classification)
	if _, err := fmt.Fprintln(out, result.Message); err != nil {
		return err
	}

	if income.IsPositive() {
		summary := c.GetAggregator().Summarize(result.Ledger, income)
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
		return c.NewReportGenerator(false).Write(out, summary, report.FormatText)
	}
	return nil
}
