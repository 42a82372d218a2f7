// Package classify handles the classify command
package classify

import (
	"context"
	"io"
	"strings"

	"fjacquet/expense-ledger/cmd/common"
	"fjacquet/expense-ledger/cmd/root"
	"fjacquet/expense-ledger/internal/apperror"
	"fjacquet/expense-ledger/internal/container"

	"github.com/spf13/cobra"
)

var description string

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a description without saving it",
	Long:  `Classify an expense description into the active category set using the configured AI provider. Nothing is written to the ledger.`,
	RunE:  classifyFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Expense description to classify")
	_ = Cmd.MarkFlagRequired("description")
}

func classifyFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	return Run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), c, description)
}

// Run classifies description and prints the predicted category.
func Run(ctx context.Context, out, errOut io.Writer, c *container.Container, description string) error {
	if strings.TrimSpace(description) == "" {
		common.PrintWarnings(errOut, common.WarningBlankDescription)
		return &apperror.ValidationError{Field: "description", Reason: "must not be blank", Err: apperror.ErrBlankDescription}
	}

	result := c.GetTracker().Classify(ctx, description)
	common.PrintClassification(out, errOut, result)
	return nil
}
