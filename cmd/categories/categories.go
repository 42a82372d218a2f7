// Package categories handles the categories listing command
package categories

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/expense-ledger/cmd/root"
	"fjacquet/expense-ledger/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List the active category labels",
	Long:  `List the labels of the active category profile with the definitions given to the AI provider.`,
	RunE:  categoriesFunc,
}

func categoriesFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	return Run(cmd.OutOrStdout(), c.GetCategorySet())
}

// Run prints set.
func Run(out io.Writer, set *models.CategorySet) error {
	if _, err := fmt.Fprintf(out, "Profile: %s\n\n", set.Name); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, cat := range set.Categories {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", cat.Name, cat.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\nOverflow: %s\n", set.Overflow)
	return err
}
