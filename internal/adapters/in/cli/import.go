// internal/adapters/in/cli/import.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewImportCommand bulk-populates the cart from a barcode,quantity CSV.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Bulk import cart lines from a CSV file",
		Long: `Bulk import cart lines from a CSV file.

The file must carry "barcode" and "quantity" columns (any order, extra
columns ignored). The import is all-or-nothing: any bad row rejects the
whole file and the cart stays untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			c, _, err := newContainer(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.Importer.Import(cmd.Context(), f)
			if err != nil {
				return err
			}

			if len(res.Errors) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Import rejected, %d error(s):\n", len(res.Errors))
				for _, re := range res.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "  row %d: %s\n", re.Row, re.Message)
				}
				return fmt.Errorf("%d row(s) failed validation", len(res.Errors))
			}

			for _, l := range res.Lines {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s x%d = %.2f\n", l.Barcode, l.Name, l.Quantity, l.Subtotal)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d line(s), total %.2f\n", len(res.Lines), res.Total)
			return nil
		},
	}
}
