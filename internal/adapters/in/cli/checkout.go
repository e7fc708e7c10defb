// internal/adapters/in/cli/checkout.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCheckoutCommand places an order from the current cart.
func NewCheckoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Place an order from the current cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := newContainer(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer c.Close()

			o, err := c.Checkout.PlaceOrder(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Order %s placed: %d item(s), total %.2f\n",
				o.ID, o.TotalQuantity(), o.Total)
			return nil
		},
	}
}
