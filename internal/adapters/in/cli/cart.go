// internal/adapters/in/cli/cart.go
package cli

import (
	"fmt"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	proddom "github.com/caerux/e-commerce-website/internal/domain/product"
)

// NewAddCommand adds one unit of a product to the cart.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <barcode>",
		Short: "Add one unit of a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := newContainer(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Engine.Add(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s x%d\n", args[0], c.Engine.Quantity(args[0]))
			return nil
		},
	}
}

// NewRemoveCommand removes a product line from the cart.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <barcode>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := newContainer(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Engine.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", args[0])
			return nil
		},
	}
}

// NewSetCommand pins a product line to an exact quantity.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <barcode> <quantity>",
		Short: "Set the quantity of a product (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}

			c, _, err := newContainer(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Engine.SetQuantity(cmd.Context(), args[0], qty); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s x%d\n", args[0], c.Engine.Quantity(args[0]))
			return nil
		},
	}
}

// NewShowCommand prints the cart priced against the catalog.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := newContainer(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer c.Close()

			snap := c.Engine.Snapshot()
			if snap.IsEmpty() {
				fmt.Fprintln(cmd.OutOrStdout(), "Cart is empty.")
				return nil
			}

			products, err := c.Catalog.Products(cmd.Context())
			if err != nil {
				return fmt.Errorf("catalog unavailable: %w", err)
			}
			byBarcode := make(map[string]proddom.Product, len(products))
			for _, p := range products {
				byBarcode[p.Barcode] = p
			}

			barcodes := make([]string, 0, len(snap))
			for bc := range snap {
				barcodes = append(barcodes, bc)
			}
			sort.Strings(barcodes)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BARCODE\tNAME\tQTY\tPRICE\tSUBTOTAL")
			total := 0.0
			for _, bc := range barcodes {
				qty := snap[bc]
				p := byBarcode[bc]
				subtotal := p.Price * float64(qty)
				total += subtotal
				fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.2f\n", bc, p.Name, qty, p.Price, subtotal)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d item(s), %.2f\n", snap.TotalItems(), total)
			return nil
		},
	}
}
