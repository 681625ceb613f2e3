package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/musika/salescore/internal/entity"
)

var customerName string

var sellCmd = &cobra.Command{
	Use:   "sell <message>",
	Short: "Parse and price a dictated sale message",
	Example: `  salescli sell "2 bread, 1 milk"
  salescli sell "2 bread @1.50, 1 maheu @0.75"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sales, _, cleanup, err := openEnv()
		if err != nil {
			return err
		}
		defer cleanup()

		message := strings.Join(args, " ")
		result, err := sales.ParseAndPrice(cmd.Context(), message, userID, storeID, customerName)
		if err != nil {
			return err
		}

		for _, w := range result.Warnings {
			fmt.Printf("warning: %s\n", w)
		}
		for _, e := range result.Errors {
			fmt.Printf("error: %s\n", e)
		}
		for _, s := range result.Suggestions {
			fmt.Printf("hint: %s\n", s)
		}
		if result.Receipt != nil {
			printReceipt(result.Receipt)
		}
		if result.Success {
			fmt.Printf("\nPending confirmation. Run:\n  salescli confirm %s\n  salescli cancel %s\n",
				result.PendingTransactionID, result.PendingTransactionID)
		}
		return nil
	},
}

func printReceipt(r *entity.Receipt) {
	fmt.Printf("\nReceipt %s (%s)\n", r.TransactionID, r.Status)
	if r.CustomerName != "" {
		fmt.Printf("Customer: %s\n", r.CustomerName)
	}
	for _, item := range r.Items {
		fmt.Printf("  %dx %-24s @ $%s = $%s\n",
			item.Quantity, item.Name, item.UnitPrice.StringFixed(2), item.LineTotal.StringFixed(2))
	}
	fmt.Printf("Subtotal: $%s\n", r.Subtotal.StringFixed(2))
	fmt.Printf("Tax (%s%%): $%s\n", r.TaxRate.Mul(hundred).StringFixed(0), r.TaxAmount.StringFixed(2))
	fmt.Printf("Total: $%s\n", r.Total.StringFixed(2))
}

func init() {
	sellCmd.Flags().StringVar(&customerName, "customer", "", "customer name for the receipt")
	rootCmd.AddCommand(sellCmd)
}
