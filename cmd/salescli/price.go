package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/musika/salescore/internal/common"
)

var priceCmd = &cobra.Command{
	Use:     "price <question>",
	Short:   "Ask for a product's price",
	Example: `  salescli price "how much is bread?"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sales, _, cleanup, err := openEnv()
		if err != nil {
			return err
		}
		defer cleanup()

		query := strings.Join(args, " ")
		info, suggestions, err := sales.PriceInquiry(cmd.Context(), query, storeID)
		if errors.Is(err, common.ErrProductNotFound) {
			fmt.Println("Product not found.")
			for _, s := range suggestions {
				fmt.Printf("  did you mean: %s\n", s)
			}
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s costs $%s per unit (%d in stock, %s)\n",
			info.ProductName, info.UnitPrice.StringFixed(2), info.Stock, info.Category)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(priceCmd)
}
