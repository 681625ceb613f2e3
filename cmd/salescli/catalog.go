package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/musika/salescore/internal/entity"
)

// catalogFixture is the YAML shape of a seed catalog file.
type catalogFixture struct {
	StoreID  string `yaml:"store_id"`
	Products []struct {
		ID            string `yaml:"id"`
		Name          string `yaml:"name"`
		UnitPrice     string `yaml:"unit_price"`
		StockQuantity int    `yaml:"stock_quantity"`
		Category      string `yaml:"category"`
	} `yaml:"products"`
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local product catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <fixture.yaml>",
	Short: "Load products from a YAML fixture into the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var fixture catalogFixture
		if err := yaml.Unmarshal(raw, &fixture); err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}
		if fixture.StoreID == "" {
			fixture.StoreID = storeID
		}

		catalog, _, _, cleanup, err := openEnv()
		if err != nil {
			return err
		}
		defer cleanup()

		for _, p := range fixture.Products {
			price, err := decimal.NewFromString(p.UnitPrice)
			if err != nil {
				return fmt.Errorf("product %q: bad unit_price %q: %w", p.Name, p.UnitPrice, err)
			}
			id := p.ID
			if id == "" {
				id = uuid.NewString()
			}
			category := p.Category
			if category == "" {
				category = "General"
			}
			product := entity.Product{
				ID:            id,
				StoreID:       fixture.StoreID,
				Name:          p.Name,
				UnitPrice:     price,
				StockQuantity: p.StockQuantity,
				Category:      category,
			}
			if err := catalog.UpsertProduct(cmd.Context(), product); err != nil {
				return err
			}
		}
		fmt.Printf("Imported %d products into store %s\n", len(fixture.Products), fixture.StoreID)
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the store's products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, _, _, cleanup, err := openEnv()
		if err != nil {
			return err
		}
		defer cleanup()

		products, err := catalog.ListProducts(cmd.Context(), storeID)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("No products. Seed some with: salescli catalog import fixture.yaml")
			return nil
		}
		for _, p := range products {
			fmt.Printf("%-28s $%-8s stock %-5d %s\n",
				p.Name, p.UnitPrice.StringFixed(2), p.StockQuantity, p.Category)
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}
