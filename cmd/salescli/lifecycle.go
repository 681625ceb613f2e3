package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/musika/salescore/internal/lifecycle"
)

var hundred = decimal.NewFromInt(100)

var confirmCmd = &cobra.Command{
	Use:   "confirm <transaction-id>",
	Short: "Confirm a pending transaction and decrement stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLifecycle(cmd, args[0], lifecycle.ActionConfirm)
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <transaction-id>",
	Short: "Cancel a pending transaction (no stock effect)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLifecycle(cmd, args[0], lifecycle.ActionCancel)
	},
}

func runLifecycle(cmd *cobra.Command, txID string, action lifecycle.Action) error {
	_, _, manager, cleanup, err := openEnv()
	if err != nil {
		return err
	}
	defer cleanup()

	receipt, err := manager.ConfirmOrCancel(cmd.Context(), txID, userID, storeID, action)
	if err != nil {
		return err
	}
	fmt.Printf("Transaction %s %s\n", txID, receipt.Status)
	if action == lifecycle.ActionConfirm {
		printReceipt(receipt)
		fmt.Println("\nStock levels updated.")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(cancelCmd)
}
