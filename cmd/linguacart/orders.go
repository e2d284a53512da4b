package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"linguacart/cmd/linguacart/ui"
	"linguacart/internal/config"
	"linguacart/internal/orders"
)

var ordersLimit int

// ordersCmd lists recently confirmed orders from the local ledger.
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List recently confirmed orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cfg.Orders.Disabled {
			return fmt.Errorf("order ledger is disabled in the configuration")
		}

		store, err := orders.Open(cfg.Orders.Path)
		if err != nil {
			return fmt.Errorf("open order ledger: %w", err)
		}
		defer store.Close()

		recs, err := store.Recent(ordersLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No orders recorded yet.")
			return nil
		}

		styles := ui.NewStyles(ui.ResolveTheme(cfg.UI.Theme))
		table := ui.NewSimpleTable("Recent orders", []string{"Order", "Placed", "Delivery", "Destination", "Items", "Total"}).AlignRight(4, 5)
		for _, r := range recs {
			items := 0
			for _, l := range r.Lines {
				items += l.Quantity
			}
			table.AddRow(
				r.ID,
				r.PlacedAt.Format("2006-01-02 15:04"),
				r.DeliveryMethod,
				r.Destination,
				fmt.Sprintf("%d", items),
				fmt.Sprintf("€%.2f", r.Total),
			)
		}
		fmt.Fprintln(out, table.View(styles))
		return nil
	},
}

func init() {
	ordersCmd.Flags().IntVarP(&ordersLimit, "limit", "n", 20, "maximum number of orders to show")
}
