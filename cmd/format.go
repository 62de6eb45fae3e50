package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/platform"
	"github.com/yunisnasibov/e-ticaret-12/internal/shop"
	"github.com/yunisnasibov/e-ticaret-12/internal/ui"
)

// render writes v as indented JSON or through table, per --format.
func render(cmd *cobra.Command, v any, table func(w io.Writer)) error {
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "table", "":
		table(out)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json or table)", format)
	}
}

// fetching starts a spinner fed by catalog progress messages. Call the
// returned stop func once the catalog calls are done.
func fetching(ctx context.Context, msg string) (context.Context, func()) {
	spin := ui.NewSpinner()
	spin.Start(msg)
	return platform.WithProgress(ctx, spin.Update), spin.Stop
}

// printProductsTable prints products in a human-friendly card layout.
func printProductsTable(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}
	for i, p := range products {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, " %d. %s\n", i+1, truncate(p.Title, 70))
		line := fmt.Sprintf("    #%d  |  %s  |  %s", p.ID, formatPrice(p.Price), shop.CategoryName(p.Category))
		if p.Rating != nil {
			line += fmt.Sprintf("  |  %.1f★ (%d)", p.Rating.Rate, p.Rating.Count)
		}
		fmt.Fprintln(w, line)
	}
}

func printCartTable(w io.Writer, view shop.CartView) {
	if len(view.Items) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}
	for _, it := range view.Items {
		fmt.Fprintf(w, " #%-5d %-50s %3d × %-12s %s\n",
			it.ID, truncate(it.Title, 50), it.Quantity, formatPrice(it.Price), formatPrice(it.Subtotal()))
	}
	fmt.Fprintf(w, "\n %d items  |  Total: %s\n", view.Count, formatPrice(view.Total))
}

func printOrderTable(w io.Writer, o models.Order) {
	fmt.Fprintf(w, " %s  |  %s  |  %s\n", o.ID, o.Date.Local().Format("2006-01-02 15:04"), o.Status.Label())
	for _, it := range o.Items {
		fmt.Fprintf(w, "    %3d × %-50s %s\n", it.Quantity, truncate(it.Product.Title, 50), formatPrice(it.Product.Price))
	}
	a := o.ShippingAddress
	fmt.Fprintf(w, "    Ship to: %s, %s, %s %s, %s\n", a.FullName, a.Address, a.PostalCode, a.City, a.Country)
	fmt.Fprintf(w, "    Payment: %s  |  Total: %s\n", o.PaymentMethod, formatPrice(o.TotalAmount))
}

func printOrdersTable(w io.Writer, orders []models.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders yet.")
		return
	}
	for i, o := range orders {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printOrderTable(w, o)
	}
}

func printReviewsTable(w io.Writer, reviews []models.Review) {
	if len(reviews) == 0 {
		fmt.Fprintln(w, "No reviews yet.")
		return
	}
	for _, r := range reviews {
		fmt.Fprintf(w, " %s %s  %s  %s\n", stars(r.Rating), r.Username, r.Date.Local().Format("2006-01-02"), r.Comment)
	}
}

// formatPrice formats a price as "1234.50 TL" in the configured currency.
func formatPrice(d decimal.Decimal) string {
	currency := "TL"
	if cfg != nil && cfg.Currency != "" {
		currency = cfg.Currency
	}
	return d.StringFixed(2) + " " + currency
}

func stars(n int) string {
	n = max(0, min(n, 5))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
