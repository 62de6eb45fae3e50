package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/yunisnasibov/e-ticaret-12/internal/shop"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search products by title or description",
	Args:  cobra.ArbitraryArgs,
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().String("category", "", "Category slug filter")
	searchCmd.Flags().String("min-price", "", "Lowest price (default 0)")
	searchCmd.Flags().String("max-price", "", "Highest price (default: highest catalog price)")
	searchCmd.Flags().String("sort", "default", "Sort: default, price-asc, price-desc, name-asc, name-desc")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	category, _ := cmd.Flags().GetString("category")
	sortFlag, _ := cmd.Flags().GetString("sort")

	order, err := shop.ParseSortOrder(sortFlag)
	if err != nil {
		return err
	}
	opts := shop.SearchOptions{Query: query, Category: category, Sort: order}
	if opts.MinPrice, err = priceFlag(cmd, "min-price"); err != nil {
		return err
	}
	if opts.MaxPrice, err = priceFlag(cmd, "max-price"); err != nil {
		return err
	}

	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := fetching(cmd.Context(), fmt.Sprintf("Searching '%s'...", query))
	view := s.Search(ctx, opts)
	stop()

	return render(cmd, view, func(w io.Writer) {
		printProductsTable(w, view.Products)
		fmt.Fprintf(w, "\n%d results  |  price %s - %s\n",
			len(view.Products), formatPrice(view.MinPrice), formatPrice(view.MaxPrice))
	})
}

func priceFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &d, nil
}
