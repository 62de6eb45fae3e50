package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yunisnasibov/e-ticaret-12/internal/shop"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the featured products of the home page",
	Args:  cobra.NoArgs,
	RunE:  runHome,
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List all products",
	Args:  cobra.NoArgs,
	RunE:  runProducts,
}

func init() {
	productsCmd.Flags().String("query", "", "Filter by title or description")
	productsCmd.Flags().String("category", "", "Filter by category slug")
	rootCmd.AddCommand(homeCmd, productsCmd)
}

func runHome(cmd *cobra.Command, args []string) error {
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := fetching(cmd.Context(), "Loading featured products...")
	view := s.Home(ctx)
	stop()

	return render(cmd, view, func(w io.Writer) {
		for i, sec := range view.Sections {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", sec.Title)
			printProductsTable(w, sec.Products)
		}
	})
}

func runProducts(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	category, _ := cmd.Flags().GetString("category")

	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := fetching(cmd.Context(), "Loading products...")
	view := s.Browse(ctx, shop.BrowseOptions{Query: query, Category: category})
	stop()

	return render(cmd, view, func(w io.Writer) {
		printProductsTable(w, view.Products)
		fmt.Fprintf(w, "\n%d products\n", len(view.Products))
	})
}
