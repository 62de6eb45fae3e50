package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yunisnasibov/e-ticaret-12/internal/shop"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List product categories",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

var categoryCmd = &cobra.Command{
	Use:   "category [slug]",
	Short: "List the products of one category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategory,
}

func init() {
	categoryCmd.Flags().String("sort", "default", "Sort: default, price-asc, price-desc, name-asc, name-desc")
	rootCmd.AddCommand(categoriesCmd, categoryCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := fetching(cmd.Context(), "Loading categories...")
	cats := s.Categories(ctx)
	stop()

	return render(cmd, cats, func(w io.Writer) {
		for i, c := range cats {
			fmt.Fprintf(w, " %2d. %-20s %s\n", i+1, c, shop.CategoryName(c))
		}
	})
}

func runCategory(cmd *cobra.Command, args []string) error {
	sortFlag, _ := cmd.Flags().GetString("sort")
	order, err := shop.ParseSortOrder(sortFlag)
	if err != nil {
		return err
	}

	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := fetching(cmd.Context(), fmt.Sprintf("Loading category '%s'...", args[0]))
	view := s.Category(ctx, args[0], order)
	stop()

	return render(cmd, view, func(w io.Writer) {
		fmt.Fprintf(w, "== %s ==\n", view.Name)
		printProductsTable(w, view.Products)
	})
}
