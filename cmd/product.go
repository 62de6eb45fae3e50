package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yunisnasibov/e-ticaret-12/internal/shop"
)

var productCmd = &cobra.Command{
	Use:   "product [id]",
	Short: "Show product details",
	Args:  cobra.ExactArgs(1),
	RunE:  runProduct,
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews [id]",
	Short: "List the reviews of a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviews,
}

var reviewsAddCmd = &cobra.Command{
	Use:   "add [id]",
	Short: "Review a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewsAdd,
}

func init() {
	reviewsAddCmd.Flags().Int("rating", 5, "Rating from 1 to 5")
	reviewsAddCmd.Flags().String("comment", "", "Review text")
	reviewsCmd.AddCommand(reviewsAddCmd)
	rootCmd.AddCommand(productCmd, reviewsCmd)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", arg)
	}
	return id, nil
}

func runProduct(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := fetching(cmd.Context(), fmt.Sprintf("Loading product #%d...", id))
	view, err := s.Product(ctx, id)
	stop()
	if err != nil {
		return err
	}

	return render(cmd, view, func(w io.Writer) {
		fmt.Fprintf(w, "%s\n\n", view.Title)
		fmt.Fprintf(w, "  Price:     %s\n", formatPrice(view.Price))
		fmt.Fprintf(w, "  Category:  %s\n", shop.CategoryName(view.Category))
		if view.Rating != nil {
			fmt.Fprintf(w, "  Rating:    %.1f (%d ratings)\n", view.Rating.Rate, view.Rating.Count)
		}
		if len(view.Reviews) > 0 {
			fmt.Fprintf(w, "  Reviews:   %.1f (%d reviews)\n", view.AverageRating, len(view.Reviews))
		}
		if view.Favorite {
			fmt.Fprintln(w, "  ♥ In your favorites")
		}
		if view.InCart > 0 {
			fmt.Fprintf(w, "  %d in your cart\n", view.InCart)
		}
		fmt.Fprintf(w, "\n%s\n", view.Description)
		if view.Image != "" {
			fmt.Fprintf(w, "\n%s\n", view.Image)
		}
	})
}

func runReviews(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}

	view := s.Reviews(id)
	return render(cmd, view, func(w io.Writer) {
		printReviewsTable(w, view.Reviews)
		if len(view.Reviews) > 0 {
			fmt.Fprintf(w, "\nAverage: %.1f\n", view.AverageRating)
		}
	})
}

func runReviewsAdd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	rating, _ := cmd.Flags().GetInt("rating")
	comment, _ := cmd.Flags().GetString("comment")

	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	rv, err := s.AddReview(cmd.Context(), id, rating, comment)
	if err != nil {
		return err
	}
	return render(cmd, rv, func(w io.Writer) {
		fmt.Fprintln(w, "Thanks for your review!")
	})
}
