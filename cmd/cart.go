package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yunisnasibov/e-ticaret-12/internal/shop"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the cart",
	Args:  cobra.NoArgs,
	RunE:  runCartList,
}

func init() {
	cartCmd.AddCommand(
		&cobra.Command{Use: "list", Short: "Show the cart", Args: cobra.NoArgs, RunE: runCartList},
		&cobra.Command{Use: "add [id]", Short: "Add one unit of a product", Args: cobra.ExactArgs(1), RunE: runCartAdd},
		&cobra.Command{Use: "remove [id]", Short: "Remove a product line", Args: cobra.ExactArgs(1), RunE: runCartRemove},
		&cobra.Command{Use: "decrease [id]", Short: "Remove one unit, keeping at least one", Args: cobra.ExactArgs(1), RunE: runCartDecrease},
		&cobra.Command{Use: "clear", Short: "Empty the cart", Args: cobra.NoArgs, RunE: runCartClear},
	)
	rootCmd.AddCommand(cartCmd)
}

func renderCart(cmd *cobra.Command, view shop.CartView) error {
	return render(cmd, view, func(w io.Writer) { printCartTable(w, view) })
}

func runCartList(cmd *cobra.Command, args []string) error {
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	return renderCart(cmd, s.CartView())
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := fetching(cmd.Context(), fmt.Sprintf("Adding product #%d...", id))
	view, err := s.AddToCart(ctx, id)
	stop()
	if err != nil {
		return err
	}
	return renderCart(cmd, view)
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	view, err := s.RemoveFromCart(cmd.Context(), id)
	if err != nil {
		return err
	}
	return renderCart(cmd, view)
}

func runCartDecrease(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	view, err := s.DecreaseQuantity(cmd.Context(), id)
	if err != nil {
		return err
	}
	return renderCart(cmd, view)
}

func runCartClear(cmd *cobra.Command, args []string) error {
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	if err := s.ClearCart(cmd.Context()); err != nil {
		return err
	}
	return renderCart(cmd, s.CartView())
}
