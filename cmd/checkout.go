package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/shop"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the cart",
	Long: "Place an order for the cart. Blank shipping fields are filled from the saved\n" +
		"address of the logged-in user.",
	Args: cobra.NoArgs,
	RunE: runCheckout,
}

var ordersCmd = &cobra.Command{
	Use:   "orders [id]",
	Short: "List orders, or show one order",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runOrders,
}

func init() {
	f := checkoutCmd.Flags()
	f.String("full-name", "", "Recipient full name")
	f.String("address", "", "Street address")
	f.String("city", "", "City")
	f.String("postal-code", "", "Postal code")
	f.String("country", "", "Country (default from config)")
	f.String("payment", string(shop.PaymentCreditCard), "Payment: credit-card, bank-transfer, cash-on-delivery")
	f.String("card-number", "", "Card number (credit-card)")
	f.String("card-name", "", "Name on card (credit-card)")
	f.String("expiry", "", "Card expiry MM/YY (credit-card)")
	f.String("cvc", "", "Card CVC (credit-card)")
	rootCmd.AddCommand(checkoutCmd, ordersCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	form := shop.CheckoutForm{
		FullName:      get("full-name"),
		Address:       get("address"),
		City:          get("city"),
		PostalCode:    get("postal-code"),
		Country:       get("country"),
		PaymentMethod: shop.PaymentMethod(get("payment")),
		CardNumber:    get("card-number"),
		CardName:      get("card-name"),
		ExpiryDate:    get("expiry"),
		CVC:           get("cvc"),
	}

	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	order, err := s.Checkout(cmd.Context(), form)
	if err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}

	return render(cmd, order, func(w io.Writer) {
		fmt.Fprintln(w, "Order placed!")
		fmt.Fprintln(w)
		printOrderTable(w, order)
	})
}

func runOrders(cmd *cobra.Command, args []string) error {
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	if len(args) == 1 {
		order, err := s.Order(args[0])
		if err != nil {
			return err
		}
		return render(cmd, order, func(w io.Writer) { printOrderTable(w, order) })
	}

	orders := s.Orders()
	if orders == nil {
		orders = []models.Order{}
	}
	return render(cmd, orders, func(w io.Writer) { printOrdersTable(w, orders) })
}
