package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yunisnasibov/e-ticaret-12/internal/models"
	"github.com/yunisnasibov/e-ticaret-12/internal/shop"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the logged-in user, saved address and recent orders",
	Args:  cobra.NoArgs,
	RunE:  runProfile,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change name, email or avatar",
	Args:  cobra.NoArgs,
	RunE:  runProfileUpdate,
}

var profileAddressCmd = &cobra.Command{
	Use:   "address",
	Short: "Save the shipping address used at checkout",
	Args:  cobra.NoArgs,
	RunE:  runProfileAddress,
}

func init() {
	registerCmd.Flags().String("name", "", "Full name")
	registerCmd.Flags().String("email", "", "Email address")
	registerCmd.Flags().String("password", "", "Password")
	registerCmd.Flags().String("confirm-password", "", "Password again")

	loginCmd.Flags().String("email", "", "Email address")
	loginCmd.Flags().String("password", "", "Password")

	profileUpdateCmd.Flags().String("name", "", "New name")
	profileUpdateCmd.Flags().String("email", "", "New email address")
	profileUpdateCmd.Flags().String("avatar", "", "Avatar URL")

	f := profileAddressCmd.Flags()
	f.String("full-name", "", "Recipient full name")
	f.String("address", "", "Street address")
	f.String("city", "", "City")
	f.String("postal-code", "", "Postal code")
	f.String("country", "", "Country (default from config)")
	f.String("phone", "", "Phone number")

	profileCmd.AddCommand(profileUpdateCmd, profileAddressCmd)
	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, profileCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	var form shop.RegisterForm
	form.Name, _ = cmd.Flags().GetString("name")
	form.Email, _ = cmd.Flags().GetString("email")
	form.Password, _ = cmd.Flags().GetString("password")
	form.ConfirmPassword, _ = cmd.Flags().GetString("confirm-password")

	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	u, err := s.Register(cmd.Context(), form)
	if err != nil {
		return fmt.Errorf("register failed: %w", err)
	}
	return render(cmd, u, func(w io.Writer) { fmt.Fprintf(w, "Welcome, %s!\n", u.Name) })
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	u, err := s.Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	return render(cmd, u, func(w io.Writer) { fmt.Fprintf(w, "Logged in as %s <%s>.\n", u.Name, u.Email) })
}

func runLogout(cmd *cobra.Command, args []string) error {
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	if err := s.Logout(cmd.Context()); err != nil {
		return err
	}
	return render(cmd, map[string]bool{"loggedOut": true}, func(w io.Writer) { fmt.Fprintln(w, "Logged out.") })
}

func runProfile(cmd *cobra.Command, args []string) error {
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	view, err := s.Profile(cmd.Context())
	if err != nil {
		return err
	}

	return render(cmd, view, func(w io.Writer) {
		fmt.Fprintf(w, "%s <%s>\n", view.User.Name, view.User.Email)
		if a := view.Address; a != nil {
			fmt.Fprintf(w, "Address: %s, %s, %s %s, %s  |  %s\n", a.FullName, a.Address, a.PostalCode, a.City, a.Country, a.Phone)
		}
		fmt.Fprintf(w, "\nRecent orders (%d total):\n\n", view.OrderCount)
		printOrdersTable(w, view.RecentOrders)
	})
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	var patch models.UserPatch
	for name, dst := range map[string]**string{"name": &patch.Name, "email": &patch.Email, "avatar": &patch.Avatar} {
		if cmd.Flags().Changed(name) {
			v, _ := cmd.Flags().GetString(name)
			*dst = &v
		}
	}

	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	u, err := s.UpdateProfile(cmd.Context(), patch)
	if err != nil {
		return err
	}
	return render(cmd, u, func(w io.Writer) { fmt.Fprintf(w, "Profile updated: %s <%s>\n", u.Name, u.Email) })
}

func runProfileAddress(cmd *cobra.Command, args []string) error {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	addr := models.Address{
		ShippingAddress: models.ShippingAddress{
			FullName:   get("full-name"),
			Address:    get("address"),
			City:       get("city"),
			PostalCode: get("postal-code"),
			Country:    get("country"),
		},
		Phone: get("phone"),
	}

	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	saved, err := s.SaveAddress(cmd.Context(), addr)
	if err != nil {
		return err
	}
	return render(cmd, saved, func(w io.Writer) { fmt.Fprintln(w, "Address saved.") })
}
