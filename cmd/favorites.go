package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List favorite products",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

func init() {
	favoritesCmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List favorite products", Args: cobra.NoArgs, RunE: runFavoritesList},
		&cobra.Command{Use: "toggle [id]", Short: "Add or remove a favorite", Args: cobra.ExactArgs(1), RunE: runFavoritesToggle},
		&cobra.Command{Use: "remove [id]", Short: "Remove a favorite", Args: cobra.ExactArgs(1), RunE: runFavoritesRemove},
		&cobra.Command{Use: "clear", Short: "Remove all favorites", Args: cobra.NoArgs, RunE: runFavoritesClear},
	)
	rootCmd.AddCommand(favoritesCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	favs := s.Favorites()
	return render(cmd, favs, func(w io.Writer) { printProductsTable(w, favs) })
}

func runFavoritesToggle(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := fetching(cmd.Context(), fmt.Sprintf("Updating favorite #%d...", id))
	fav, err := s.ToggleFavorite(ctx, id)
	stop()
	if err != nil {
		return err
	}

	result := map[string]any{"id": id, "favorite": fav}
	return render(cmd, result, func(w io.Writer) {
		if fav {
			fmt.Fprintf(w, "Added #%d to favorites.\n", id)
		} else {
			fmt.Fprintf(w, "Removed #%d from favorites.\n", id)
		}
	})
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	if err := s.RemoveFavorite(cmd.Context(), id); err != nil {
		return err
	}
	favs := s.Favorites()
	return render(cmd, favs, func(w io.Writer) { printProductsTable(w, favs) })
}

func runFavoritesClear(cmd *cobra.Command, args []string) error {
	s, err := openShop(cmd.Context())
	if err != nil {
		return err
	}
	if err := s.ClearFavorites(cmd.Context()); err != nil {
		return err
	}
	return render(cmd, s.Favorites(), func(w io.Writer) { fmt.Fprintln(w, "Favorites cleared.") })
}
