package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/megabonk/catalog-api/internal/orchestrators/browse"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage the favorite set",
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <entity-id>",
	Short: "Flip an entity's favorite state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		started, err := a.service.StartSession(ctx, &browse.StartSessionInput{})
		if err != nil {
			return err
		}

		out, err := a.service.ToggleFavorite(ctx, &browse.ToggleFavoriteInput{
			SessionID: started.SessionID,
			EntityID:  args[0],
		})
		if err != nil {
			return err
		}

		state := "unfavorited"
		if out.Favorited {
			state = "favorited"
		}
		if !out.Persistent {
			state += " (session-only, persistence unavailable)"
		}
		fmt.Printf("%s: %s\n", out.EntityID, state)
		return nil
	},
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorited entities",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		started, err := a.service.StartSession(ctx, &browse.StartSessionInput{})
		if err != nil {
			return err
		}

		favsOnly := true
		out, err := a.service.SetFilters(ctx, &browse.SetFiltersInput{
			SessionID:     started.SessionID,
			FavoritesOnly: &favsOnly,
		})
		if err != nil {
			return err
		}

		if out.Visible.Empty {
			fmt.Println("No favorites.")
			return nil
		}
		for _, e := range out.Visible.Entities {
			fmt.Printf("%-24s %s\n", e.ID, e.Name)
		}
		return nil
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesToggleCmd)
	favoritesCmd.AddCommand(favoritesListCmd)
}
