package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/megabonk/catalog-api/internal/engine/query"
	"github.com/megabonk/catalog-api/internal/entities/catalog"
	"github.com/megabonk/catalog-api/internal/orchestrators/browse"
)

var (
	searchType     string
	searchQuery    string
	searchTier     string
	searchRarity   string
	searchStacking string
	searchFavsOnly bool
	searchSort     string
	searchGlobal   bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search and filter one entity type, or all types with --global",
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchType, "type", "item", "entity type (item, weapon, tome, character, shrine)")
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search text, case-insensitive substring of the name")
	searchCmd.Flags().StringVar(&searchTier, "tier", "", "tier filter (SS, S, A, B, C)")
	searchCmd.Flags().StringVar(&searchRarity, "rarity", "", "rarity filter (common..legendary)")
	searchCmd.Flags().StringVar(&searchStacking, "stacking", "", "stacking filter (one_and_done, stacks, diminishing)")
	searchCmd.Flags().BoolVar(&searchFavsOnly, "favorites-only", false, "restrict to favorited entities")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "sort key (name or tier; default catalog order)")
	searchCmd.Flags().BoolVar(&searchGlobal, "global", false, "search across every entity type")
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	entityType, err := catalog.ParseEntityType(searchType)
	if err != nil {
		return err
	}

	started, err := a.service.StartSession(ctx, &browse.StartSessionInput{EntityType: entityType})
	if err != nil {
		return err
	}
	sessionID := started.SessionID

	if searchGlobal {
		out, err := a.service.GlobalSearch(ctx, &browse.GlobalSearchInput{
			SessionID:  sessionID,
			SearchText: searchQuery,
		})
		if err != nil {
			return err
		}
		if len(out.Cards) == 0 {
			fmt.Println("No results.")
			return nil
		}
		for _, card := range out.Cards {
			fmt.Printf("%-10s %-24s %s\n", card.EntityType, card.EntityID, card.Entity.Name)
		}
		return nil
	}

	filters := &browse.SetFiltersInput{SessionID: sessionID}
	if searchTier != "" {
		t := catalog.Tier(searchTier)
		filters.Tier = &t
	}
	if searchRarity != "" {
		r := catalog.Rarity(searchRarity)
		filters.Rarity = &r
	}
	if searchStacking != "" {
		st := catalog.Stacking(searchStacking)
		filters.Stacking = &st
	}
	filters.FavoritesOnly = &searchFavsOnly
	if _, err := a.service.SetFilters(ctx, filters); err != nil {
		return err
	}

	if _, err := a.service.SetSort(ctx, &browse.SetSortInput{
		SessionID: sessionID,
		SortKey:   query.SortKey(searchSort),
	}); err != nil {
		return err
	}

	if searchQuery != "" {
		if _, err := a.service.UpdateSearch(ctx, &browse.UpdateSearchInput{
			SessionID:  sessionID,
			SearchText: searchQuery,
		}); err != nil {
			return err
		}
		waitForSearch()
	}

	out, err := a.service.ListVisible(ctx, &browse.ListVisibleInput{SessionID: sessionID})
	if err != nil {
		return err
	}

	if out.Visible.Empty {
		fmt.Println("No results.")
		return nil
	}

	for _, e := range out.Visible.Entities {
		fmt.Printf("%-24s %-3s %-10s %-12s %s\n", e.ID, e.Tier, e.Rarity, e.Stacking, e.Name)
	}
	fmt.Printf("%d %s\n", len(out.Visible.Entities), entityType.Plural())
	return nil
}
