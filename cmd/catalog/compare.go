package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/megabonk/catalog-api/internal/orchestrators/browse"
)

var compareCmd = &cobra.Command{
	Use:   "compare <entity-id> <entity-id> [entity-id]",
	Short: "Compare 2 or 3 entities side by side",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	started, err := a.service.StartSession(ctx, &browse.StartSessionInput{})
	if err != nil {
		return err
	}
	sessionID := started.SessionID

	for _, id := range args {
		if _, err := a.service.SelectForCompare(ctx, &browse.SelectForCompareInput{
			SessionID: sessionID,
			EntityID:  id,
		}); err != nil {
			return err
		}
	}

	out, err := a.service.OpenComparison(ctx, &browse.OpenComparisonInput{
		SessionID:    sessionID,
		TriggerFocus: "cli",
		Focusables:   []string{"close"},
	})
	if err != nil {
		return err
	}

	for _, column := range out.Columns {
		fmt.Printf("%-24s %-3s %-10s %-12s %s\n",
			column.ID, column.Tier, column.Rarity, column.Stacking, column.Name)
		fmt.Printf("    %s\n", column.EffectText)
	}

	if _, err := a.service.CloseModal(ctx, &browse.CloseModalInput{SessionID: sessionID}); err != nil {
		return err
	}
	return nil
}
