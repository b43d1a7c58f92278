package browse

import (
	"github.com/megabonk/catalog-api/internal/engine/modal"
	"github.com/megabonk/catalog-api/internal/engine/query"
	"github.com/megabonk/catalog-api/internal/entities/catalog"
)

// StartSessionInput defines the request for starting a browse session
type StartSessionInput struct {
	// EntityType is the initially active tab; defaults to items
	EntityType catalog.EntityType
}

// StartSessionOutput defines the response for starting a browse session
type StartSessionOutput struct {
	SessionID string
}

// SetActiveTypeInput switches the session's active entity type
type SetActiveTypeInput struct {
	SessionID  string
	EntityType catalog.EntityType
}

// SetActiveTypeOutput defines the response for switching the active type
type SetActiveTypeOutput struct {
	Visible query.Result
}

// UpdateSearchInput carries a search-text keystroke. Recomputation is
// debounced; the pending pass of a previous keystroke is invalidated.
type UpdateSearchInput struct {
	SessionID  string
	SearchText string
}

// UpdateSearchOutput defines the response for a search update
type UpdateSearchOutput struct {
	// Empty for now, can be extended later
}

// SetFiltersInput applies dropdown filters; nil fields leave the current
// value alone, pointers to zero values clear it via the Clear flags.
type SetFiltersInput struct {
	SessionID string

	Tier      *catalog.Tier
	ClearTier bool

	Rarity      *catalog.Rarity
	ClearRarity bool

	Stacking      *catalog.Stacking
	ClearStacking bool

	FavoritesOnly *bool
}

// SetFiltersOutput defines the response for a filter change
type SetFiltersOutput struct {
	Visible query.Result
}

// SetSortInput changes the session's sort key
type SetSortInput struct {
	SessionID string
	SortKey   query.SortKey
}

// SetSortOutput defines the response for a sort change
type SetSortOutput struct {
	Visible query.Result
}

// ListVisibleInput requests the session's current visible sequence
type ListVisibleInput struct {
	SessionID string
}

// ListVisibleOutput carries the current visible sequence. During a
// debounce window this is the previous computation.
type ListVisibleOutput struct {
	Visible query.Result
}

// GlobalSearchInput requests a cross-type search
type GlobalSearchInput struct {
	SessionID  string
	SearchText string
}

// GlobalSearchOutput carries type-tagged result cards
type GlobalSearchOutput struct {
	Cards []query.Card
}

// ToggleFavoriteInput flips an entity's favorite state
type ToggleFavoriteInput struct {
	SessionID string
	EntityID  string
}

// ToggleFavoriteOutput reports the new state. Persistent is false once
// the session has degraded to session-only favorites.
type ToggleFavoriteOutput struct {
	EntityID   string
	Favorited  bool
	Persistent bool
}

// SelectForCompareInput adds an entity to the comparison selection
type SelectForCompareInput struct {
	SessionID string
	EntityID  string
}

// SelectForCompareOutput reports the selection after the attempt
type SelectForCompareOutput struct {
	Selected []string
}

// DeselectFromCompareInput removes an entity from the comparison selection
type DeselectFromCompareInput struct {
	SessionID string
	EntityID  string
}

// DeselectFromCompareOutput reports the selection after removal
type DeselectFromCompareOutput struct {
	Selected []string
}

// OpenComparisonInput opens the comparison modal over the selection
type OpenComparisonInput struct {
	SessionID    string
	TriggerFocus string
	Focusables   []string
}

// OpenComparisonOutput carries one column per selected entity, strictly in
// selection order
type OpenComparisonOutput struct {
	Columns []catalog.Entity
}

// OpenEntityInput opens the detail modal for one entity
type OpenEntityInput struct {
	SessionID    string
	EntityID     string
	TriggerFocus string
	Focusables   []string
}

// OpenEntityOutput carries the entity shown by the detail modal
type OpenEntityOutput struct {
	Entity catalog.Entity
}

// CloseModalInput dismisses the session's open modal
type CloseModalInput struct {
	SessionID string
}

// CloseModalOutput reports where interaction focus returns
type CloseModalOutput struct {
	RestoredFocus string
}

// CurrentModalInput requests the session's modal state
type CurrentModalInput struct {
	SessionID string
}

// CurrentModalOutput carries the open modal, nil when closed
type CurrentModalOutput struct {
	Modal *modal.Modal
}

// ChangelogStatusInput asks whether the announcement overlay should show
type ChangelogStatusInput struct {
	SessionID string
}

// ChangelogStatusOutput reports the gate decision
type ChangelogStatusOutput struct {
	ShouldAnnounce bool
	Version        string
}

// AcknowledgeChangelogInput records that the overlay was seen
type AcknowledgeChangelogInput struct {
	SessionID string
}

// AcknowledgeChangelogOutput defines the response for an acknowledgement
type AcknowledgeChangelogOutput struct {
	// Empty for now, can be extended later
}
