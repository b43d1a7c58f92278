// Package query computes the visible subset of a catalog collection from a
// query state and the favorite set. The engine is pure: it never mutates
// the collection and owns no state beyond its collator, so it can be
// exercised without a presentation layer.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/megabonk/catalog-api/internal/entities/catalog"
)

// SortKey selects the ordering of the visible sequence
type SortKey string

// Sort keys. The zero value keeps catalog order.
const (
	SortCatalog SortKey = ""
	SortByName  SortKey = "name"
	SortByTier  SortKey = "tier"
)

// State is the transient query state owned by a browsing session. Filters
// are optional; a nil filter matches everything.
type State struct {
	SearchText     string
	TierFilter     *catalog.Tier
	RarityFilter   *catalog.Rarity
	StackingFilter *catalog.Stacking
	FavoritesOnly  bool
	SortKey        SortKey
}

// Result is the ordered visible sequence. Empty is the explicit
// empty-state indicator: zero matches always set it so the presentation
// layer renders feedback rather than nothing.
type Result struct {
	Entities []catalog.Entity
	Empty    bool
}

// Card is one cross-type result from a global search. It carries the
// identifying data the presentation layer needs for its data-entity-type
// and data-entity-id attributes.
type Card struct {
	EntityType catalog.EntityType
	EntityID   string
	Entity     catalog.Entity
}

// Engine computes visible sequences. Name ordering is locale-aware.
type Engine struct {
	collator *collate.Collator
}

// New creates an engine collating names for the given locale
func New(locale language.Tag) *Engine {
	return &Engine{
		collator: collate.New(locale, collate.IgnoreCase),
	}
}

// Visible applies search, filters, the favorites restriction, and the sort
// key to one collection. A nil or unpopulated collection yields an empty
// result, never an error.
func (e *Engine) Visible(coll *catalog.Collection, state State, favorites map[string]struct{}) Result {
	if coll == nil || len(coll.Entities) == 0 {
		return Result{Entities: []catalog.Entity{}, Empty: true}
	}

	needle := strings.ToLower(strings.TrimSpace(state.SearchText))

	visible := make([]catalog.Entity, 0, len(coll.Entities))
	for _, entity := range coll.Entities {
		if !matches(entity, needle, state, favorites) {
			continue
		}
		visible = append(visible, entity)
	}

	e.sortEntities(visible, state.SortKey)

	return Result{
		Entities: visible,
		Empty:    len(visible) == 0,
	}
}

// GlobalSearch matches the needle against every loaded collection at once,
// producing type-tagged cards in canonical type order, catalog order
// within a type. An empty needle matches nothing: the global variant only
// exists while the user is typing.
func (e *Engine) GlobalSearch(collections map[catalog.EntityType]*catalog.Collection, searchText string) []Card {
	needle := strings.ToLower(strings.TrimSpace(searchText))
	if needle == "" {
		return []Card{}
	}

	cards := []Card{}
	for _, t := range catalog.AllTypes() {
		coll, ok := collections[t]
		if !ok || coll == nil {
			continue
		}
		for _, entity := range coll.Entities {
			if !strings.Contains(strings.ToLower(entity.Name), needle) {
				continue
			}
			cards = append(cards, Card{
				EntityType: t,
				EntityID:   entity.ID,
				Entity:     entity,
			})
		}
	}
	return cards
}

// matches applies every active predicate; an entity passes only if it
// matches all of them.
func matches(entity catalog.Entity, needle string, state State, favorites map[string]struct{}) bool {
	if needle != "" && !strings.Contains(strings.ToLower(entity.Name), needle) {
		return false
	}
	if state.TierFilter != nil && entity.Tier != *state.TierFilter {
		return false
	}
	if state.RarityFilter != nil && entity.Rarity != *state.RarityFilter {
		return false
	}
	if state.StackingFilter != nil && entity.Stacking != *state.StackingFilter {
		return false
	}
	if state.FavoritesOnly {
		if _, ok := favorites[entity.ID]; !ok {
			return false
		}
	}
	return true
}

func (e *Engine) sortEntities(entities []catalog.Entity, key SortKey) {
	switch key {
	case SortByName:
		sort.SliceStable(entities, func(i, j int) bool {
			return e.collator.CompareString(entities[i].Name, entities[j].Name) < 0
		})
	case SortByTier:
		// Best tier first; ties keep catalog order.
		sort.SliceStable(entities, func(i, j int) bool {
			return entities[i].Tier.Rank() > entities[j].Tier.Rank()
		})
	}
}
