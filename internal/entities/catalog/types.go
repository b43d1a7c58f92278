// Package catalog defines the entity data model shared by the store, the
// query engine, and the repositories. Entities are immutable after load.
package catalog

import (
	"strings"

	"github.com/megabonk/catalog-api/internal/errors"
)

// EntityType identifies which collection an entity belongs to
type EntityType string

// Entity types
const (
	TypeItem      EntityType = "item"
	TypeWeapon    EntityType = "weapon"
	TypeTome      EntityType = "tome"
	TypeCharacter EntityType = "character"
	TypeShrine    EntityType = "shrine"
)

// AllTypes lists every entity type in canonical order
func AllTypes() []EntityType {
	return []EntityType{TypeItem, TypeWeapon, TypeTome, TypeCharacter, TypeShrine}
}

// Plural returns the collection name used by catalog documents
func (t EntityType) Plural() string {
	switch t {
	case TypeItem:
		return "items"
	case TypeWeapon:
		return "weapons"
	case TypeTome:
		return "tomes"
	case TypeCharacter:
		return "characters"
	case TypeShrine:
		return "shrines"
	default:
		return string(t) + "s"
	}
}

// ParseEntityType converts a raw string to an EntityType
func ParseEntityType(raw string) (EntityType, error) {
	t := EntityType(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case TypeItem, TypeWeapon, TypeTome, TypeCharacter, TypeShrine:
		return t, nil
	default:
		return "", errors.InvalidArgumentf("unknown entity type: %q", raw)
	}
}

// Tier is a coarse power ranking
type Tier string

// Tiers, best first
const (
	TierSS Tier = "SS"
	TierS  Tier = "S"
	TierA  Tier = "A"
	TierB  Tier = "B"
	TierC  Tier = "C"
)

// Rank returns the tier's numeric rank; higher is better. Unknown tiers
// rank below every known one so they sort last under the tier key.
func (t Tier) Rank() int {
	switch t {
	case TierSS:
		return 5
	case TierS:
		return 4
	case TierA:
		return 3
	case TierB:
		return 2
	case TierC:
		return 1
	default:
		return 0
	}
}

// Rarity classifies drop rarity
type Rarity string

// Rarities
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Stacking classifies how repeated acquisition affects an entity's effect
type Stacking string

// Stacking behaviors
const (
	StackingOneAndDone  Stacking = "one_and_done"
	StackingStacks      Stacking = "stacks"
	StackingDiminishing Stacking = "diminishing"
)

// Entity is one catalog record. The zero ImageRef never survives loading;
// the source client substitutes the placeholder asset.
type Entity struct {
	ID         string     `json:"id"`
	Type       EntityType `json:"type"`
	Name       string     `json:"name"`
	Tier       Tier       `json:"tier"`
	Rarity     Rarity     `json:"rarity"`
	Stacking   Stacking   `json:"stacking"`
	EffectText string     `json:"effect_text"`
	ImageRef   string     `json:"image_ref"`
}

// Collection is the ordered set of entities of one type plus the version
// of the document it was loaded from. Order is catalog order and is the
// tie-break order for stable sorts.
type Collection struct {
	Type     EntityType
	Version  string
	Entities []Entity
}

// Len returns the number of entities in the collection
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entities)
}
