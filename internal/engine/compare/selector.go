// Package compare maintains the bounded working set of entities chosen for
// side-by-side viewing. The selection is transient session state.
package compare

import (
	"github.com/megabonk/catalog-api/internal/errors"
)

// MaxSelection is the hard cap on compared entities
const MaxSelection = 3

// MinForView is the minimum selection size to open the comparison view
const MinForView = 2

// Selector holds an ordered selection of up to MaxSelection entity ids.
// Order is insertion order; deselecting keeps the remaining order.
type Selector struct {
	ids []string
}

// NewSelector creates an empty selector
func NewSelector() *Selector {
	return &Selector{}
}

// Select adds an id to the selection. Selecting an already-selected id is
// a no-op. A selection beyond the cap is rejected with a recoverable
// FailedPrecondition error and leaves the selection unchanged.
func (s *Selector) Select(id string) error {
	if id == "" {
		return errors.InvalidArgument("entity id is required")
	}

	for _, existing := range s.ids {
		if existing == id {
			return nil
		}
	}

	if len(s.ids) >= MaxSelection {
		return errors.FailedPreconditionf("comparison is limited to %d items", MaxSelection)
	}

	s.ids = append(s.ids, id)
	return nil
}

// Deselect removes an id without reordering the rest. Removing an id that
// is not selected is a no-op.
func (s *Selector) Deselect(id string) {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

// Current returns the selection in insertion order
func (s *Selector) Current() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Contains reports whether an id is selected
func (s *Selector) Contains(id string) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Clear empties the selection
func (s *Selector) Clear() {
	s.ids = nil
}

// ViewIDs returns the ids to render as comparison columns, one per
// selected entity in selection order. Fewer than MinForView selections is
// a FailedPrecondition.
func (s *Selector) ViewIDs() ([]string, error) {
	if len(s.ids) < MinForView {
		return nil, errors.FailedPreconditionf("comparison needs at least %d selected items", MinForView)
	}
	return s.Current(), nil
}
