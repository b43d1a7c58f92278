// Package modal implements the overlay state machine: closed -> open over
// a detail entity or a comparison set -> closed. At most one modal is open
// at a time; opening another replaces it.
package modal

import (
	"github.com/megabonk/catalog-api/internal/errors"
)

// Kind distinguishes what an open modal shows
type Kind string

// Modal kinds
const (
	KindDetail     Kind = "detail"
	KindComparison Kind = "comparison"
)

// Modal describes the open overlay. Focusables is the ordered list of the
// modal's interactive elements; keyboard traversal wraps within it.
type Modal struct {
	Kind      Kind
	EntityIDs []string
	// TriggerFocus identifies the control that opened the modal; focus
	// returns there on close.
	TriggerFocus string

	focusables []string
	focusIndex int
}

// Presenter manages the single modal slot of a session
type Presenter struct {
	current *Modal
}

// NewPresenter creates a presenter with no open modal
func NewPresenter() *Presenter {
	return &Presenter{}
}

// OpenDetail opens a detail overlay for one entity, replacing any open
// modal. focusables must include at least one element so the focus loop
// is closed.
func (p *Presenter) OpenDetail(entityID, triggerFocus string, focusables []string) error {
	if entityID == "" {
		return errors.InvalidArgument("entity id is required")
	}
	return p.open(&Modal{
		Kind:         KindDetail,
		EntityIDs:    []string{entityID},
		TriggerFocus: triggerFocus,
		focusables:   focusables,
	})
}

// OpenComparison opens the comparison overlay over an ordered id set,
// replacing any open modal.
func (p *Presenter) OpenComparison(entityIDs []string, triggerFocus string, focusables []string) error {
	if len(entityIDs) == 0 {
		return errors.InvalidArgument("entity ids are required")
	}
	ids := make([]string, len(entityIDs))
	copy(ids, entityIDs)
	return p.open(&Modal{
		Kind:         KindComparison,
		EntityIDs:    ids,
		TriggerFocus: triggerFocus,
		focusables:   focusables,
	})
}

func (p *Presenter) open(m *Modal) error {
	if len(m.focusables) == 0 {
		return errors.InvalidArgument("modal needs at least one focusable element")
	}
	p.current = m
	return nil
}

// Close dismisses the open modal and returns the focus target to restore.
// Close on an already-closed presenter is a harmless no-op returning "";
// backdrop clicks and cancellation both route here.
func (p *Presenter) Close() string {
	if p.current == nil {
		return ""
	}
	trigger := p.current.TriggerFocus
	p.current = nil
	return trigger
}

// Current returns the open modal, nil when closed
func (p *Presenter) Current() *Modal {
	return p.current
}

// IsOpen reports whether a modal is open
func (p *Presenter) IsOpen() bool {
	return p.current != nil
}

// FocusNext advances focus within the open modal, wrapping at the end.
// Returns the newly focused element.
func (p *Presenter) FocusNext() (string, error) {
	if p.current == nil {
		return "", errors.FailedPrecondition("no modal is open")
	}
	m := p.current
	m.focusIndex = (m.focusIndex + 1) % len(m.focusables)
	return m.focusables[m.focusIndex], nil
}

// FocusPrev moves focus backwards within the open modal, wrapping at the
// start.
func (p *Presenter) FocusPrev() (string, error) {
	if p.current == nil {
		return "", errors.FailedPrecondition("no modal is open")
	}
	m := p.current
	m.focusIndex = (m.focusIndex - 1 + len(m.focusables)) % len(m.focusables)
	return m.focusables[m.focusIndex], nil
}

// FocusedElement returns the currently focused element of the open modal
func (p *Presenter) FocusedElement() (string, error) {
	if p.current == nil {
		return "", errors.FailedPrecondition("no modal is open")
	}
	return p.current.focusables[p.current.focusIndex], nil
}
