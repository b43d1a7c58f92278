// Package browse implements the browse-session orchestrator. A session is
// the explicit context carrying QueryState, the comparison selection, and
// the modal slot; the orchestrator coordinates the catalog store, the
// query engine, and the persistence repositories on its behalf.
package browse

//go:generate mockgen -destination=mock/mock_service.go -package=browsemock github.com/megabonk/catalog-api/internal/orchestrators/browse Service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/megabonk/catalog-api/internal/catalogstore"
	"github.com/megabonk/catalog-api/internal/engine/compare"
	"github.com/megabonk/catalog-api/internal/engine/modal"
	"github.com/megabonk/catalog-api/internal/engine/query"
	"github.com/megabonk/catalog-api/internal/entities/catalog"
	"github.com/megabonk/catalog-api/internal/errors"
	"github.com/megabonk/catalog-api/internal/pkg/clock"
	"github.com/megabonk/catalog-api/internal/pkg/idgen"
	"github.com/megabonk/catalog-api/internal/repositories/announcements"
	"github.com/megabonk/catalog-api/internal/repositories/favorites"
)

// Service defines the interface for browse-session operations
type Service interface {
	// StartSession creates a session with default query state
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// SetActiveType switches the active tab and recomputes immediately
	SetActiveType(ctx context.Context, input *SetActiveTypeInput) (*SetActiveTypeOutput, error)

	// UpdateSearch records a keystroke; recomputation is debounced
	UpdateSearch(ctx context.Context, input *UpdateSearchInput) (*UpdateSearchOutput, error)

	// SetFilters applies dropdown filters and recomputes immediately
	SetFilters(ctx context.Context, input *SetFiltersInput) (*SetFiltersOutput, error)

	// SetSort changes the sort key and recomputes immediately
	SetSort(ctx context.Context, input *SetSortInput) (*SetSortOutput, error)

	// ListVisible returns the session's current visible sequence
	ListVisible(ctx context.Context, input *ListVisibleInput) (*ListVisibleOutput, error)

	// GlobalSearch matches across every loaded entity type at once
	GlobalSearch(ctx context.Context, input *GlobalSearchInput) (*GlobalSearchOutput, error)

	// ToggleFavorite flips favorite state with synchronous persistence
	ToggleFavorite(ctx context.Context, input *ToggleFavoriteInput) (*ToggleFavoriteOutput, error)

	// SelectForCompare adds an entity to the bounded comparison selection
	SelectForCompare(ctx context.Context, input *SelectForCompareInput) (*SelectForCompareOutput, error)

	// DeselectFromCompare removes an entity from the comparison selection
	DeselectFromCompare(ctx context.Context, input *DeselectFromCompareInput) (*DeselectFromCompareOutput, error)

	// OpenComparison opens the comparison modal over the selection
	OpenComparison(ctx context.Context, input *OpenComparisonInput) (*OpenComparisonOutput, error)

	// OpenEntity opens the detail modal for one entity
	OpenEntity(ctx context.Context, input *OpenEntityInput) (*OpenEntityOutput, error)

	// CloseModal dismisses the open modal and reports the restored focus
	CloseModal(ctx context.Context, input *CloseModalInput) (*CloseModalOutput, error)

	// CurrentModal returns the session's modal state
	CurrentModal(ctx context.Context, input *CurrentModalInput) (*CurrentModalOutput, error)

	// ChangelogStatus reports whether the one-time announcement should show
	ChangelogStatus(ctx context.Context, input *ChangelogStatusInput) (*ChangelogStatusOutput, error)

	// AcknowledgeChangelog records the current catalog version as seen
	AcknowledgeChangelog(ctx context.Context, input *AcknowledgeChangelogInput) (*AcknowledgeChangelogOutput, error)
}

// Config holds the dependencies for the browse orchestrator
type Config struct {
	Store         *catalogstore.Store
	Engine        *query.Engine
	Favorites     favorites.Repository
	Announcements announcements.Repository
	IDGenerator   idgen.Generator
	Clock         clock.Clock

	// SearchDelay is the debounce window for search keystrokes; zero means
	// query.DefaultSearchDelay.
	SearchDelay time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Favorites == nil {
		vb.RequiredField("Favorites")
	}
	if c.Announcements == nil {
		vb.RequiredField("Announcements")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	store       *catalogstore.Store
	engine      *query.Engine
	idGen       idgen.Generator
	clock       clock.Clock
	searchDelay time.Duration

	mu       sync.RWMutex
	sessions map[string]*session

	// favorites degrades to the session-only fallback the first time the
	// durable store reports Unavailable; the feature never hard-fails.
	favs             favorites.Repository
	favsFallback     *favorites.InMemoryRepository
	favsDegraded     bool
	announce         announcements.Repository
	announceFallback *announcements.InMemoryRepository
	announceDegraded bool
}

// session is one browsing context. All fields are guarded by the
// orchestrator mutex; events arrive from a single UI thread so ordering is
// simply event-arrival order.
type session struct {
	id         string
	createdAt  time.Time
	entityType catalog.EntityType
	state      query.State
	visible    query.Result
	selector   *compare.Selector
	presenter  *modal.Presenter
	debouncer  *query.Debouncer
}

// NewOrchestrator creates a new browse orchestrator with the provided
// dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	delay := cfg.SearchDelay
	if delay == 0 {
		delay = query.DefaultSearchDelay
	}

	return &orchestrator{
		store:            cfg.Store,
		engine:           cfg.Engine,
		idGen:            cfg.IDGenerator,
		clock:            cfg.Clock,
		searchDelay:      delay,
		sessions:         make(map[string]*session),
		favs:             cfg.Favorites,
		favsFallback:     favorites.NewInMemory(),
		announce:         cfg.Announcements,
		announceFallback: announcements.NewInMemory(),
	}, nil
}

func (o *orchestrator) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	entityType := input.EntityType
	if entityType == "" {
		entityType = catalog.TypeItem
	}

	s := &session{
		id:         o.idGen.Generate(),
		createdAt:  o.clock.Now(),
		entityType: entityType,
		selector:   compare.NewSelector(),
		presenter:  modal.NewPresenter(),
		debouncer:  query.NewDebouncer(o.searchDelay),
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.recomputeLocked(ctx, s)
	o.sessions[s.id] = s

	slog.Info("browse session started",
		"session_id", s.id,
		"entity_type", entityType,
	)

	return &StartSessionOutput{SessionID: s.id}, nil
}

func (o *orchestrator) SetActiveType(ctx context.Context, input *SetActiveTypeInput) (*SetActiveTypeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityType == "" {
		return nil, errors.InvalidArgument("entity type is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.sessionLocked(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.entityType = input.EntityType
	s.debouncer.Cancel()
	o.recomputeLocked(ctx, s)

	return &SetActiveTypeOutput{Visible: s.visible}, nil
}

func (o *orchestrator) UpdateSearch(_ context.Context, input *UpdateSearchInput) (*UpdateSearchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.sessionLocked(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.state.SearchText = input.SearchText
	sessionID := input.SessionID

	// The delayed pass runs after the caller's request is gone, so it gets
	// a fresh context. A newer keystroke reschedules and this pass never
	// fires.
	s.debouncer.Debounce(func() {
		o.mu.Lock()
		defer o.mu.Unlock()

		if live, ok := o.sessions[sessionID]; ok {
			o.recomputeLocked(context.Background(), live)
		}
	})

	return &UpdateSearchOutput{}, nil
}

func (o *orchestrator) SetFilters(ctx context.Context, input *SetFiltersInput) (*SetFiltersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.sessionLocked(input.SessionID)
	if err != nil {
		return nil, err
	}

	if input.ClearTier {
		s.state.TierFilter = nil
	} else if input.Tier != nil {
		s.state.TierFilter = input.Tier
	}
	if input.ClearRarity {
		s.state.RarityFilter = nil
	} else if input.Rarity != nil {
		s.state.RarityFilter = input.Rarity
	}
	if input.ClearStacking {
		s.state.StackingFilter = nil
	} else if input.Stacking != nil {
		s.state.StackingFilter = input.Stacking
	}
	if input.FavoritesOnly != nil {
		s.state.FavoritesOnly = *input.FavoritesOnly
	}

	o.recomputeLocked(ctx, s)

	return &SetFiltersOutput{Visible: s.visible}, nil
}

func (o *orchestrator) SetSort(ctx context.Context, input *SetSortInput) (*SetSortOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.sessionLocked(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.state.SortKey = input.SortKey
	o.recomputeLocked(ctx, s)

	return &SetSortOutput{Visible: s.visible}, nil
}

func (o *orchestrator) ListVisible(_ context.Context, input *ListVisibleInput) (*ListVisibleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	s, err := o.sessionLocked(input.SessionID)
	if err != nil {
		return nil, err
	}

	return &ListVisibleOutput{Visible: s.visible}, nil
}

func (o *orchestrator) GlobalSearch(_ context.Context, input *GlobalSearchInput) (*GlobalSearchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	if _, err := o.sessionLocked(input.SessionID); err != nil {
		return nil, err
	}

	collections := make(map[catalog.EntityType]*catalog.Collection, len(catalog.AllTypes()))
	for _, t := range catalog.AllTypes() {
		collections[t] = o.store.Collection(t)
	}

	return &GlobalSearchOutput{
		Cards: o.engine.GlobalSearch(collections, input.SearchText),
	}, nil
}

func (o *orchestrator) ToggleFavorite(ctx context.Context, input *ToggleFavoriteInput) (*ToggleFavoriteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity id is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.sessionLocked(input.SessionID)
	if err != nil {
		return nil, err
	}

	out, err := o.favoritesLocked().Toggle(ctx, favorites.ToggleInput{EntityID: input.EntityID})
	if err != nil {
		if !errors.IsUnavailable(err) {
			return nil, err
		}
		o.degradeFavoritesLocked(err)
		out, err = o.favsFallback.Toggle(ctx, favorites.ToggleInput{EntityID: input.EntityID})
		if err != nil {
			return nil, err
		}
	}

	// Favorite state feeds the favorites-only restriction; reflect it now.
	o.recomputeLocked(ctx, s)

	return &ToggleFavoriteOutput{
		EntityID:   out.EntityID,
		Favorited:  out.Favorited,
		Persistent: !o.favsDegraded,
	}, nil
}

func (o *orchestrator) SelectForCompare(_ context.Context, input *SelectForCompareInput) (*SelectForCompareOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.sessionLocked(input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := s.selector.Select(input.EntityID); err != nil {
		// Overflow is recoverable; the selection stays valid at the cap.
		return nil, err
	}

	return &SelectForCompareOutput{Selected: s.selector.Current()}, nil
}

func (o *orchestrator) DeselectFromCompare(_ context.Context, input *DeselectFromCompareInput) (*DeselectFromCompareOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.sessionLocked(input.SessionID)
	if err != nil {
		return nil, err
	}

	s.selector.Deselect(input.EntityID)

	return &DeselectFromCompareOutput{Selected: s.selector.Current()}, nil
}

func (o *orchestrator) OpenComparison(_ context.Context, input *OpenComparisonInput) (*OpenComparisonOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.sessionLocked(input.SessionID)
	if err != nil {
		return nil, err
	}

	ids, err := s.selector.ViewIDs()
	if err != nil {
		return nil, err
	}

	columns := make([]catalog.Entity, 0, len(ids))
	for _, id := range ids {
		entity, err := o.store.Find(id)
		if err != nil {
			return nil, errors.Wrapf(err, "comparison selection references %q", id)
		}
		columns = append(columns, *entity)
	}

	if err := s.presenter.OpenComparison(ids, input.TriggerFocus, input.Focusables); err != nil {
		return nil, err
	}

	return &OpenComparisonOutput{Columns: columns}, nil
}

func (o *orchestrator) OpenEntity(_ context.Context, input *OpenEntityInput) (*OpenEntityOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.sessionLocked(input.SessionID)
	if err != nil {
		return nil, err
	}

	entity, err := o.store.Find(input.EntityID)
	if err != nil {
		return nil, err
	}

	if err := s.presenter.OpenDetail(entity.ID, input.TriggerFocus, input.Focusables); err != nil {
		return nil, err
	}

	return &OpenEntityOutput{Entity: *entity}, nil
}

func (o *orchestrator) CloseModal(_ context.Context, input *CloseModalInput) (*CloseModalOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.sessionLocked(input.SessionID)
	if err != nil {
		return nil, err
	}

	return &CloseModalOutput{RestoredFocus: s.presenter.Close()}, nil
}

func (o *orchestrator) CurrentModal(_ context.Context, input *CurrentModalInput) (*CurrentModalOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	s, err := o.sessionLocked(input.SessionID)
	if err != nil {
		return nil, err
	}

	return &CurrentModalOutput{Modal: s.presenter.Current()}, nil
}

func (o *orchestrator) ChangelogStatus(ctx context.Context, input *ChangelogStatusInput) (*ChangelogStatusOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.sessionLocked(input.SessionID)
	if err != nil {
		return nil, err
	}

	version := o.catalogVersionLocked(s)
	if version == "" {
		return &ChangelogStatusOutput{ShouldAnnounce: false}, nil
	}

	out, err := o.announcementsLocked().GetLastSeen(ctx, announcements.GetLastSeenInput{})
	if err != nil {
		if !errors.IsUnavailable(err) {
			return nil, err
		}
		o.degradeAnnouncementsLocked(err)
		out, err = o.announceFallback.GetLastSeen(ctx, announcements.GetLastSeenInput{})
		if err != nil {
			return nil, err
		}
	}

	return &ChangelogStatusOutput{
		ShouldAnnounce: out.Version != version,
		Version:        version,
	}, nil
}

func (o *orchestrator) AcknowledgeChangelog(ctx context.Context, input *AcknowledgeChangelogInput) (*AcknowledgeChangelogOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.sessionLocked(input.SessionID)
	if err != nil {
		return nil, err
	}

	version := o.catalogVersionLocked(s)
	if version == "" {
		return &AcknowledgeChangelogOutput{}, nil
	}

	if _, err := o.announcementsLocked().SetLastSeen(ctx, announcements.SetLastSeenInput{Version: version}); err != nil {
		if !errors.IsUnavailable(err) {
			return nil, err
		}
		o.degradeAnnouncementsLocked(err)
		if _, err := o.announceFallback.SetLastSeen(ctx, announcements.SetLastSeenInput{Version: version}); err != nil {
			return nil, err
		}
	}

	return &AcknowledgeChangelogOutput{}, nil
}

func (o *orchestrator) sessionLocked(sessionID string) (*session, error) {
	if sessionID == "" {
		return nil, errors.InvalidArgument("session id is required")
	}
	s, ok := o.sessions[sessionID]
	if !ok {
		return nil, errors.NotFoundf("session %q not found", sessionID)
	}
	return s, nil
}

// recomputeLocked refreshes the session's visible sequence from the store
// and the favorite set. Caller holds the orchestrator mutex.
func (o *orchestrator) recomputeLocked(ctx context.Context, s *session) {
	var favs map[string]struct{}
	if s.state.FavoritesOnly {
		favs = o.favoriteSetLocked(ctx)
	}

	s.visible = o.engine.Visible(o.store.Collection(s.entityType), s.state, favs)
}

// favoriteSetLocked reads the favorite set, treating an unreachable store
// as empty so visibility computation never hard-fails.
func (o *orchestrator) favoriteSetLocked(ctx context.Context) map[string]struct{} {
	out, err := o.favoritesLocked().List(ctx, favorites.ListInput{})
	if err != nil {
		if errors.IsUnavailable(err) {
			o.degradeFavoritesLocked(err)
			out, err = o.favsFallback.List(ctx, favorites.ListInput{})
		}
		if err != nil {
			slog.Warn("favorite set unreadable, treating as empty", "error", err)
			return map[string]struct{}{}
		}
	}

	set := make(map[string]struct{}, len(out.EntityIDs))
	for _, id := range out.EntityIDs {
		set[id] = struct{}{}
	}
	return set
}

func (o *orchestrator) favoritesLocked() favorites.Repository {
	if o.favsDegraded {
		return o.favsFallback
	}
	return o.favs
}

func (o *orchestrator) degradeFavoritesLocked(cause error) {
	if o.favsDegraded {
		return
	}
	o.favsDegraded = true
	slog.Warn("favorite persistence unavailable, degrading to session-only",
		"error", cause,
	)
}

func (o *orchestrator) announcementsLocked() announcements.Repository {
	if o.announceDegraded {
		return o.announceFallback
	}
	return o.announce
}

func (o *orchestrator) degradeAnnouncementsLocked(cause error) {
	if o.announceDegraded {
		return
	}
	o.announceDegraded = true
	slog.Warn("announcement persistence unavailable, degrading to session-only",
		"error", cause,
	)
}

// catalogVersionLocked picks the catalog version gating the announcement:
// the items document's version, falling back to the active type's.
func (o *orchestrator) catalogVersionLocked(s *session) string {
	if v := o.store.Version(catalog.TypeItem); v != "" {
		return v
	}
	return o.store.Version(s.entityType)
}
