package browse_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"

	"github.com/megabonk/catalog-api/internal/catalogstore"
	"github.com/megabonk/catalog-api/internal/engine/modal"
	"github.com/megabonk/catalog-api/internal/engine/query"
	"github.com/megabonk/catalog-api/internal/entities/catalog"
	"github.com/megabonk/catalog-api/internal/errors"
	"github.com/megabonk/catalog-api/internal/orchestrators/browse"
	"github.com/megabonk/catalog-api/internal/pkg/clock"
	"github.com/megabonk/catalog-api/internal/pkg/idgen"
	"github.com/megabonk/catalog-api/internal/repositories/announcements"
	"github.com/megabonk/catalog-api/internal/repositories/favorites"
	favoritesmock "github.com/megabonk/catalog-api/internal/repositories/favorites/mock"
)

const testSearchDelay = 10 * time.Millisecond

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockFavs *favoritesmock.MockRepository
	store    *catalogstore.Store
	service  browse.Service
	ctx      context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockFavs = favoritesmock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	s.store = catalogstore.New()
	s.Require().NoError(s.store.Put(&catalog.Collection{
		Type:    catalog.TypeItem,
		Version: "1.4.0",
		Entities: []catalog.Entity{
			{ID: "item_bonk_stick", Type: catalog.TypeItem, Name: "Bonk Stick", Tier: catalog.TierSS, Rarity: catalog.RarityCommon, Stacking: catalog.StackingStacks, ImageRef: "images/bonk_stick.png"},
			{ID: "item_anvil", Type: catalog.TypeItem, Name: "Anvil", Tier: catalog.TierA, Rarity: catalog.RarityRare, Stacking: catalog.StackingOneAndDone, ImageRef: "images/anvil.png"},
			{ID: "item_clover", Type: catalog.TypeItem, Name: "Clover", Tier: catalog.TierA, Rarity: catalog.RarityCommon, Stacking: catalog.StackingStacks, ImageRef: "images/clover.png"},
		},
	}))
	s.Require().NoError(s.store.Put(&catalog.Collection{
		Type:    catalog.TypeWeapon,
		Version: "1.4.0",
		Entities: []catalog.Entity{
			{ID: "weapon_bonk_hammer", Type: catalog.TypeWeapon, Name: "Bonk Hammer", Tier: catalog.TierS, Rarity: catalog.RarityEpic, Stacking: catalog.StackingStacks, ImageRef: "images/bonk_hammer.png"},
		},
	}))

	service, err := browse.NewOrchestrator(&browse.Config{
		Store:         s.store,
		Engine:        query.New(language.English),
		Favorites:     s.mockFavs,
		Announcements: announcements.NewInMemory(),
		IDGenerator:   idgen.NewSequential("session"),
		Clock:         clock.New(),
		SearchDelay:   testSearchDelay,
	})
	s.Require().NoError(err)
	s.service = service
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) startSession() string {
	out, err := s.service.StartSession(s.ctx, &browse.StartSessionInput{})
	s.Require().NoError(err)
	return out.SessionID
}

func (s *OrchestratorTestSuite) visibleIDs(sessionID string) []string {
	out, err := s.service.ListVisible(s.ctx, &browse.ListVisibleInput{SessionID: sessionID})
	s.Require().NoError(err)
	ids := make([]string, len(out.Visible.Entities))
	for i, e := range out.Visible.Entities {
		ids[i] = e.ID
	}
	return ids
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := browse.NewOrchestrator(&browse.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Store")
	s.Contains(err.Error(), "Engine")
	s.Contains(err.Error(), "Favorites")
	s.Contains(err.Error(), "IDGenerator")
}

func (s *OrchestratorTestSuite) TestStartSessionDefaultsToItems() {
	sessionID := s.startSession()

	s.Equal([]string{"item_bonk_stick", "item_anvil", "item_clover"}, s.visibleIDs(sessionID),
		"a fresh session shows the full item collection in catalog order")
}

func (s *OrchestratorTestSuite) TestSetActiveType() {
	sessionID := s.startSession()

	out, err := s.service.SetActiveType(s.ctx, &browse.SetActiveTypeInput{
		SessionID:  sessionID,
		EntityType: catalog.TypeWeapon,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Visible.Entities, 1)
	s.Equal("weapon_bonk_hammer", out.Visible.Entities[0].ID)

	// A tab with no loaded collection shows the explicit empty state.
	out, err = s.service.SetActiveType(s.ctx, &browse.SetActiveTypeInput{
		SessionID:  sessionID,
		EntityType: catalog.TypeShrine,
	})
	s.Require().NoError(err)
	s.True(out.Visible.Empty)
}

func (s *OrchestratorTestSuite) TestUpdateSearchIsDebounced() {
	sessionID := s.startSession()

	_, err := s.service.UpdateSearch(s.ctx, &browse.UpdateSearchInput{
		SessionID:  sessionID,
		SearchText: "bonk",
	})
	s.Require().NoError(err)

	// Inside the debounce window the previous computation still shows.
	s.Len(s.visibleIDs(sessionID), 3)

	s.Eventually(func() bool {
		ids := s.visibleIDs(sessionID)
		return len(ids) == 1 && ids[0] == "item_bonk_stick"
	}, time.Second, testSearchDelay/2, "the debounced pass must land")
}

func (s *OrchestratorTestSuite) TestRapidKeystrokesCoalesce() {
	sessionID := s.startSession()

	for _, text := range []string{"b", "bo", "bon", "bonk"} {
		_, err := s.service.UpdateSearch(s.ctx, &browse.UpdateSearchInput{
			SessionID:  sessionID,
			SearchText: text,
		})
		s.Require().NoError(err)
	}

	s.Eventually(func() bool {
		ids := s.visibleIDs(sessionID)
		return len(ids) == 1 && ids[0] == "item_bonk_stick"
	}, time.Second, testSearchDelay/2)
}

func (s *OrchestratorTestSuite) TestClearingSearchRestoresFullCollection() {
	sessionID := s.startSession()

	_, err := s.service.UpdateSearch(s.ctx, &browse.UpdateSearchInput{SessionID: sessionID, SearchText: "bonk"})
	s.Require().NoError(err)
	s.Eventually(func() bool { return len(s.visibleIDs(sessionID)) == 1 }, time.Second, testSearchDelay/2)

	_, err = s.service.UpdateSearch(s.ctx, &browse.UpdateSearchInput{SessionID: sessionID, SearchText: ""})
	s.Require().NoError(err)
	s.Eventually(func() bool { return len(s.visibleIDs(sessionID)) == 3 }, time.Second, testSearchDelay/2)
}

func (s *OrchestratorTestSuite) TestSetFiltersRecomputesImmediately() {
	sessionID := s.startSession()

	rarityCommon := catalog.RarityCommon
	out, err := s.service.SetFilters(s.ctx, &browse.SetFiltersInput{
		SessionID: sessionID,
		Rarity:    &rarityCommon,
	})
	s.Require().NoError(err)

	s.Require().Len(out.Visible.Entities, 2, "filter changes must not wait out a debounce window")
	s.Equal("item_bonk_stick", out.Visible.Entities[0].ID)
	s.Equal("item_clover", out.Visible.Entities[1].ID)

	// Clearing restores.
	out, err = s.service.SetFilters(s.ctx, &browse.SetFiltersInput{
		SessionID:   sessionID,
		ClearRarity: true,
	})
	s.Require().NoError(err)
	s.Len(out.Visible.Entities, 3)
}

func (s *OrchestratorTestSuite) TestSetSortRecomputesImmediately() {
	sessionID := s.startSession()

	out, err := s.service.SetSort(s.ctx, &browse.SetSortInput{
		SessionID: sessionID,
		SortKey:   query.SortByName,
	})
	s.Require().NoError(err)

	s.Require().Len(out.Visible.Entities, 3)
	s.Equal("item_anvil", out.Visible.Entities[0].ID)
	s.Equal("item_bonk_stick", out.Visible.Entities[1].ID)
	s.Equal("item_clover", out.Visible.Entities[2].ID)
}

func (s *OrchestratorTestSuite) TestFavoritesOnlyIntersectsWithSearch() {
	sessionID := s.startSession()

	s.mockFavs.EXPECT().
		List(gomock.Any(), favorites.ListInput{}).
		Return(&favorites.ListOutput{EntityIDs: []string{"item_anvil", "item_clover"}}, nil).
		AnyTimes()

	favsOnly := true
	out, err := s.service.SetFilters(s.ctx, &browse.SetFiltersInput{
		SessionID:     sessionID,
		FavoritesOnly: &favsOnly,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Visible.Entities, 2)

	// The restriction persists through search text changes.
	_, err = s.service.UpdateSearch(s.ctx, &browse.UpdateSearchInput{SessionID: sessionID, SearchText: "clo"})
	s.Require().NoError(err)
	s.Eventually(func() bool {
		ids := s.visibleIDs(sessionID)
		return len(ids) == 1 && ids[0] == "item_clover"
	}, time.Second, testSearchDelay/2)
}

func (s *OrchestratorTestSuite) TestToggleFavoritePersists() {
	sessionID := s.startSession()

	s.mockFavs.EXPECT().
		Toggle(gomock.Any(), favorites.ToggleInput{EntityID: "item_anvil"}).
		Return(&favorites.ToggleOutput{EntityID: "item_anvil", Favorited: true}, nil)

	out, err := s.service.ToggleFavorite(s.ctx, &browse.ToggleFavoriteInput{
		SessionID: sessionID,
		EntityID:  "item_anvil",
	})
	s.Require().NoError(err)
	s.True(out.Favorited)
	s.True(out.Persistent)
}

func (s *OrchestratorTestSuite) TestToggleFavoriteDegradesToSessionOnly() {
	sessionID := s.startSession()

	// The durable store fails once; afterwards the orchestrator must stop
	// asking it and run session-only.
	s.mockFavs.EXPECT().
		Toggle(gomock.Any(), favorites.ToggleInput{EntityID: "item_anvil"}).
		Return(nil, errors.Unavailable("redis down"))

	out, err := s.service.ToggleFavorite(s.ctx, &browse.ToggleFavoriteInput{
		SessionID: sessionID,
		EntityID:  "item_anvil",
	})
	s.Require().NoError(err, "persistence loss must never surface as a hard failure")
	s.True(out.Favorited)
	s.False(out.Persistent)

	// Second toggle goes straight to the fallback (no mock expectation).
	out, err = s.service.ToggleFavorite(s.ctx, &browse.ToggleFavoriteInput{
		SessionID: sessionID,
		EntityID:  "item_anvil",
	})
	s.Require().NoError(err)
	s.False(out.Favorited, "involution holds in the degraded repository")

	// Favorites-only keeps working against session state.
	_, err = s.service.ToggleFavorite(s.ctx, &browse.ToggleFavoriteInput{
		SessionID: sessionID,
		EntityID:  "item_clover",
	})
	s.Require().NoError(err)

	favsOnly := true
	filtered, err := s.service.SetFilters(s.ctx, &browse.SetFiltersInput{
		SessionID:     sessionID,
		FavoritesOnly: &favsOnly,
	})
	s.Require().NoError(err)
	s.Require().Len(filtered.Visible.Entities, 1)
	s.Equal("item_clover", filtered.Visible.Entities[0].ID)
}

func (s *OrchestratorTestSuite) TestNonUnavailableToggleErrorSurfaces() {
	sessionID := s.startSession()

	s.mockFavs.EXPECT().
		Toggle(gomock.Any(), favorites.ToggleInput{EntityID: "item_anvil"}).
		Return(nil, errors.Internal("corrupt value"))

	_, err := s.service.ToggleFavorite(s.ctx, &browse.ToggleFavoriteInput{
		SessionID: sessionID,
		EntityID:  "item_anvil",
	})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *OrchestratorTestSuite) TestComparisonFlow() {
	sessionID := s.startSession()

	for _, id := range []string{"item_bonk_stick", "item_anvil", "item_clover"} {
		_, err := s.service.SelectForCompare(s.ctx, &browse.SelectForCompareInput{
			SessionID: sessionID,
			EntityID:  id,
		})
		s.Require().NoError(err)
	}

	// The 4th selection is rejected and leaves the selection intact.
	_, err := s.service.SelectForCompare(s.ctx, &browse.SelectForCompareInput{
		SessionID: sessionID,
		EntityID:  "weapon_bonk_hammer",
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))

	out, err := s.service.OpenComparison(s.ctx, &browse.OpenComparisonInput{
		SessionID:    sessionID,
		TriggerFocus: "compare-button",
		Focusables:   []string{"close"},
	})
	s.Require().NoError(err)
	s.Require().Len(out.Columns, 3, "one column per selected entity")
	s.Equal("item_bonk_stick", out.Columns[0].ID)
	s.Equal("item_anvil", out.Columns[1].ID)
	s.Equal("item_clover", out.Columns[2].ID)

	closed, err := s.service.CloseModal(s.ctx, &browse.CloseModalInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Equal("compare-button", closed.RestoredFocus)
}

func (s *OrchestratorTestSuite) TestComparisonNeedsTwoSelections() {
	sessionID := s.startSession()

	_, err := s.service.SelectForCompare(s.ctx, &browse.SelectForCompareInput{
		SessionID: sessionID,
		EntityID:  "item_anvil",
	})
	s.Require().NoError(err)

	_, err = s.service.OpenComparison(s.ctx, &browse.OpenComparisonInput{
		SessionID:    sessionID,
		TriggerFocus: "compare-button",
		Focusables:   []string{"close"},
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestDeselectKeepsOrder() {
	sessionID := s.startSession()

	for _, id := range []string{"item_bonk_stick", "item_anvil", "item_clover"} {
		_, err := s.service.SelectForCompare(s.ctx, &browse.SelectForCompareInput{
			SessionID: sessionID,
			EntityID:  id,
		})
		s.Require().NoError(err)
	}

	out, err := s.service.DeselectFromCompare(s.ctx, &browse.DeselectFromCompareInput{
		SessionID: sessionID,
		EntityID:  "item_anvil",
	})
	s.Require().NoError(err)
	s.Equal([]string{"item_bonk_stick", "item_clover"}, out.Selected)
}

func (s *OrchestratorTestSuite) TestOpenEntityReplacesOpenModal() {
	sessionID := s.startSession()

	_, err := s.service.OpenEntity(s.ctx, &browse.OpenEntityInput{
		SessionID:    sessionID,
		EntityID:     "item_anvil",
		TriggerFocus: "card-anvil",
		Focusables:   []string{"close"},
	})
	s.Require().NoError(err)

	out, err := s.service.OpenEntity(s.ctx, &browse.OpenEntityInput{
		SessionID:    sessionID,
		EntityID:     "weapon_bonk_hammer",
		TriggerFocus: "card-hammer",
		Focusables:   []string{"close"},
	})
	s.Require().NoError(err)
	s.Equal("Bonk Hammer", out.Entity.Name)

	current, err := s.service.CurrentModal(s.ctx, &browse.CurrentModalInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Require().NotNil(current.Modal)
	s.Equal(modal.KindDetail, current.Modal.Kind)
	s.Equal([]string{"weapon_bonk_hammer"}, current.Modal.EntityIDs)

	closed, err := s.service.CloseModal(s.ctx, &browse.CloseModalInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Equal("card-hammer", closed.RestoredFocus, "focus returns to the replacing trigger")
}

func (s *OrchestratorTestSuite) TestOpenEntityUnknownID() {
	sessionID := s.startSession()

	_, err := s.service.OpenEntity(s.ctx, &browse.OpenEntityInput{
		SessionID:    sessionID,
		EntityID:     "item_missing",
		TriggerFocus: "card",
		Focusables:   []string{"close"},
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGlobalSearch() {
	sessionID := s.startSession()

	out, err := s.service.GlobalSearch(s.ctx, &browse.GlobalSearchInput{
		SessionID:  sessionID,
		SearchText: "bonk",
	})
	s.Require().NoError(err)

	s.Require().Len(out.Cards, 2)
	s.Equal(catalog.TypeItem, out.Cards[0].EntityType)
	s.Equal("item_bonk_stick", out.Cards[0].EntityID)
	s.Equal(catalog.TypeWeapon, out.Cards[1].EntityType)
	s.Equal("weapon_bonk_hammer", out.Cards[1].EntityID)
}

func (s *OrchestratorTestSuite) TestChangelogAnnouncementShowsOnce() {
	sessionID := s.startSession()

	status, err := s.service.ChangelogStatus(s.ctx, &browse.ChangelogStatusInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.True(status.ShouldAnnounce)
	s.Equal("1.4.0", status.Version)

	_, err = s.service.AcknowledgeChangelog(s.ctx, &browse.AcknowledgeChangelogInput{SessionID: sessionID})
	s.Require().NoError(err)

	status, err = s.service.ChangelogStatus(s.ctx, &browse.ChangelogStatusInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.False(status.ShouldAnnounce, "the overlay is one-time per version")
}

func (s *OrchestratorTestSuite) TestUnknownSession() {
	_, err := s.service.ListVisible(s.ctx, &browse.ListVisibleInput{SessionID: "session_999"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))

	_, err = s.service.ListVisible(s.ctx, &browse.ListVisibleInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
