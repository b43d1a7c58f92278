package catalogstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megabonk/catalog-api/internal/catalogstore"
	"github.com/megabonk/catalog-api/internal/entities/catalog"
	"github.com/megabonk/catalog-api/internal/errors"
)

func itemCollection() *catalog.Collection {
	return &catalog.Collection{
		Type:    catalog.TypeItem,
		Version: "1.4.0",
		Entities: []catalog.Entity{
			{ID: "item_bonk_stick", Type: catalog.TypeItem, Name: "Bonk Stick", ImageRef: "images/bonk_stick.png"},
			{ID: "item_anvil", Type: catalog.TypeItem, Name: "Anvil", ImageRef: "images/anvil.png"},
		},
	}
}

func TestStore_UnpopulatedTypeReadsEmpty(t *testing.T) {
	store := catalogstore.New()

	coll := store.Collection(catalog.TypeShrine)
	require.NotNil(t, coll)
	assert.Equal(t, catalog.TypeShrine, coll.Type)
	assert.Equal(t, 0, coll.Len())
	assert.Equal(t, "", store.Version(catalog.TypeShrine))
}

func TestStore_PutAndRead(t *testing.T) {
	store := catalogstore.New()
	require.NoError(t, store.Put(itemCollection()))

	coll := store.Collection(catalog.TypeItem)
	assert.Equal(t, 2, coll.Len())
	assert.Equal(t, "1.4.0", store.Version(catalog.TypeItem))

	// Other types stay empty.
	assert.Equal(t, 0, store.Collection(catalog.TypeWeapon).Len())
}

func TestStore_PutValidation(t *testing.T) {
	store := catalogstore.New()

	err := store.Put(nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	err = store.Put(&catalog.Collection{})
	require.Error(t, err)
}

func TestStore_Entity(t *testing.T) {
	store := catalogstore.New()
	require.NoError(t, store.Put(itemCollection()))

	entity, err := store.Entity(catalog.TypeItem, "item_anvil")
	require.NoError(t, err)
	assert.Equal(t, "Anvil", entity.Name)

	_, err = store.Entity(catalog.TypeItem, "item_missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, err = store.Entity(catalog.TypeWeapon, "item_anvil")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	_, err = store.Entity(catalog.TypeItem, "")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestStore_FindAcrossTypes(t *testing.T) {
	store := catalogstore.New()
	require.NoError(t, store.Put(itemCollection()))
	require.NoError(t, store.Put(&catalog.Collection{
		Type: catalog.TypeWeapon,
		Entities: []catalog.Entity{
			{ID: "weapon_bonk_hammer", Type: catalog.TypeWeapon, Name: "Bonk Hammer", ImageRef: "images/bonk_hammer.png"},
		},
	}))

	entity, err := store.Find("weapon_bonk_hammer")
	require.NoError(t, err)
	assert.Equal(t, catalog.TypeWeapon, entity.Type)

	_, err = store.Find("nope")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
