// Package catalogstore holds the loaded entity collections for a session.
// Collections are loaded once and read many times; a type that has not
// been populated yet reads as empty, never as an error, so early queries
// racing the initial load degrade to empty results.
package catalogstore

import (
	"sync"

	"github.com/megabonk/catalog-api/internal/entities/catalog"
	"github.com/megabonk/catalog-api/internal/errors"
)

// Store holds loaded collections keyed by entity type
type Store struct {
	mu          sync.RWMutex
	collections map[catalog.EntityType]*catalog.Collection
}

// New creates an empty store
func New() *Store {
	return &Store{
		collections: make(map[catalog.EntityType]*catalog.Collection),
	}
}

// Put replaces the collection for its entity type
func (s *Store) Put(coll *catalog.Collection) error {
	if coll == nil {
		return errors.InvalidArgument("collection is required")
	}
	if coll.Type == "" {
		return errors.InvalidArgument("collection type is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections[coll.Type] = coll
	return nil
}

// Collection returns the collection for a type. An unpopulated type
// returns an empty collection.
func (s *Store) Collection(entityType catalog.EntityType) *catalog.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if coll, ok := s.collections[entityType]; ok {
		return coll
	}
	return &catalog.Collection{Type: entityType}
}

// Entity looks an entity up by type and id
func (s *Store) Entity(entityType catalog.EntityType, id string) (*catalog.Entity, error) {
	if id == "" {
		return nil, errors.InvalidArgument("entity id is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, ok := s.collections[entityType]
	if !ok {
		return nil, errors.NotFoundf("no %s collection loaded", entityType)
	}

	for i := range coll.Entities {
		if coll.Entities[i].ID == id {
			e := coll.Entities[i]
			return &e, nil
		}
	}
	return nil, errors.NotFoundf("%s %q not found", entityType, id)
}

// Find looks an entity up by id across every loaded type
func (s *Store) Find(id string) (*catalog.Entity, error) {
	if id == "" {
		return nil, errors.InvalidArgument("entity id is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, coll := range s.collections {
		for i := range coll.Entities {
			if coll.Entities[i].ID == id {
				e := coll.Entities[i]
				return &e, nil
			}
		}
	}
	return nil, errors.NotFoundf("entity %q not found", id)
}

// Version returns the document version of a loaded type, empty if the
// type is not populated.
func (s *Store) Version(entityType catalog.EntityType) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if coll, ok := s.collections[entityType]; ok {
		return coll.Version
	}
	return ""
}
