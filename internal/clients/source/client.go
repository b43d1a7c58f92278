// Package source loads catalog documents from a data directory. Each entity
// type has one JSON document shaped {version, <collection>: [...]}.
package source

//go:generate mockgen -destination=mock/mock_client.go -package=sourcemock github.com/megabonk/catalog-api/internal/clients/source Client

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/megabonk/catalog-api/internal/entities/catalog"
	"github.com/megabonk/catalog-api/internal/errors"
)

// PlaceholderImageRef is substituted for entities whose document entry has
// no image. The loaded model never carries an empty image reference.
const PlaceholderImageRef = "images/placeholder.png"

// DefaultExpectedCounts is the shipped count fixture. Counts are a
// regression fingerprint for the published dataset, not an engine
// invariant; override via Config.ExpectedCounts when the dataset changes.
func DefaultExpectedCounts() map[catalog.EntityType]int {
	return map[catalog.EntityType]int{
		catalog.TypeItem:      80,
		catalog.TypeWeapon:    29,
		catalog.TypeTome:      30,
		catalog.TypeCharacter: 12,
		catalog.TypeShrine:    9,
	}
}

// Client defines the interface for loading catalog data
type Client interface {
	// LoadCollection loads one entity type's document.
	// Returns errors.NotFound if the document does not exist,
	// errors.InvalidArgument for malformed documents or duplicate ids,
	// errors.FailedPrecondition when an expected count does not match.
	LoadCollection(ctx context.Context, entityType catalog.EntityType) (*catalog.Collection, error)

	// LoadAll loads every entity type. A type whose document is missing or
	// malformed yields an empty collection for that type and does not
	// block the others.
	LoadAll(ctx context.Context) (map[catalog.EntityType]*catalog.Collection, error)
}

// Config contains configuration for the file-backed source client
type Config struct {
	// DataDir holds one <plural>.json document per entity type
	DataDir string

	// ExpectedCounts, when set for a type, makes LoadCollection fail if the
	// loaded count differs. Leave a type unset to skip verification.
	ExpectedCounts map[catalog.EntityType]int
}

// Validate validates the Config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.DataDir == "" {
		return errors.InvalidArgument("data dir cannot be empty")
	}
	return nil
}

type fileClient struct {
	dataDir        string
	expectedCounts map[catalog.EntityType]int
}

// New creates a file-backed source client
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &fileClient{
		dataDir:        cfg.DataDir,
		expectedCounts: cfg.ExpectedCounts,
	}, nil
}

// The entity array may live under "items" or under the type's plural
// name; both forms occur in the dataset.
func (c *fileClient) LoadCollection(_ context.Context, entityType catalog.EntityType) (*catalog.Collection, error) {
	path := filepath.Join(c.dataDir, entityType.Plural()+".json")

	raw, err := os.ReadFile(path) // #nosec G304 // path is operator-supplied config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("catalog document not found: %s", path)
		}
		return nil, errors.Wrapf(err, "failed to read catalog document %s", path)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed catalog document "+path)
	}

	var version string
	if v, ok := fields["version"]; ok {
		if err := json.Unmarshal(v, &version); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed version in "+path)
		}
	}

	entitiesRaw, ok := fields[entityType.Plural()]
	if !ok {
		entitiesRaw, ok = fields["items"]
	}
	if !ok {
		return nil, errors.InvalidArgumentf("document %s has no %q or \"items\" collection", path, entityType.Plural())
	}

	var entities []catalog.Entity
	if err := json.Unmarshal(entitiesRaw, &entities); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed entity list in "+path)
	}

	seen := make(map[string]struct{}, len(entities))
	for i := range entities {
		e := &entities[i]
		if e.ID == "" {
			return nil, errors.InvalidArgumentf("entity %d in %s has no id", i, path)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, errors.InvalidArgumentf("duplicate entity id %q in %s", e.ID, path)
		}
		seen[e.ID] = struct{}{}

		e.Type = entityType
		if e.ImageRef == "" {
			e.ImageRef = PlaceholderImageRef
		}
	}

	if want, checked := c.expectedCounts[entityType]; checked && len(entities) != want {
		return nil, errors.FailedPreconditionf(
			"loaded %d %s, published count is %d", len(entities), entityType.Plural(), want)
	}

	return &catalog.Collection{
		Type:     entityType,
		Version:  version,
		Entities: entities,
	}, nil
}

func (c *fileClient) LoadAll(ctx context.Context) (map[catalog.EntityType]*catalog.Collection, error) {
	out := make(map[catalog.EntityType]*catalog.Collection, len(catalog.AllTypes()))

	for _, t := range catalog.AllTypes() {
		coll, err := c.LoadCollection(ctx, t)
		if err != nil {
			slog.Warn("catalog document unusable, loading type as empty",
				"entity_type", t,
				"error", err,
			)
			coll = &catalog.Collection{Type: t}
		}
		out[t] = coll
	}

	return out, nil
}
