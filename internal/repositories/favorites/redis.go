package favorites

import (
	"context"

	"github.com/megabonk/catalog-api/internal/errors"
	redisclient "github.com/megabonk/catalog-api/internal/redis"
)

const favoritesKey = "catalog:favorites"

const errEntityIDEmpty = "entity ID cannot be empty"

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis favorites repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed favorites repository. The favorite
// set is one Redis set under a fixed key, shared by every entity type.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

func (r *redisRepository) Toggle(ctx context.Context, input ToggleInput) (*ToggleOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}

	// SADD reports whether the id was newly added; 0 means it was already
	// a member and the toggle removes it.
	added, err := r.client.SAdd(ctx, favoritesKey, input.EntityID).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to toggle favorite "+input.EntityID)
	}

	if added == 0 {
		if err := r.client.SRem(ctx, favoritesKey, input.EntityID).Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to unfavorite "+input.EntityID)
		}
		return &ToggleOutput{EntityID: input.EntityID, Favorited: false}, nil
	}

	return &ToggleOutput{EntityID: input.EntityID, Favorited: true}, nil
}

func (r *redisRepository) IsFavorite(ctx context.Context, input IsFavoriteInput) (*IsFavoriteOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}

	member, err := r.client.SIsMember(ctx, favoritesKey, input.EntityID).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to check favorite "+input.EntityID)
	}

	return &IsFavoriteOutput{Favorited: member}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, favoritesKey).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list favorites")
	}

	return &ListOutput{EntityIDs: ids}, nil
}

// Key returns the Redis key holding the favorite set
// Exposed for testing purposes
func Key() string {
	return favoritesKey
}
