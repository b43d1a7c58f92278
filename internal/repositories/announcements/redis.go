package announcements

import (
	"context"

	redis "github.com/redis/go-redis/v9"

	"github.com/megabonk/catalog-api/internal/errors"
	redisclient "github.com/megabonk/catalog-api/internal/redis"
)

const lastSeenKey = "catalog:changelog:last_seen"

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis announcements repository.
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

// NewRedis creates a new Redis-backed announcements repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

func (r *redisRepository) GetLastSeen(ctx context.Context, _ GetLastSeenInput) (*GetLastSeenOutput, error) {
	version, err := r.client.Get(ctx, lastSeenKey).Result()
	if err != nil {
		if err == redis.Nil {
			// Never acknowledged; the overlay should show.
			return &GetLastSeenOutput{Version: ""}, nil
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read last seen changelog version")
	}

	return &GetLastSeenOutput{Version: version}, nil
}

func (r *redisRepository) SetLastSeen(ctx context.Context, input SetLastSeenInput) (*SetLastSeenOutput, error) {
	if input.Version == "" {
		return nil, errors.InvalidArgument("version cannot be empty")
	}

	if err := r.client.Set(ctx, lastSeenKey, input.Version, 0).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to record last seen changelog version")
	}

	return &SetLastSeenOutput{}, nil
}

// Key returns the Redis key holding the flag
// Exposed for testing purposes
func Key() string {
	return lastSeenKey
}
