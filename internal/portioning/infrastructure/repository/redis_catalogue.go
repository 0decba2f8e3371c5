package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/caterstack/portioning/internal/portioning/application"
	"github.com/caterstack/portioning/internal/portioning/domain"
	"github.com/caterstack/portioning/pkg/logger"
)

// RedisCatalogue is a cache-aside application.CatalogueAdapter: reads
// go through Redis first and fall through to source on a miss, with
// the source's answer written back before it is returned.
type RedisCatalogue struct {
	client *redis.Client
	source application.CatalogueAdapter
	ttl    time.Duration
	logger *logger.Logger
}

// NewRedisCatalogue wraps source with a Redis cache-aside layer.
func NewRedisCatalogue(client *redis.Client, source application.CatalogueAdapter, ttl time.Duration, log *logger.Logger) *RedisCatalogue {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCatalogue{client: client, source: source, ttl: ttl, logger: log}
}

func (r *RedisCatalogue) dishKey(id int64) string {
	return fmt.Sprintf("portioning:dish:%d", id)
}

func (r *RedisCatalogue) poolKey(pool domain.Pool) string {
	return fmt.Sprintf("portioning:pool-baselines:%s", pool.String())
}

func (r *RedisCatalogue) nameKey(categoryID int64) string {
	return fmt.Sprintf("portioning:category-name:%d", categoryID)
}

// LoadDishes implements application.CatalogueAdapter. Dishes not found
// in the cache are fetched from source one batch at a time and cached
// individually so later requests for overlapping id sets stay cheap.
func (r *RedisCatalogue) LoadDishes(ctx context.Context, ids []int64) ([]domain.DishInput, error) {
	out := make([]domain.DishInput, 0, len(ids))
	var misses []int64

	for _, id := range ids {
		raw, err := r.client.Get(ctx, r.dishKey(id)).Result()
		if err != nil {
			if err != redis.Nil {
				r.logger.WithError(err).Warn("redis catalogue: dish lookup failed, falling back to source")
			}
			misses = append(misses, id)
			continue
		}
		var dish domain.DishInput
		if err := json.Unmarshal([]byte(raw), &dish); err != nil {
			misses = append(misses, id)
			continue
		}
		out = append(out, dish)
	}

	if len(misses) == 0 {
		return out, nil
	}

	fetched, err := r.source.LoadDishes(ctx, misses)
	if err != nil {
		return nil, fmt.Errorf("loading dishes from source: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, dish := range fetched {
		if encoded, err := json.Marshal(dish); err == nil {
			pipe.Set(ctx, r.dishKey(dish.ID), encoded, r.ttl)
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.WithError(err).Warn("redis catalogue: failed to populate dish cache")
	}

	return append(out, fetched...), nil
}

// PoolBaselines implements application.CatalogueAdapter.
func (r *RedisCatalogue) PoolBaselines(ctx context.Context, pool domain.Pool) (map[int64]float64, error) {
	raw, err := r.client.Get(ctx, r.poolKey(pool)).Result()
	if err == nil {
		var baselines map[int64]float64
		if jsonErr := json.Unmarshal([]byte(raw), &baselines); jsonErr == nil {
			return baselines, nil
		}
	} else if err != redis.Nil {
		r.logger.WithError(err).Warn("redis catalogue: pool baseline lookup failed, falling back to source")
	}

	baselines, err := r.source.PoolBaselines(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("loading pool baselines from source: %w", err)
	}
	if encoded, err := json.Marshal(baselines); err == nil {
		if err := r.client.Set(ctx, r.poolKey(pool), encoded, r.ttl).Err(); err != nil {
			r.logger.WithError(err).Warn("redis catalogue: failed to populate pool baseline cache")
		}
	}
	return baselines, nil
}

// DisplayName implements application.CatalogueAdapter.
func (r *RedisCatalogue) DisplayName(ctx context.Context, categoryID int64) (string, error) {
	name, err := r.client.Get(ctx, r.nameKey(categoryID)).Result()
	if err == nil {
		return name, nil
	}
	if err != redis.Nil {
		r.logger.WithError(err).Warn("redis catalogue: display name lookup failed, falling back to source")
	}

	name, err = r.source.DisplayName(ctx, categoryID)
	if err != nil {
		return "", fmt.Errorf("loading category name from source: %w", err)
	}
	if err := r.client.Set(ctx, r.nameKey(categoryID), name, r.ttl).Err(); err != nil {
		r.logger.WithError(err).Warn("redis catalogue: failed to populate display name cache")
	}
	return name, nil
}

var _ application.CatalogueAdapter = (*RedisCatalogue)(nil)
