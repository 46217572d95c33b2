package favorites

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"mykitchen_backend/models"
)

// addScript stores the meal only if its ID is new, and then appends the ID
// to the order list, in one step.
var addScript = redis.NewScript(`
local added = redis.call('HSETNX', KEYS[2], ARGV[1], ARGV[2])
if added == 1 then
	redis.call('RPUSH', KEYS[1], ARGV[1])
end
return added
`)

// Redis keeps favorites as a list of IDs (order) plus a hash of meals.
type Redis struct {
	client   *redis.Client
	orderKey string
	mealsKey string
}

// RedisOptions configures NewRedis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}
	return NewRedisWithClient(client, opts.Prefix), nil
}

func NewRedisWithClient(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "mykitchen:favorites:"
	}
	return &Redis{
		client:   client,
		orderKey: prefix + "order",
		mealsKey: prefix + "meals",
	}
}

func (r *Redis) List(ctx context.Context) ([]models.Favorite, error) {
	ids, err := r.client.LRange(ctx, r.orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list favorite ids: %w", err)
	}

	favs := make([]models.Favorite, 0, len(ids))
	if len(ids) == 0 {
		return favs, nil
	}

	meals, err := r.client.HMGet(ctx, r.mealsKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("load favorite meals: %w", err)
	}
	for i, v := range meals {
		meal, ok := v.(string)
		if !ok {
			continue
		}
		favs = append(favs, models.Favorite{ID: ids[i], Meal: json.RawMessage(meal)})
	}
	return favs, nil
}

func (r *Redis) Add(ctx context.Context, fav models.Favorite) ([]models.Favorite, error) {
	if fav.ID == "" {
		return nil, ErrMissingID
	}

	keys := []string{r.orderKey, r.mealsKey}
	if err := addScript.Run(ctx, r.client, keys, fav.ID, string(fav.Meal)).Err(); err != nil {
		return nil, fmt.Errorf("add favorite %s: %w", fav.ID, err)
	}
	return r.List(ctx)
}

func (r *Redis) Remove(ctx context.Context, id string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, r.orderKey, 0, id)
		pipe.HDel(ctx, r.mealsKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove favorite %s: %w", id, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
