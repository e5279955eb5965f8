package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mrtrade/internal/common"
	"github.com/dmitrijs2005/mrtrade/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisRepository stores every account as a JSON value in one Redis hash,
// field = email. HSETNX makes Create atomic.
type RedisRepository struct {
	client *redis.Client
	key    string
}

// NewRedisRepository connects to redisURL and verifies the connection.
// prefix namespaces the hash key, e.g. "mrtrade:" gives "mrtrade:accounts".
func NewRedisRepository(ctx context.Context, redisURL, prefix string) (*RedisRepository, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &RedisRepository{client: client, key: prefix + "accounts"}, nil
}

func (r *RedisRepository) Get(ctx context.Context, email string) (*models.Account, error) {
	raw, err := r.client.HGet(ctx, r.key, email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}

	a := &models.Account{}
	if err := json.Unmarshal(raw, a); err != nil {
		return nil, fmt.Errorf("decode account %q: %w", email, err)
	}
	return a, nil
}

func (r *RedisRepository) Exists(ctx context.Context, email string) (bool, error) {
	ok, err := r.client.HExists(ctx, r.key, email).Result()
	if err != nil {
		return false, fmt.Errorf("redis error: %w", err)
	}
	return ok, nil
}

func (r *RedisRepository) Create(ctx context.Context, account *models.Account) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode account: %w", err)
	}

	created, err := r.client.HSetNX(ctx, r.key, account.Email, raw).Result()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if !created {
		return common.ErrorAlreadyExists
	}
	return nil
}

func (r *RedisRepository) List(ctx context.Context) ([]*models.Account, error) {
	all, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	out := make([]*models.Account, 0, len(all))
	for email, raw := range all {
		a := &models.Account{}
		if err := json.Unmarshal([]byte(raw), a); err != nil {
			return nil, fmt.Errorf("decode account %q: %w", email, err)
		}
		out = append(out, a)
	}
	sortByEmail(out)
	return out, nil
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
