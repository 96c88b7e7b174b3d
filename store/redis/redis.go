package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/yuyang0/kvstorage/types"
)

const (
	scanCount = 100
)

type Store struct {
	cli *redis.Client
	cfg *types.RedisConfig
}

func New(cfg *types.RedisConfig) (*Store, error) {
	var cli *redis.Client
	if len(cfg.SentinelAddrs) > 0 {
		cli = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    cfg.MasterName,
			SentinelAddrs: cfg.SentinelAddrs,
			DB:            cfg.DB,
			Username:      cfg.Username,
			Password:      cfg.Password,
		})
	} else {
		cli = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			DB:       cfg.DB,
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	return &Store{
		cli: cli,
		cfg: cfg,
	}, nil
}

func (s *Store) key(k string) string {
	return fmt.Sprintf("%s_%s", s.cfg.Prefix, k)
}

func (s *Store) Set(ctx context.Context, k string, v []byte) error {
	return s.cli.Set(ctx, s.key(k), v, time.Duration(s.cfg.Expire)*time.Second).Err()
}

func (s *Store) Get(ctx context.Context, k string) ([]byte, error) {
	obj, err := s.cli.Get(ctx, s.key(k)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(obj), nil
}

func (s *Store) Remove(ctx context.Context, k string) error {
	return s.cli.Del(ctx, s.key(k)).Err()
}

// Clear deletes every key carrying this store's prefix, keys written by
// other clients of the same redis are left alone.
func (s *Store) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.cli.Scan(ctx, cursor, s.key("*"), scanCount).Result()
		if err != nil {
			return errors.Wrapf(err, "failed to scan keys with prefix %s", s.cfg.Prefix)
		}
		if len(keys) > 0 {
			if err := s.cli.Del(ctx, keys...).Err(); err != nil {
				return errors.Wrapf(err, "failed to delete %d keys", len(keys))
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (s *Store) Close() error {
	return s.cli.Close()
}
