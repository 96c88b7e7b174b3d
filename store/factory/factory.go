package factory

import (
	"github.com/cockroachdb/errors"
	"github.com/yuyang0/kvstorage/store"
	"github.com/yuyang0/kvstorage/store/memory"
	"github.com/yuyang0/kvstorage/store/redis"
	"github.com/yuyang0/kvstorage/store/sqlite"
	"github.com/yuyang0/kvstorage/types"
)

func NewStore(cfg *types.StoreConfig) (store.Store, error) {
	switch cfg.Type {
	case types.StoreTypeMemory:
		return memory.New(), nil
	case types.StoreTypeSQLite:
		return sqlite.New(&cfg.SQLite)
	case types.StoreTypeRedis:
		return redis.New(&cfg.Redis)
	default:
		return nil, errors.Wrapf(types.ErrInvalidStoreType, "%s", cfg.Type)
	}
}
