package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuyang0/kvstorage/storage"
	"github.com/yuyang0/kvstorage/types"
	"github.com/yuyang0/kvstorage/utils/keycodec"
)

func newTestConfig(t *testing.T) *types.Config {
	cfg := types.NewConfig()
	cfg.Local.SQLite.Path = filepath.Join(t.TempDir(), "local.db")
	return cfg
}

func TestLocalAndSession(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig(t)
	svc, err := New(cfg, nil)
	require.NoError(t, err)
	defer svc.Close()

	require.NoError(t, svc.Local.SetItem(ctx, "theme", map[string]any{"dark": true}))
	require.NoError(t, svc.Session.SetItem(ctx, "token", "abc"))

	// the two scopes don't share keys
	v, err := svc.Session.GetItem(ctx, "theme")
	require.NoError(t, err)
	assert.Nil(t, v)
	v, err = svc.Local.GetItem(ctx, "token", "none")
	require.NoError(t, err)
	assert.Equal(t, "none", v)

	require.NoError(t, svc.Session.Clear(ctx))
	v, err = svc.Local.GetItem(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"dark": true}, v)
}

func TestLocalSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := newTestConfig(t)

	svc, err := New(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, svc.Local.SetItem(ctx, "visits", 3))
	require.NoError(t, svc.Session.SetItem(ctx, "tab", 1))
	require.NoError(t, svc.Close())

	svc, err = New(cfg, nil)
	require.NoError(t, err)
	defer svc.Close()

	n, err := storage.GetAs(ctx, svc.Local, "visits", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	v, err := svc.Session.GetItem(ctx, "tab")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRedisSession(t *testing.T) {
	ctx := context.Background()
	mockRedis := miniredis.RunT(t)
	cfg := newTestConfig(t)
	cfg.Session.Type = types.StoreTypeRedis
	cfg.Session.Redis.Addr = mockRedis.Addr()
	cfg.Session.Redis.Expire = 120

	svc, err := New(cfg, nil, storage.WithSerializeKey(keycodec.Encode))
	require.NoError(t, err)
	defer svc.Close()

	require.NoError(t, svc.Session.SetItem(ctx, "cart", []int{1, 2}))
	key, err := keycodec.Encode("cart")
	require.NoError(t, err)
	raw, err := mockRedis.Get("_kvsession_" + key)
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, raw)

	v, err := svc.Session.GetItem(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0}, v)

	require.NoError(t, svc.Session.RemoveItem(ctx, "cart"))
	assert.False(t, mockRedis.Exists("_kvsession_"+key))
}

func TestScopesStayApartOnSameBackend(t *testing.T) {
	ctx := context.Background()
	mockRedis := miniredis.RunT(t)

	sqliteCfg := newTestConfig(t)
	sqliteCfg.Session.Type = types.StoreTypeSQLite
	sqliteCfg.Session.SQLite.Path = sqliteCfg.Local.SQLite.Path

	redisCfg := newTestConfig(t)
	for _, sc := range []*types.StoreConfig{&redisCfg.Local, &redisCfg.Session} {
		sc.Type = types.StoreTypeRedis
		sc.Redis.Addr = mockRedis.Addr()
	}

	for name, cfg := range map[string]*types.Config{"sqlite": sqliteCfg, "redis": redisCfg} {
		t.Run(name, func(t *testing.T) {
			svc, err := New(cfg, nil)
			require.NoError(t, err)
			defer svc.Close()

			require.NoError(t, svc.Local.SetItem(ctx, "theme", "dark"))
			require.NoError(t, svc.Session.SetItem(ctx, "tab", 1))

			require.NoError(t, svc.Session.Clear(ctx))
			v, err := svc.Local.GetItem(ctx, "theme")
			require.NoError(t, err)
			assert.Equal(t, "dark", v)
			v, err = svc.Session.GetItem(ctx, "tab")
			require.NoError(t, err)
			assert.Nil(t, v)

			require.NoError(t, svc.Session.SetItem(ctx, "tab", 2))
			require.NoError(t, svc.Local.Clear(ctx))
			v, err = svc.Local.GetItem(ctx, "theme")
			require.NoError(t, err)
			assert.Nil(t, v)
			v, err = svc.Session.GetItem(ctx, "tab")
			require.NoError(t, err)
			assert.Equal(t, 2.0, v)
		})
	}
}

func TestInvalidStoreType(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Session.Type = "unknown"
	_, err := New(cfg, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidStoreType))
	assert.Contains(t, err.Error(), "session")
}
