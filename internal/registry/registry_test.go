package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/config"
)

func TestRegistry_SetGet(t *testing.T) {
	cfg := config.Default()
	r := New(cfg)
	assert.Same(t, cfg, r.Config())

	_, ok := Get(r, CatalogStoreKey)
	assert.False(t, ok)

	store := catalog.NewStore(catalog.Default())
	Set(r, CatalogStoreKey, store)

	got, ok := Get(r, CatalogStoreKey)
	assert.True(t, ok)
	assert.Same(t, store, got)
	assert.Same(t, store, MustGet(r, CatalogStoreKey))
}

func TestRegistry_MustGetPanicsWhenMissing(t *testing.T) {
	r := New(config.Default())
	assert.PanicsWithValue(t, "service not found for key: live.hub", func() {
		MustGet(r, LiveHubKey)
	})
}

func TestRegistry_WrongTypeIsMissing(t *testing.T) {
	r := New(config.Default())
	r.services.Store("catalog.store", "not a store")
	_, ok := Get(r, CatalogStoreKey)
	assert.False(t, ok)
}
