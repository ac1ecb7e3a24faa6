package app

import (
	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/layout"
	"github.com/nfrund/ytu/internal/module"
	"github.com/nfrund/ytu/internal/modules/liveview"
	"github.com/nfrund/ytu/internal/modules/pages"
	"github.com/nfrund/ytu/internal/modules/paths"
	"github.com/nfrund/ytu/internal/pubsub"
	"github.com/nfrund/ytu/internal/registry"
	"github.com/nfrund/ytu/internal/rendering"
)

// Dependencies holds the core services that are required by the application's modules.
// This struct is passed from the main application entrypoint to wire up the modules.
type Dependencies struct {
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Renderer   rendering.Renderer
	Store      *catalog.Store
	Grid       layout.Grid
}

// Provide registers the core services under their shared keys.
func (d Dependencies) Provide(reg *registry.Registry) {
	registry.Set(reg, registry.PublisherKey, d.Publisher)
	registry.Set(reg, registry.SubscriberKey, d.Subscriber)
	registry.Set(reg, registry.RendererKey, d.Renderer)
	registry.Set(reg, registry.CatalogStoreKey, d.Store)
	registry.Set(reg, registry.GridKey, d.Grid)
}

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled. The live
// view module comes first so the hub is registered before pages look it up.
func NewModules() []module.Module {
	return []module.Module{
		liveview.New(),
		pages.New(),
		paths.New(),
	}
}
