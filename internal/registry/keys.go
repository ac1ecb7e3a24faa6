package registry

import (
	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/layout"
	"github.com/nfrund/ytu/internal/live"
	"github.com/nfrund/ytu/internal/pubsub"
	"github.com/nfrund/ytu/internal/rendering"
)

// Service keys shared between modules.
const (
	PublisherKey    Key[pubsub.Publisher]   = "core.publisher"
	SubscriberKey   Key[pubsub.Subscriber]  = "core.subscriber"
	RendererKey     Key[rendering.Renderer] = "core.renderer"
	CatalogStoreKey Key[*catalog.Store]     = "catalog.store"
	GridKey         Key[layout.Grid]        = "layout.grid"
	LiveHubKey      Key[*live.Hub]          = "live.hub"
)
