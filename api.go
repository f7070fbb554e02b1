package catalog

import (
	"fmt"
	"time"

	c "github.com/fluxmart/catalog/codec"
	pr "github.com/fluxmart/catalog/provider"
)

// Options tune the catalog service. Only Store is required; a nil
// Provider disables caching entirely and every read goes to the store.
type Options struct {
	// Required
	Store ProductStore

	Provider pr.Provider      // cache backend; nil or Disabled => no caching
	Codec    c.Codec[Product] // cache entry serialization; nil => JSON

	Logger    Logger        // if nil, NopLogger is used
	Hooks     Hooks         // if nil, NopHooks is used
	TTL       time.Duration // cache entry TTL; 0 => 1h
	OpTimeout time.Duration // per cache call budget; 0 => 250ms
	Namespace string        // cache key prefix; "" => "product"
	Disabled  bool          // force cache off even with a Provider set
}

// New builds a Service around the given store and (optional) cache
// backend.
func New(opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("catalog: store is required")
	}

	log := opts.Logger
	if log == nil {
		log = NopLogger{}
	}
	hooks := opts.Hooks
	if hooks == nil {
		hooks = NopHooks{}
	}

	cod := opts.Codec
	if cod == nil {
		cod = c.JSON[Product]{}
	}

	ec := &entryCache{
		ns:        coalesce(opts.Namespace, "product"),
		provider:  opts.Provider,
		codec:     cod,
		ttl:       coalesce(opts.TTL, time.Hour),
		opTimeout: coalesce(opts.OpTimeout, 250*time.Millisecond),
		enabled:   opts.Provider != nil && !opts.Disabled,
		log:       log,
		hooks:     hooks,
	}

	return &Service{
		store: opts.Store,
		cache: ec,
		log:   log,
	}, nil
}
