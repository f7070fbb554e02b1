package catalog

// Hooks are lightweight callbacks for high-signal cache events.
// Implementations MUST be cheap and non-blocking; the service calls them
// on hot paths.
type Hooks interface {
	// FetchError: the backend failed on read and the lookup was treated
	// as a miss. reason ∈ {"backend_error", "timeout"}
	FetchError(key string, err error)

	// SelfHeal: an entry was deleted by the cache on read.
	// reason ∈ {"decode"}
	SelfHeal(key, reason string)

	// PopulateRejected: a best-effort post-read populate did not stick.
	// err is nil when the provider rejected the write under pressure.
	PopulateRejected(key string, err error)

	// InvalidateError: a best-effort remove failed; the entry self-heals
	// at TTL expiry.
	InvalidateError(key string, err error)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) FetchError(string, error)       {}
func (NopHooks) SelfHeal(string, string)        {}
func (NopHooks) PopulateRejected(string, error) {}
func (NopHooks) InvalidateError(string, error)  {}
