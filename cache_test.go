package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// recordingHooks captures every hook call for assertions.
type recordingHooks struct {
	mu         sync.Mutex
	fetchErrs  []string
	selfHeals  []string
	populates  []string
	invalidate []string
}

func (h *recordingHooks) FetchError(key string, _ error) {
	h.mu.Lock()
	h.fetchErrs = append(h.fetchErrs, key)
	h.mu.Unlock()
}
func (h *recordingHooks) SelfHeal(key, _ string) {
	h.mu.Lock()
	h.selfHeals = append(h.selfHeals, key)
	h.mu.Unlock()
}
func (h *recordingHooks) PopulateRejected(key string, _ error) {
	h.mu.Lock()
	h.populates = append(h.populates, key)
	h.mu.Unlock()
}
func (h *recordingHooks) InvalidateError(key string, _ error) {
	h.mu.Lock()
	h.invalidate = append(h.invalidate, key)
	h.mu.Unlock()
}

// rejectingProvider accepts writes but reports them rejected (pressure).
type rejectingProvider struct{ *memProvider }

func (p *rejectingProvider) Set(context.Context, string, []byte, time.Duration) (bool, error) {
	return false, nil
}

// delErrProvider fails deletes only.
type delErrProvider struct {
	*memProvider
	err error
}

func (p *delErrProvider) Del(context.Context, string) error { return p.err }

// TestFetchErrorIsAMiss: backend read failures degrade to a miss and are
// reported through hooks, never to the caller.
func TestFetchErrorIsAMiss(t *testing.T) {
	ctx := context.Background()
	hooks := &recordingHooks{}
	st := newFakeStore()
	svc := newTestService(t, st, &downProvider{err: errors.New("i/o timeout")}, func(o *Options) {
		o.Hooks = hooks
	})
	defer svc.Close(ctx)

	p, _ := svc.Create(ctx, ProductInput{Name: "A", Description: "d", Price: 1, Stock: 1})
	if _, err := svc.Get(ctx, p.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.fetchErrs) != 1 {
		t.Fatalf("expected one FetchError hook, got %d", len(hooks.fetchErrs))
	}
}

// TestUndecodableEntrySelfHeals: garbage under a live key is deleted and
// the read falls through to the store.
func TestUndecodableEntrySelfHeals(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	hooks := &recordingHooks{}
	st := newFakeStore()
	svc := newTestService(t, st, mp, func(o *Options) { o.Hooks = hooks })
	defer svc.Close(ctx)

	p, _ := svc.Create(ctx, ProductInput{Name: "A", Description: "d", Price: 1, Stock: 1})

	key := svc.cache.key(p.ID)
	if ok, err := mp.Set(ctx, key, []byte("{not json"), time.Minute); err != nil || !ok {
		t.Fatalf("inject garbage: ok=%v err=%v", ok, err)
	}

	got, err := svc.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get over garbage: %v", err)
	}
	if got != p {
		t.Fatalf("Get should fall back to store data, got %+v", got)
	}
	hooks.mu.Lock()
	heals := len(hooks.selfHeals)
	hooks.mu.Unlock()
	if heals != 1 {
		t.Fatalf("expected one SelfHeal hook, got %d", heals)
	}
	// The repopulated entry must now decode to the store row.
	got2, err := svc.Get(ctx, p.ID)
	if err != nil || got2 != p {
		t.Fatalf("Get after self-heal: got %+v err=%v", got2, err)
	}
}

// TestPopulateRejectedReported: a provider rejecting the write under
// pressure does not fail the read but fires the hook.
func TestPopulateRejectedReported(t *testing.T) {
	ctx := context.Background()
	hooks := &recordingHooks{}
	st := newFakeStore()
	svc := newTestService(t, st, &rejectingProvider{newMemProvider()}, func(o *Options) {
		o.Hooks = hooks
	})
	defer svc.Close(ctx)

	p, _ := svc.Create(ctx, ProductInput{Name: "A", Description: "d", Price: 1, Stock: 1})
	if _, err := svc.Get(ctx, p.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.populates) != 1 {
		t.Fatalf("expected one PopulateRejected hook, got %d", len(hooks.populates))
	}
}

// TestInvalidateErrorAbsorbed: a failing delete never fails the update;
// the stale entry is left to TTL expiry.
func TestInvalidateErrorAbsorbed(t *testing.T) {
	ctx := context.Background()
	hooks := &recordingHooks{}
	st := newFakeStore()
	mp := &delErrProvider{memProvider: newMemProvider(), err: errors.New("del failed")}
	svc := newTestService(t, st, mp, func(o *Options) { o.Hooks = hooks })
	defer svc.Close(ctx)

	p, _ := svc.Create(ctx, ProductInput{Name: "A", Description: "d", Price: 1, Stock: 1})
	if _, err := svc.Update(ctx, p.ID, ProductPatch{Price: f64p(2)}); err != nil {
		t.Fatalf("Update with failing invalidate: %v", err)
	}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.invalidate) != 1 {
		t.Fatalf("expected one InvalidateError hook, got %d", len(hooks.invalidate))
	}
}

// TestKeyDerivation: keys depend on the identifier only, under the
// configured namespace.
func TestKeyDerivation(t *testing.T) {
	st := newFakeStore()
	svc := newTestService(t, st, newMemProvider(), nil)
	defer svc.Close(context.Background())

	if got := svc.cache.key("abc"); got != "product:abc" {
		t.Fatalf("key: got %q want %q", got, "product:abc")
	}

	custom := newTestService(t, st, newMemProvider(), func(o *Options) { o.Namespace = "sku" })
	defer custom.Close(context.Background())
	if got := custom.cache.key("abc"); got != "sku:abc" {
		t.Fatalf("key: got %q want %q", got, "sku:abc")
	}
}

// TestForcedDisable: Disabled wins over a configured provider.
func TestForcedDisable(t *testing.T) {
	ctx := context.Background()
	mp := newMemProvider()
	st := newFakeStore()
	svc := newTestService(t, st, mp, func(o *Options) { o.Disabled = true })
	defer svc.Close(ctx)

	p, _ := svc.Create(ctx, ProductInput{Name: "A", Description: "d", Price: 1, Stock: 1})
	if _, err := svc.Get(ctx, p.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if mp.len() != 0 {
		t.Fatalf("disabled cache must never be written")
	}
	if svc.CacheAvailable(ctx) {
		t.Fatalf("disabled cache reports unavailable")
	}
}

// TestNewRequiresStore: the store is the one mandatory dependency.
func TestNewRequiresStore(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("New without a store should fail")
	}
}
