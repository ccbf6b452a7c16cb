package container_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/km-arc/go-batis/container"
)

// ── Test scope ────────────────────────────────────────────────────────────────

type storeKey struct{}

type testStore struct {
	mu    sync.Mutex
	items map[string]any
}

// newStoreCtx simulates one conversation: a context carrying its own
// instance store.
func newStoreCtx() context.Context {
	return context.WithValue(context.Background(), storeKey{}, &testStore{items: map[string]any{}})
}

type ctxScope struct{}

func (ctxScope) Get(ctx context.Context, name string, build func() (any, error)) (any, error) {
	st, ok := ctx.Value(storeKey{}).(*testStore)
	if !ok {
		return nil, errors.New("no store in context")
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if v, ok := st.items[name]; ok {
		return v, nil
	}
	v, err := build()
	if err != nil {
		return nil, err
	}
	st.items[name] = v
	return v, nil
}

func (ctxScope) Remove(ctx context.Context, name string) (any, bool) {
	st, ok := ctx.Value(storeKey{}).(*testStore)
	if !ok {
		return nil, false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	v, ok := st.items[name]
	delete(st.items, name)
	return v, ok
}

// ── Custom scopes ─────────────────────────────────────────────────────────────

func TestContainer_CustomScope(t *testing.T) {
	c := container.New()
	c.RegisterScope("conversation", ctxScope{})
	d := widgetDef("test.widget")
	d.Scope = "conversation"
	c.Definitions().Register("w", d)

	ctx1, ctx2 := newStoreCtx(), newStoreCtx()

	first, err := c.ResolveCtx(ctx1, "w")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	again, err := c.ResolveCtx(ctx1, "w")
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if first != again {
		t.Error("same conversation returned different instances")
	}

	other, err := c.ResolveCtx(ctx2, "w")
	if err != nil {
		t.Fatalf("resolve in second conversation: %v", err)
	}
	if other == first {
		t.Error("different conversations shared an instance")
	}
}

func TestContainer_UnknownScope(t *testing.T) {
	c := container.New()
	d := widgetDef("test.widget")
	d.Scope = "session"
	c.Definitions().Register("w", d)

	_, err := c.Resolve("w")
	if !errors.Is(err, container.ErrNoSuchScope) {
		t.Errorf("got %v, want ErrNoSuchScope", err)
	}
}

// ── Scoped proxies ────────────────────────────────────────────────────────────

// registerProxied wraps a scoped definition the way the scanner does:
// hidden target plus visible proxy entry.
func registerProxied(c *container.Container, name string, def *container.Definition) {
	proxy := container.CreateScopedProxy(&container.Holder{Name: name, Definition: def}, c.Definitions())
	c.Definitions().Register(proxy.Name, proxy.Definition)
}

func TestCreateScopedProxy_TwoEntries(t *testing.T) {
	reg := container.NewRegistry()
	target := container.NewDefinition("example.com/app.AuditMapper")
	target.FactoryType = "test.widget"
	target.Scope = "conversation"
	target.Lazy = true

	proxy := container.CreateScopedProxy(&container.Holder{Name: "audit", Definition: target}, reg)
	reg.Register(proxy.Name, proxy.Definition)

	hidden, ok := reg.Definition("scopedTarget.audit")
	if !ok {
		t.Fatal("hidden target entry missing")
	}
	if hidden.AutowireCandidate {
		t.Error("hidden target must not be an autowire candidate")
	}
	if hidden.Scope != "conversation" {
		t.Errorf("hidden target scope = %q", hidden.Scope)
	}

	if proxy.Name != "audit" {
		t.Errorf("proxy name = %q", proxy.Name)
	}
	pd := proxy.Definition
	if pd.TypeName != "example.com/app.AuditMapper" {
		t.Errorf("proxy keeps the product type, got %q", pd.TypeName)
	}
	if pd.FactoryType != container.ScopedProxyFactoryType() {
		t.Errorf("proxy factory type = %q", pd.FactoryType)
	}
	if v, _ := pd.Property("targetName"); v != "scopedTarget.audit" {
		t.Errorf("targetName = %v", v)
	}
	if !pd.Lazy {
		t.Error("proxy must inherit laziness from the target")
	}
	if pd.Decorated == nil || pd.Decorated.Name != "scopedTarget.audit" {
		t.Error("proxy must point at the decorated target")
	}
	if !pd.IsSingleton() {
		t.Error("the proxy itself is a singleton")
	}
}

func TestScopedProxy_ResolvesPerScope(t *testing.T) {
	c := container.New()
	c.RegisterScope("conversation", ctxScope{})
	d := widgetDef("test.widget")
	d.Scope = "conversation"
	registerProxied(c, "w", d)

	// The raw resolution yields the stand-in.
	raw, err := c.Resolve("w")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	ref, ok := raw.(*container.ScopedRef)
	if !ok {
		t.Fatalf("got %T, want *ScopedRef", raw)
	}
	if ref.TargetName() != "scopedTarget.w" {
		t.Errorf("TargetName() = %q", ref.TargetName())
	}

	// The generic accessor unwraps transparently, per scope.
	ctx1, ctx2 := newStoreCtx(), newStoreCtx()
	first, err := container.ResolveCtx[Greeter](ctx1, c, "w")
	if err != nil {
		t.Fatalf("resolve in first conversation: %v", err)
	}
	again, err := container.ResolveCtx[Greeter](ctx1, c, "w")
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if first != again {
		t.Error("same conversation returned different instances")
	}
	other, err := container.ResolveCtx[Greeter](ctx2, c, "w")
	if err != nil {
		t.Fatalf("resolve in second conversation: %v", err)
	}
	if other == first {
		t.Error("different conversations shared an instance")
	}
}

func TestResolve_ScopedRefItself(t *testing.T) {
	c := container.New()
	c.RegisterScope("conversation", ctxScope{})
	d := widgetDef("test.widget")
	d.Scope = "conversation"
	registerProxied(c, "w", d)

	// Asking for the stand-in skips the unwrap; no store is needed.
	ref, err := container.Resolve[*container.ScopedRef](c, "w")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ref.TargetName() != "scopedTarget.w" {
		t.Errorf("TargetName() = %q", ref.TargetName())
	}

	// Get without a store fails inside the scope, not before it.
	if _, err := ref.Get(context.Background()); err == nil {
		t.Error("Get without a conversation store must fail")
	}
}
