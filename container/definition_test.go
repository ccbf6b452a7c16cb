package container_test

import (
	"reflect"
	"testing"

	"github.com/km-arc/go-batis/container"
)

func TestNewDefinition_Defaults(t *testing.T) {
	d := container.NewDefinition("example.com/app.UserMapper")

	if d.TypeName != "example.com/app.UserMapper" {
		t.Errorf("TypeName = %q", d.TypeName)
	}
	if !d.IsSingleton() {
		t.Error("a fresh definition must be a singleton")
	}
	if !d.AutowireCandidate {
		t.Error("a fresh definition must be an autowire candidate")
	}
	if d.FactoryType != "" || d.Lazy || d.Autowire != container.AutowireNone {
		t.Errorf("unexpected defaults: %+v", d)
	}
}

func TestDefinition_Chaining(t *testing.T) {
	d := container.NewDefinition("t.X").
		AddArg("first").
		AddArg(container.Ref{Name: "dep"}).
		SetProperty("lazyInit", "true")

	if len(d.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(d.Args))
	}
	v, ok := d.Property("lazyInit")
	if !ok || v != "true" {
		t.Errorf("Property(lazyInit) = %v, %v", v, ok)
	}
	if _, ok := d.Property("missing"); ok {
		t.Error("Property(missing) reported ok")
	}
}

func TestDefinition_IsSingleton(t *testing.T) {
	cases := []struct {
		scope string
		want  bool
	}{
		{"", true},
		{container.ScopeSingleton, true},
		{container.ScopePrototype, false},
		{"request", false},
	}
	for _, tc := range cases {
		d := container.NewDefinition("t.X")
		d.Scope = tc.scope
		if got := d.IsSingleton(); got != tc.want {
			t.Errorf("scope %q: IsSingleton() = %v, want %v", tc.scope, got, tc.want)
		}
	}
}

func TestAutowireMode_String(t *testing.T) {
	if container.AutowireNone.String() != "none" {
		t.Error("AutowireNone")
	}
	if container.AutowireByType.String() != "byType" {
		t.Error("AutowireByType")
	}
}

func TestTypeKey(t *testing.T) {
	w := &widget{}

	if got := container.TypeKey(w); got != container.TypeKey(widget{}) {
		t.Errorf("pointer and value keys differ: %q", got)
	}
	// reflect.Type input, including interface types through a typed nil.
	it := reflect.TypeOf((*Greeter)(nil)).Elem()
	if got := container.TypeKey(it); got == "" || got == container.TypeKey(w) {
		t.Errorf("interface key = %q", got)
	}
	// Builtins carry no package path.
	if got := container.TypeKey("s"); got != "string" {
		t.Errorf("TypeKey(string) = %q", got)
	}
	if got := container.TypeKey(nil); got != "" {
		t.Errorf("TypeKey(nil) = %q", got)
	}
}
