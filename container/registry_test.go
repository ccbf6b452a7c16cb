package container_test

import (
	"testing"

	"github.com/km-arc/go-batis/container"
)

func TestRegistry_RegisterKeepsOrder(t *testing.T) {
	reg := container.NewRegistry()
	reg.Register("b", container.NewDefinition("t.B"))
	reg.Register("a", container.NewDefinition("t.A"))
	reg.Register("c", container.NewDefinition("t.C"))

	got := reg.Names()
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
}

func TestRegistry_OverwriteKeepsPosition(t *testing.T) {
	reg := container.NewRegistry()
	reg.Register("a", container.NewDefinition("t.A"))
	reg.Register("b", container.NewDefinition("t.B"))
	reg.Register("a", container.NewDefinition("t.A2"))

	names := reg.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Names() = %v, want [a b]", names)
	}
	def, ok := reg.Definition("a")
	if !ok || def.TypeName != "t.A2" {
		t.Errorf("Definition(a).TypeName = %q, want t.A2", def.TypeName)
	}
}

func TestRegistry_Remove(t *testing.T) {
	reg := container.NewRegistry()
	reg.Register("a", container.NewDefinition("t.A"))
	reg.Register("b", container.NewDefinition("t.B"))

	if !reg.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if reg.Remove("a") {
		t.Error("second Remove(a) = true, want false")
	}
	if reg.Contains("a") {
		t.Error("Contains(a) = true after Remove")
	}
	names := reg.Names()
	if len(names) != 1 || names[0] != "b" {
		t.Errorf("Names() = %v, want [b]", names)
	}
}

func TestRegistry_Holders(t *testing.T) {
	reg := container.NewRegistry()
	reg.Register("a", container.NewDefinition("t.A"))
	reg.Register("b", container.NewDefinition("t.B"))

	holders := reg.Holders()
	if len(holders) != 2 {
		t.Fatalf("got %d holders, want 2", len(holders))
	}
	if holders[0].Name != "a" || holders[0].Definition.TypeName != "t.A" {
		t.Errorf("holders[0] = %s/%s", holders[0].Name, holders[0].Definition.TypeName)
	}
	if holders[1].Name != "b" || holders[1].Definition.TypeName != "t.B" {
		t.Errorf("holders[1] = %s/%s", holders[1].Name, holders[1].Definition.TypeName)
	}
}
