package testutil

import (
	"testing"

	"github.com/udisondev/statfx/internal/anim"
	"github.com/udisondev/statfx/internal/effect"
	"github.com/udisondev/statfx/internal/model"
)

// Fixtures holds shared test data so tests across packages agree on the
// same stat block and animation set.
var Fixtures = struct {
	BaseStats  map[string]int
	Animations map[string]anim.Spec
}{
	BaseStats: map[string]int{
		"hp":       100,
		"mp":       40,
		"accuracy": 10,
	},
	Animations: map[string]anim.Spec{
		"slow_fx": {Frames: 4, Loop: true},
		"heal_fx": {Frames: 3},
	},
}

// Definition returns a non-stacking definition with neutral tint.
func Definition(id string, ty effect.Type) *effect.Definition {
	return &effect.Definition{
		ID:       id,
		Type:     ty,
		Name:     id,
		ColorMod: effect.ColorDefault,
		AlphaMod: effect.AlphaDefault,
	}
}

// StackingDefinition returns a stacking definition capped at maxStacks.
func StackingDefinition(id string, ty effect.Type, maxStacks int) *effect.Definition {
	d := Definition(id, ty)
	d.CanStack = true
	d.MaxStacks = maxStacks
	return d
}

// Library returns an animation library with the fixture animations.
func Library() *anim.Library {
	lib := anim.NewLibrary()
	for name, spec := range Fixtures.Animations {
		lib.Register(name, spec)
	}
	return lib
}

// Stats returns a stat block over the default layout with the fixture
// base stats.
func Stats() *model.Stats {
	return model.NewStats(model.DefaultLayout(), Fixtures.BaseStats)
}

// NewManager returns a manager over the default layout. Its instances are
// released when the test ends.
func NewManager(tb testing.TB, ticksPerSecond int) (*effect.Manager, *effect.Taxonomy, *anim.Library) {
	tb.Helper()

	tax := effect.NewTaxonomy(model.DefaultLayout())
	lib := Library()
	m := effect.NewManager(tax, lib, ticksPerSecond)
	tb.Cleanup(m.Close)
	return m, tax, lib
}
