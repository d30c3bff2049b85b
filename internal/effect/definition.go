package effect

import (
	"errors"
	"fmt"
)

// ErrUnknownDefinition is returned by Definitions.Lookup for unknown ids.
var ErrUnknownDefinition = errors.New("unknown effect definition")

// Definition is an immutable template describing one kind of effect as
// authored in game data.
type Definition struct {
	ID          string
	Type        Type
	Name        string
	Icon        int
	Animation   string
	CanStack    bool
	MaxStacks   int // <= 0 means unlimited
	GroupStack  bool
	RenderAbove bool
	ColorMod    Color
	AlphaMod    uint8

	// AttackSpeedAnim restricts an attack_speed effect to one animation.
	AttackSpeedAnim string

	// ImmunityType is set for definitions parsed from deprecated
	// immunity type strings. Their instances always apply magnitude 100.
	ImmunityType bool
}

// Definitions is a read-only lookup of definitions by id.
type Definitions map[string]*Definition

// Lookup returns the definition with the given id.
func (d Definitions) Lookup(id string) (*Definition, error) {
	def, ok := d[id]
	if !ok {
		return nil, fmt.Errorf("effect %q: %w", id, ErrUnknownDefinition)
	}
	return def, nil
}

func (d *Definition) stackCapped() bool {
	return d.CanStack && d.MaxStacks > 0
}
