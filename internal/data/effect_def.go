package data

import (
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/statfx/internal/effect"
)

var errMissingID = errors.New("effect definition without id")

// effectFile is the on-disk layout of a definitions file.
type effectFile struct {
	Effects []effectEntry `yaml:"effects"`
}

type colorEntry struct {
	R uint8  `yaml:"r"`
	G uint8  `yaml:"g"`
	B uint8  `yaml:"b"`
	A *uint8 `yaml:"a"`
}

type effectEntry struct {
	ID              string      `yaml:"id"`
	Type            string      `yaml:"type"`
	Name            string      `yaml:"name"`
	Icon            int         `yaml:"icon"`
	Animation       string      `yaml:"animation"`
	CanStack        bool        `yaml:"can_stack"`
	MaxStacks       int         `yaml:"max_stacks"`
	GroupStack      bool        `yaml:"group_stack"`
	RenderAbove     bool        `yaml:"render_above"`
	ColorMod        *colorEntry `yaml:"color_mod"`
	AlphaMod        *uint8      `yaml:"alpha_mod"`
	AttackSpeedAnim string      `yaml:"attack_speed_anim"`
}

// ParseEffects decodes a definitions document. source names the document
// in log lines and errors. Unknown type names resolve to effect.TypeNone.
func ParseEffects(tax *effect.Taxonomy, raw []byte, source string) ([]*effect.Definition, error) {
	var f effectFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}

	defs := make([]*effect.Definition, 0, len(f.Effects))
	for i := range f.Effects {
		def, err := f.Effects[i].definition(tax, source)
		if err != nil {
			return nil, fmt.Errorf("%s entry %d: %w", source, i, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (e *effectEntry) definition(tax *effect.Taxonomy, source string) (*effect.Definition, error) {
	if e.ID == "" {
		return nil, errMissingID
	}

	ty, immunity := tax.Parse(e.Type)
	if ty == effect.TypeNone && e.Type != "" && e.Type != "none" {
		slog.Warn("unknown effect type, treating as none", "effect", e.ID, "type", e.Type, "source", source)
	}
	if immunity {
		slog.Debug("deprecated immunity effect type", "effect", e.ID, "type", e.Type)
	}

	def := &effect.Definition{
		ID:              e.ID,
		Type:            ty,
		Name:            e.Name,
		Icon:            e.Icon,
		Animation:       e.Animation,
		CanStack:        e.CanStack,
		MaxStacks:       e.MaxStacks,
		GroupStack:      e.GroupStack,
		RenderAbove:     e.RenderAbove,
		ColorMod:        effect.ColorDefault,
		AlphaMod:        effect.AlphaDefault,
		AttackSpeedAnim: e.AttackSpeedAnim,
		ImmunityType:    immunity,
	}
	if def.Name == "" {
		def.Name = e.ID
	}
	if c := e.ColorMod; c != nil {
		def.ColorMod = effect.Color{R: c.R, G: c.G, B: c.B, A: 255}
		if c.A != nil {
			def.ColorMod.A = *c.A
		}
	}
	if e.AlphaMod != nil {
		def.AlphaMod = *e.AlphaMod
	}
	return def, nil
}
