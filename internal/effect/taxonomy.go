package effect

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/statfx/internal/model"
)

// legacyImmunity maps deprecated immunity type strings to the stat they
// now resolve to. "immunity" itself resolves to TypeResistAll.
var legacyImmunity = map[string]string{
	"immunity_damage":         model.StatResistDamageOverTime,
	"immunity_slow":           model.StatResistSlow,
	"immunity_stun":           model.StatResistStun,
	"immunity_hp_steal":       model.StatResistHPSteal,
	"immunity_mp_steal":       model.StatResistMPSteal,
	"immunity_knockback":      model.StatResistKnockback,
	"immunity_damage_reflect": model.StatResistDamageReflect,
	"immunity_stat_debuff":    model.StatResistStatDebuff,
}

// IsImmunityTypeString reports whether s is a deprecated immunity type name.
func IsImmunityTypeString(s string) bool {
	if s == "immunity" {
		return true
	}
	_, ok := legacyImmunity[s]
	return ok
}

// Taxonomy classifies effect types against a stat layout.
// Layout-dependent types are laid out after TypeCount in this order:
// stats, damage min/max pairs, element resists, primary attributes.
type Taxonomy struct {
	layout model.StatLayout

	statCount    int
	dmgSlots     int
	resistCount  int
	primaryCount int

	effectResist map[int]bool
	byName       map[string]Type
}

// NewTaxonomy builds the classification tables for a layout.
func NewTaxonomy(layout model.StatLayout) *Taxonomy {
	t := &Taxonomy{
		layout:       layout,
		statCount:    len(layout.Stats),
		dmgSlots:     layout.DamageSlots(),
		resistCount:  len(layout.Elements),
		primaryCount: len(layout.Primary),
		effectResist: make(map[int]bool, len(layout.EffectResists)),
		byName:       make(map[string]Type),
	}

	for i := TypeNone; i < TypeCount; i++ {
		t.byName[typeNames[i]] = i
	}
	// Fixed names and earlier layout names keep their meaning
	add := func(name string, ty Type) {
		if _, taken := t.byName[name]; taken || IsImmunityTypeString(name) {
			slog.Warn("layout name shadows an existing type, ignored", "name", name)
			return
		}
		t.byName[name] = ty
	}
	for i, s := range layout.Stats {
		add(s, t.statBase()+Type(i))
	}
	for i, d := range layout.DamageTypes {
		add(d.Min, t.dmgBase()+Type(i*2))
		add(d.Max, t.dmgBase()+Type(i*2+1))
	}
	for i, e := range layout.Elements {
		add(e.Resist, t.resistBase()+Type(i))
	}
	for i, p := range layout.Primary {
		add(p, t.primaryBase()+Type(i))
	}
	for _, s := range layout.EffectResists {
		if i := layout.StatIndex(s); i >= 0 {
			t.effectResist[i] = true
		}
	}
	return t
}

// ValidateLayout checks that every layout name is unique, distinct from the
// fixed type names and legacy immunity names, and that each effect
// resistance is a stat.
func ValidateLayout(layout model.StatLayout) error {
	seen := make(map[string]bool, int(TypeCount)+len(layout.Stats))
	for _, n := range typeNames {
		seen[n] = true
	}

	var errs []error
	check := func(kind, name string) {
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("layout: empty %s name", kind))
		case seen[name] || IsImmunityTypeString(name):
			errs = append(errs, fmt.Errorf("layout: %s %q clashes with another type name", kind, name))
		}
		seen[name] = true
	}
	for _, s := range layout.Stats {
		check("stat", s)
	}
	for _, d := range layout.DamageTypes {
		check("damage min", d.Min)
		check("damage max", d.Max)
	}
	for _, e := range layout.Elements {
		check("element resist", e.Resist)
	}
	for _, p := range layout.Primary {
		check("primary", p)
	}
	for _, s := range layout.EffectResists {
		if layout.StatIndex(s) < 0 {
			errs = append(errs, fmt.Errorf("layout: effect resist %q is not a stat", s))
		}
	}
	return errors.Join(errs...)
}

// Layout returns the layout the taxonomy was built from.
func (t *Taxonomy) Layout() model.StatLayout {
	return t.layout
}

func (t *Taxonomy) statBase() Type    { return TypeCount }
func (t *Taxonomy) dmgBase() Type     { return t.statBase() + Type(t.statCount) }
func (t *Taxonomy) resistBase() Type  { return t.dmgBase() + Type(t.dmgSlots) }
func (t *Taxonomy) primaryBase() Type { return t.resistBase() + Type(t.resistCount) }
func (t *Taxonomy) end() Type         { return t.primaryBase() + Type(t.primaryCount) }

// IsStat reports whether ty addresses a named stat.
func (t *Taxonomy) IsStat(ty Type) bool {
	return ty >= t.statBase() && ty < t.dmgBase()
}

// IsDmgMin reports whether ty addresses a damage-type minimum.
func (t *Taxonomy) IsDmgMin(ty Type) bool {
	return ty >= t.dmgBase() && ty < t.resistBase() && (ty-t.dmgBase())%2 == 0
}

// IsDmgMax reports whether ty addresses a damage-type maximum.
func (t *Taxonomy) IsDmgMax(ty Type) bool {
	return ty >= t.dmgBase() && ty < t.resistBase() && (ty-t.dmgBase())%2 == 1
}

// IsResist reports whether ty addresses an element resistance.
func (t *Taxonomy) IsResist(ty Type) bool {
	return ty >= t.resistBase() && ty < t.primaryBase()
}

// IsPrimary reports whether ty addresses a primary attribute.
func (t *Taxonomy) IsPrimary(ty Type) bool {
	return ty >= t.primaryBase() && ty < t.end()
}

// IsEffectResist reports whether ty is a stat granting status-effect resistance.
func (t *Taxonomy) IsEffectResist(ty Type) bool {
	return t.IsStat(ty) && t.effectResist[t.StatFromType(ty)]
}

// EffectResistStats returns the stat indices granting status-effect
// resistance, in layout order.
func (t *Taxonomy) EffectResistStats() []int {
	out := make([]int, 0, len(t.effectResist))
	for i := range t.statCount {
		if t.effectResist[i] {
			out = append(out, i)
		}
	}
	return out
}

// IsValid reports whether ty is a fixed type or inside the layout range.
func (t *Taxonomy) IsValid(ty Type) bool {
	return ty >= TypeNone && ty < t.end()
}

// StatFromType returns the stat index for a stat type, or -1.
func (t *Taxonomy) StatFromType(ty Type) int {
	if !t.IsStat(ty) {
		return -1
	}
	return int(ty - t.statBase())
}

// DmgFromType returns the damage slot (min at even, max at odd) for a
// damage type, or -1.
func (t *Taxonomy) DmgFromType(ty Type) int {
	if ty < t.dmgBase() || ty >= t.resistBase() {
		return -1
	}
	return int(ty - t.dmgBase())
}

// ResistFromType returns the element index for a resist type, or -1.
func (t *Taxonomy) ResistFromType(ty Type) int {
	if !t.IsResist(ty) {
		return -1
	}
	return int(ty - t.resistBase())
}

// PrimaryFromType returns the primary attribute index for a primary type, or -1.
func (t *Taxonomy) PrimaryFromType(ty Type) int {
	if !t.IsPrimary(ty) {
		return -1
	}
	return int(ty - t.primaryBase())
}

// BonusIndex returns the index into State.Bonus for stat and damage types,
// or -1. Damage slots follow the stats.
func (t *Taxonomy) BonusIndex(ty Type) int {
	if i := t.StatFromType(ty); i >= 0 {
		return i
	}
	if i := t.DmgFromType(ty); i >= 0 {
		return t.statCount + i
	}
	return -1
}

// BonusLen returns the length of State.Bonus.
func (t *Taxonomy) BonusLen() int {
	return t.statCount + t.dmgSlots
}

// Parse resolves a data type name. immunity is true for deprecated
// immunity spellings. Unknown names resolve to TypeNone.
func (t *Taxonomy) Parse(s string) (ty Type, immunity bool) {
	if s == "immunity" {
		return TypeResistAll, true
	}
	if stat, ok := legacyImmunity[s]; ok {
		if i := t.layout.StatIndex(stat); i >= 0 {
			return t.statBase() + Type(i), true
		}
		return TypeNone, true
	}
	if ty, ok := t.byName[s]; ok {
		return ty, false
	}
	return TypeNone, false
}

// Name returns the data name of ty, the inverse of Parse.
func (t *Taxonomy) Name(ty Type) string {
	switch {
	case ty >= TypeNone && ty < TypeCount:
		return typeNames[ty]
	case t.IsStat(ty):
		return t.layout.Stats[t.StatFromType(ty)]
	case t.IsDmgMin(ty):
		return t.layout.DamageTypes[t.DmgFromType(ty)/2].Min
	case t.IsDmgMax(ty):
		return t.layout.DamageTypes[t.DmgFromType(ty)/2].Max
	case t.IsResist(ty):
		return t.layout.Elements[t.ResistFromType(ty)].Resist
	case t.IsPrimary(ty):
		return t.layout.Primary[t.PrimaryFromType(ty)]
	}
	return ty.String()
}
