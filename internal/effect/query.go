package effect

import (
	"log/slog"

	"github.com/google/uuid"
)

// DamageShields absorbs dmg with shield instances in the order they were
// added. Depleted shields are removed immediately. Returns the damage left
// after all shields are exhausted.
func (m *Manager) DamageShields(dmg int) int {
	if dmg <= 0 {
		return 0
	}

	over := dmg
	depleted := make(map[*Instance]bool)
	for _, e := range m.effects {
		if over == 0 {
			break
		}
		if !e.isShield() || e.Magnitude <= 0 {
			continue
		}
		absorbed := min(e.Magnitude, over)
		e.Magnitude -= absorbed
		over -= absorbed
		if e.Magnitude == 0 {
			depleted[e] = true
		}
	}

	if len(depleted) > 0 {
		m.removeWhere(func(e *Instance) bool { return depleted[e] })
		slog.Debug("shields depleted", "count", len(depleted), "absorbed", dmg-over)
	}
	return over
}

// IsDebuffed reports whether any active instance is harmful.
func (m *Manager) IsDebuffed() bool {
	for _, e := range m.effects {
		if m.isNegative(e) {
			return true
		}
	}
	return false
}

// CurrentColor returns the tint of the most recently added instance with a
// non-neutral colour, or fallback.
func (m *Manager) CurrentColor(fallback Color) Color {
	for i := len(m.effects) - 1; i >= 0; i-- {
		if c := m.effects[i].ColorMod; !c.IsNeutral() {
			return c
		}
	}
	return fallback
}

// CurrentAlpha returns the alpha of the most recently added instance with a
// non-neutral alpha, or fallback. Zero counts as unset.
func (m *Manager) CurrentAlpha(fallback uint8) uint8 {
	for i := len(m.effects) - 1; i >= 0; i-- {
		if a := m.effects[i].AlphaMod; a != AlphaDefault && a != 0 {
			return a
		}
	}
	return fallback
}

// HasEffect reports whether at least count instances of id are active.
func (m *Manager) HasEffect(id string, count int) bool {
	if count <= 0 {
		return false
	}
	n := 0
	for _, e := range m.effects {
		if e.ID == id {
			n++
		}
	}
	return n >= count
}

// AttackSpeed returns the combined attack speed multiplier for an attack
// animation. Effects without an animation filter apply to every animation.
// 1.0 is neutral.
func (m *Manager) AttackSpeed(animName string) float64 {
	speed := 1.0
	for _, e := range m.effects {
		if e.Type != TypeAttackSpeed {
			continue
		}
		if e.AttackSpeedAnim != "" && e.AttackSpeedAnim != animName {
			continue
		}
		speed = speed * float64(e.Magnitude) / 100
	}
	return speed
}

// DamageSourceType resolves who is responsible for periodic damage or
// restoration of the given mode. Hero (and item) sources win over allies,
// allies over enemies; with no attributed source the result is neutral.
// Modes other than damage, hpot and mpot return SourceNone.
func (m *Manager) DamageSourceType(mode Type) SourceType {
	if mode < TypeDamage || mode > TypeMPOTPercent {
		return SourceNone
	}

	source := SourceNeutral
	for _, e := range m.effects {
		if e.Type != mode {
			continue
		}
		switch e.SourceType {
		case SourceHero, SourceItem:
			return SourceHero
		case SourceAlly:
			source = SourceAlly
		case SourceEnemy:
			if source != SourceAlly {
				source = SourceEnemy
			}
		}
	}
	return source
}

// DisplayEntry is one row of the status bar.
type DisplayEntry struct {
	Handle      uuid.UUID
	ID          string
	Name        string
	Icon        int
	Type        Type
	Stacks      int
	Magnitude   int
	Remaining   int // ticks; 0 when permanent
	Permanent   bool
	RenderAbove bool
}

// Display returns status bar rows in application order. Group-stacked
// instances of one id collapse into a single row.
func (m *Manager) Display() []DisplayEntry {
	rows := make([]DisplayEntry, 0, len(m.effects))
	groups := make(map[string]int)

	for _, e := range m.effects {
		if e.GroupStack {
			if i, ok := groups[e.ID]; ok {
				r := &rows[i]
				r.Stacks++
				r.Magnitude += e.Magnitude
				r.Permanent = r.Permanent || e.Timer.Permanent()
				r.Remaining = max(r.Remaining, e.Timer.Current())
				if r.Permanent {
					r.Remaining = 0
				}
				continue
			}
			groups[e.ID] = len(rows)
		}
		rows = append(rows, DisplayEntry{
			Handle:      e.Handle,
			ID:          e.ID,
			Name:        e.Name,
			Icon:        e.Icon,
			Type:        e.Type,
			Stacks:      1,
			Magnitude:   e.Magnitude,
			Remaining:   e.Timer.Current(),
			Permanent:   e.Timer.Permanent(),
			RenderAbove: e.RenderAbove,
		})
	}
	return rows
}
