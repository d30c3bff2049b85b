package effect

import "log/slog"

// Removal names a definition id and how many of its instances to remove.
// Count <= 0 removes all of them.
type Removal struct {
	ID    string
	Count int
}

// removeWhere evicts every instance matching pred, releasing animations.
// Returns how many were removed.
func (m *Manager) removeWhere(pred func(e *Instance) bool) int {
	removed := 0
	n := 0
	for _, e := range m.effects {
		if pred(e) {
			e.UnloadAnimation()
			removed++
			continue
		}
		m.effects[n] = e
		n++
	}
	clear(m.effects[n:])
	m.effects = m.effects[:n]

	if removed > 0 {
		m.refreshStats = true
		m.recompute()
	}
	return removed
}

// RemoveEffectType removes every instance of type t.
func (m *Manager) RemoveEffectType(t Type) int {
	return m.removeWhere(func(e *Instance) bool {
		return e.Type == t
	})
}

// RemoveEffectPassive removes every instance applied by the given passive
// power. NoPower matches nothing.
func (m *Manager) RemoveEffectPassive(id PowerID) int {
	if id == NoPower {
		return 0
	}
	return m.removeWhere(func(e *Instance) bool {
		return e.PassiveID == id
	})
}

// RemoveEffectID removes up to Count instances per id, newest first.
// Group-stacked ids count as one unit: removing one removes the group.
func (m *Manager) RemoveEffectID(removals []Removal) int {
	total := 0
	for _, r := range removals {
		if r.Count <= 0 || m.isGroupStacked(r.ID) {
			total += m.removeWhere(func(e *Instance) bool {
				return e.ID == r.ID
			})
			continue
		}

		victims := make(map[*Instance]bool, r.Count)
		for i := len(m.effects) - 1; i >= 0 && len(victims) < r.Count; i-- {
			if m.effects[i].ID == r.ID {
				victims[m.effects[i]] = true
			}
		}
		total += m.removeWhere(func(e *Instance) bool {
			return victims[e]
		})
	}

	if total > 0 {
		slog.Debug("effects removed by id", "count", total)
	}
	return total
}

func (m *Manager) isGroupStacked(id string) bool {
	for _, e := range m.effects {
		if e.ID == id && e.GroupStack {
			return true
		}
	}
	return false
}

// ClearEffects removes every instance.
func (m *Manager) ClearEffects() int {
	return m.removeWhere(func(*Instance) bool { return true })
}

// ClearNegativeEffects removes harmful instances of type t, or of every
// type when t is TypeNone. Item instances and effect resistances stay.
func (m *Manager) ClearNegativeEffects(t Type) int {
	return m.removeWhere(func(e *Instance) bool {
		if t != TypeNone && e.Type != t {
			return false
		}
		if e.Item || m.tax.IsEffectResist(e.Type) {
			return false
		}
		return m.isNegative(e)
	})
}

// ClearItemEffects removes instances applied by equipment.
func (m *Manager) ClearItemEffects() int {
	return m.removeWhere(func(e *Instance) bool {
		return e.Item
	})
}

// ClearTriggerEffects removes instances applied in response to trigger.
// Item instances are kept.
func (m *Manager) ClearTriggerEffects(trigger Trigger) int {
	if trigger == TriggerNone {
		return 0
	}
	return m.removeWhere(func(e *Instance) bool {
		return !e.Item && e.Trigger == trigger
	})
}

// isNegative classifies an instance as harmful.
func (m *Manager) isNegative(e *Instance) bool {
	switch e.Type {
	case TypeDamage, TypeDamagePercent, TypeStun, TypeFear, TypeDeathSentence, TypeKnockback:
		return true
	case TypeSpeed, TypeAttackSpeed:
		return e.MagnitudeMax < 100
	}
	if m.tax.BonusIndex(e.Type) >= 0 || m.tax.IsResist(e.Type) || m.tax.IsPrimary(e.Type) {
		return e.MagnitudeMax < 0
	}
	return false
}
