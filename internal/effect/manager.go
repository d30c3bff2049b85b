package effect

import "log/slog"

// StatBlock is the part of the entity stat representation the manager
// touches. The manager never owns it.
type StatBlock interface {
	RestoreHP(amount int)
}

// Manager owns the status effects active on one entity and the aggregate
// State derived from them.
//
// Not safe for concurrent use: it is driven from the owning entity's
// simulation step, which is single-threaded.
type Manager struct {
	tax            *Taxonomy
	resolver       AnimationResolver
	ticksPerSecond int

	effects  []*Instance
	state    State
	triggers Triggers

	refreshStats bool
}

// NewManager creates an empty manager. resolver may be nil, in which case
// instances carry no animations.
func NewManager(tax *Taxonomy, resolver AnimationResolver, ticksPerSecond int) *Manager {
	return &Manager{
		tax:            tax,
		resolver:       resolver,
		ticksPerSecond: max(ticksPerSecond, 1),
		effects:        make([]*Instance, 0, 16),
		state:          newState(tax),
	}
}

// AddEffect applies def from a power or hazard.
// Returns the added or refreshed instance, or nil if the add was dropped.
//
// Stacking rules (same definition id and origin):
//   - No existing instance → appended
//   - can_stack=false → existing refreshed: timer reset, magnitude never weakens
//   - can_stack=true under max_stacks → appended
//   - can_stack=true at max_stacks → the stack with the least remaining time
//     (then lowest magnitude) is refreshed if that improves it, else dropped
func (m *Manager) AddEffect(stats StatBlock, def *Definition, duration, magnitude int, source SourceType, power PowerID) *Instance {
	return m.addEffectInternal(stats, def, duration, magnitude, source, false, power, TriggerNone)
}

// AddTriggeredEffect is AddEffect for effects applied in response to a
// combat event; ClearTriggerEffects(trigger) removes them again.
func (m *Manager) AddTriggeredEffect(stats StatBlock, def *Definition, duration, magnitude int, source SourceType, power PowerID, trigger Trigger) *Instance {
	return m.addEffectInternal(stats, def, duration, magnitude, source, false, power, trigger)
}

// AddItemEffect applies def from equipment. Item instances dedup separately
// from power instances of the same id and survive trigger-based clears.
func (m *Manager) AddItemEffect(stats StatBlock, def *Definition, duration, magnitude int) *Instance {
	return m.addEffectInternal(stats, def, duration, magnitude, SourceItem, true, NoPower, TriggerNone)
}

func (m *Manager) addEffectInternal(stats StatBlock, def *Definition, duration, magnitude int, source SourceType, item bool, power PowerID, trigger Trigger) *Instance {
	if def == nil {
		return nil
	}
	if def.ImmunityType {
		magnitude = 100
	}

	// Only one knockback at a time
	if def.Type == TypeKnockback && m.state.KnockbackSpeed != 0 {
		slog.Debug("effect dropped, knockback active", "effect", def.ID)
		return nil
	}

	matches := m.matching(def.ID, item)

	var inst *Instance
	switch {
	case len(matches) == 0:
		inst = m.appendInstance(def, duration, magnitude, source, item, power, trigger)
	case !def.CanStack:
		inst = matches[0]
		refreshInstance(inst, duration, magnitude)
		slog.Debug("effect refreshed", "effect", def.ID, "duration", duration, "magnitude", inst.Magnitude)
	case !def.stackCapped() || len(matches) < def.MaxStacks:
		inst = m.appendInstance(def, duration, magnitude, source, item, power, trigger)
	default:
		inst = pickStackRefresh(matches, duration, magnitude)
		if inst == nil {
			slog.Debug("effect dropped, stack cap reached", "effect", def.ID, "max_stacks", def.MaxStacks)
			return nil
		}
		refreshInstance(inst, duration, magnitude)
		slog.Debug("effect stack refreshed", "effect", def.ID, "handle", inst.Handle)
	}

	if def.Type == TypeHeal && stats != nil {
		stats.RestoreHP(magnitude)
	}

	m.refreshStats = true
	m.recompute()
	return inst
}

func (m *Manager) appendInstance(def *Definition, duration, magnitude int, source SourceType, item bool, power PowerID, trigger Trigger) *Instance {
	inst := NewInstance(def, duration, magnitude, source, item, power, m.resolver)
	inst.Trigger = trigger
	inst.LoadAnimation(def.Animation)
	m.effects = append(m.effects, inst)

	slog.Debug("effect added",
		"effect", def.ID,
		"type", m.tax.Name(def.Type),
		"duration", duration,
		"magnitude", magnitude,
		"source", source,
		"item", item)
	return inst
}

// matching returns instances with the given id and origin, oldest first.
func (m *Manager) matching(id string, item bool) []*Instance {
	var out []*Instance
	for _, e := range m.effects {
		if e.ID == id && e.Item == item {
			out = append(out, e)
		}
	}
	return out
}

func refreshInstance(e *Instance, duration, magnitude int) {
	e.Timer.Reset(duration)
	e.Magnitude = max(e.Magnitude, magnitude)
	e.MagnitudeMax = max(e.MagnitudeMax, magnitude)
}

// pickStackRefresh chooses the stack to refresh once the cap is reached.
// Only stacks a refresh would improve are eligible; ties keep the oldest.
func pickStackRefresh(stacks []*Instance, duration, magnitude int) *Instance {
	incoming := NewTimer(duration)

	var best *Instance
	for _, e := range stacks {
		if incoming.remaining() <= e.Timer.remaining() && magnitude <= e.Magnitude {
			continue
		}
		if best == nil {
			best = e
			continue
		}
		er, br := e.Timer.remaining(), best.Timer.remaining()
		if er < br || (er == br && e.Magnitude < best.Magnitude) {
			best = e
		}
	}
	return best
}

// Logic advances one tick: timers and animations step, finished instances
// are evicted and the aggregate state is rebuilt.
func (m *Manager) Logic() {
	changed := false
	var ending []*Instance

	n := 0
	for _, e := range m.effects {
		e.Timer.Tick()
		e.pulse = e.Type.IsPeriodic() && e.Timer.IsPulse(m.ticksPerSecond)

		if m.finished(e) {
			e.UnloadAnimation()
			changed = true
			if e.pulse {
				ending = append(ending, e)
			}
			slog.Debug("effect expired", "effect", e.ID, "handle", e.Handle)
			continue
		}

		if a := e.animation; a != nil && !a.IsCompleted() {
			a.AdvanceFrame()
		}

		m.effects[n] = e
		n++
	}
	clear(m.effects[n:])
	m.effects = m.effects[:n]

	if changed {
		m.refreshStats = true
	}
	m.recompute()

	// The final pulse of an expired periodic effect still lands
	for _, e := range ending {
		m.accumulate(&m.state, e)
	}
}

func (m *Manager) finished(e *Instance) bool {
	if e.Timer.IsEnd() {
		return true
	}
	if e.isShield() && e.MagnitudeMax > 0 && e.Magnitude <= 0 {
		return true
	}
	// Heal is applied on add; the instance only lives for its visual
	if e.Type == TypeHeal {
		return e.animation == nil || e.animation.IsLastFrame() || e.animation.IsCompleted()
	}
	return false
}

// recompute rebuilds the aggregate state from the live instances.
func (m *Manager) recompute() {
	s := &m.state
	s.reset()

	for _, e := range m.effects {
		m.accumulate(s, e)
	}
}

func (m *Manager) accumulate(s *State, e *Instance) {
	if e.Type.IsPeriodic() && !e.pulse {
		return
	}

	switch e.Type {
	case TypeNone, TypeShield, TypeHeal, TypeAttackSpeed:
		// Shields are consumed by DamageShields, attack speed by AttackSpeed
	case TypeDamage:
		s.Damage += e.Magnitude
	case TypeDamagePercent:
		s.DamagePercent += e.Magnitude
	case TypeHPOT:
		s.HPOT += e.Magnitude
	case TypeHPOTPercent:
		s.HPOTPercent += e.Magnitude
	case TypeMPOT:
		s.MPOT += e.Magnitude
	case TypeMPOTPercent:
		s.MPOTPercent += e.Magnitude
	case TypeSpeed:
		s.Speed = s.Speed * float64(e.Magnitude) / 100
	case TypeResistAll:
		for i := range s.BonusResist {
			s.BonusResist[i] += e.Magnitude
		}
		for _, i := range m.tax.EffectResistStats() {
			s.Bonus[i] += e.Magnitude
		}
	case TypeStun:
		s.Stun = true
	case TypeRevive:
		s.Revive = true
	case TypeConvert:
		s.Convert = true
	case TypeFear:
		s.Fear = true
	case TypeDeathSentence:
		s.DeathSentence = true
	case TypeKnockback:
		s.KnockbackSpeed = float64(e.Magnitude) / float64(m.ticksPerSecond)
	default:
		if i := m.tax.BonusIndex(e.Type); i >= 0 {
			s.Bonus[i] += e.Magnitude
		} else if i := m.tax.ResistFromType(e.Type); i >= 0 {
			s.BonusResist[i] += e.Magnitude
		} else if i := m.tax.PrimaryFromType(e.Type); i >= 0 {
			s.BonusPrimary[i] += e.Magnitude
		}
	}
}

// State returns a copy of the aggregate state. Call after Logic each tick.
func (m *Manager) State() State {
	return m.state.Clone()
}

// Effects returns a copy of the active instance list, oldest first.
func (m *Manager) Effects() []*Instance {
	out := make([]*Instance, len(m.effects))
	copy(out, m.effects)
	return out
}

// Count returns the number of active instances.
func (m *Manager) Count() int {
	return len(m.effects)
}

// RefreshStats reports whether dependent stat totals are stale.
func (m *Manager) RefreshStats() bool {
	return m.refreshStats
}

// ConsumeRefresh returns the refresh flag and clears it.
func (m *Manager) ConsumeRefresh() bool {
	r := m.refreshStats
	m.refreshStats = false
	return r
}

// SetTriggered raises the flag for a combat event.
func (m *Manager) SetTriggered(tr Trigger) {
	*m.triggers.flag(tr) = true
}

// ConsumeTriggered returns the flag for a combat event and clears it.
func (m *Manager) ConsumeTriggered(tr Trigger) bool {
	f := m.triggers.flag(tr)
	v := *f
	*f = false
	return v
}

// Triggered returns the current trigger flags.
func (m *Manager) Triggered() Triggers {
	return m.triggers
}

// Close releases every instance and its animation.
func (m *Manager) Close() {
	m.ClearEffects()
}
