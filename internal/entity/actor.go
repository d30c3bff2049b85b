package entity

import (
	"log/slog"

	"github.com/udisondev/statfx/internal/effect"
	"github.com/udisondev/statfx/internal/model"
)

// Actor is a combat entity that owns a stat block and its status effects.
// Like the effect manager it is driven from a single goroutine.
type Actor struct {
	name    string
	stats   *model.Stats
	effects *effect.Manager

	halfDead bool
}

// NewActor creates an actor. It takes ownership of effects.
func NewActor(name string, stats *model.Stats, effects *effect.Manager) *Actor {
	return &Actor{
		name:    name,
		stats:   stats,
		effects: effects,
	}
}

// Name returns the actor name.
func (a *Actor) Name() string {
	return a.name
}

// Stats returns the stat block.
func (a *Actor) Stats() *model.Stats {
	return a.stats
}

// Effects returns the effect manager.
func (a *Actor) Effects() *effect.Manager {
	return a.effects
}

// Apply adds a power-sourced effect. Heals restore HP immediately.
func (a *Actor) Apply(def *effect.Definition, duration, magnitude int, source effect.SourceType, power effect.PowerID) *effect.Instance {
	return a.effects.AddEffect(a.stats, def, duration, magnitude, source, power)
}

// ApplyTriggered adds an effect classified under a combat trigger.
func (a *Actor) ApplyTriggered(def *effect.Definition, duration, magnitude int, source effect.SourceType, power effect.PowerID, tr effect.Trigger) *effect.Instance {
	return a.effects.AddTriggeredEffect(a.stats, def, duration, magnitude, source, power, tr)
}

// Equip adds an item-granted effect.
func (a *Actor) Equip(def *effect.Definition, duration, magnitude int) *effect.Instance {
	return a.effects.AddItemEffect(a.stats, def, duration, magnitude)
}

// TakeDamage routes damage through shields first and returns the HP lost.
func (a *Actor) TakeDamage(amount int) int {
	if amount <= 0 || a.stats.IsDead() {
		return 0
	}
	a.effects.SetTriggered(effect.TriggerHit)

	rest := a.effects.DamageShields(amount)
	before := a.stats.CurrentHP()
	a.stats.SetCurrentHP(before - rest)
	a.afterHPLoss()
	return before - a.stats.CurrentHP()
}

// Tick advances the actor's effects by one tick and applies the result:
// stat bonuses when the manager flags a refresh, then periodic damage and
// regeneration pulses.
func (a *Actor) Tick() {
	a.effects.Logic()
	st := a.effects.State()

	if a.effects.ConsumeRefresh() {
		a.stats.ApplyBonuses(st.Bonus, st.BonusResist, st.BonusPrimary)
		slog.Debug("stat bonuses refreshed", "actor", a.name, "max_hp", a.stats.MaxHP())
		a.updateHalfDeath()
	}

	if a.stats.IsDead() {
		return
	}

	maxHP, maxMP := a.stats.MaxHP(), a.stats.MaxMP()

	if dmg := st.Damage + st.DamagePercent*maxHP/100; dmg > 0 {
		rest := a.effects.DamageShields(dmg)
		a.stats.SetCurrentHP(a.stats.CurrentHP() - rest)
		a.afterHPLoss()
		if a.stats.IsDead() {
			return
		}
	}
	if hp := st.HPOT + st.HPOTPercent*maxHP/100; hp > 0 {
		a.stats.RestoreHP(hp)
	}
	if mp := st.MPOT + st.MPOTPercent*maxMP/100; mp > 0 {
		a.stats.RestoreMP(mp)
	}
	a.updateHalfDeath()
}

// updateHalfDeath tracks the half-HP threshold and raises TriggerHalfDeath
// when HP falls to half of max, by damage or by a max HP change.
func (a *Actor) updateHalfDeath() {
	half := a.stats.CurrentHP()*2 <= a.stats.MaxHP()
	if half && !a.halfDead {
		a.effects.SetTriggered(effect.TriggerHalfDeath)
	}
	a.halfDead = half
}

// afterHPLoss raises half-death and death triggers and consumes a revive.
func (a *Actor) afterHPLoss() {
	a.updateHalfDeath()
	if a.stats.CurrentHP() > 0 {
		return
	}
	maxHP := a.stats.MaxHP()

	a.effects.SetTriggered(effect.TriggerDeath)
	if a.effects.State().Revive {
		a.effects.RemoveEffectType(effect.TypeRevive)
		a.stats.SetCurrentHP(maxHP)
		a.halfDead = false
		slog.Info("actor revived", "actor", a.name, "hp", maxHP)
		return
	}
	slog.Info("actor died", "actor", a.name)
}

// Close releases the actor's effects.
func (a *Actor) Close() {
	a.effects.Close()
}
