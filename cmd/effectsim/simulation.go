package main

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/udisondev/statfx/internal/config"
	"github.com/udisondev/statfx/internal/data"
	"github.com/udisondev/statfx/internal/effect"
	"github.com/udisondev/statfx/internal/entity"
)

var errSimulationDone = errors.New("simulation finished")

// simulation replays scripted steps against one actor.
type simulation struct {
	actor *entity.Actor
	table *data.EffectTable
	tax   *effect.Taxonomy
	tps   int

	steps []config.Step
	next  int
	tick  int
}

func newSimulation(actor *entity.Actor, table *data.EffectTable, tax *effect.Taxonomy, tps int, steps []config.Step) *simulation {
	sorted := slices.Clone(steps)
	slices.SortStableFunc(sorted, func(a, b config.Step) int {
		return cmp.Compare(a.Tick, b.Tick)
	})
	return &simulation{
		actor: actor,
		table: table,
		tax:   tax,
		tps:   max(tps, 1),
		steps: sorted,
	}
}

// Run ticks the simulation until ctx is done or ticks have elapsed
// (ticks <= 0 runs until ctx is done). Pending reloads run between ticks.
func (s *simulation) Run(ctx context.Context, ticks int, interval time.Duration, reloadCh <-chan struct{}, reload func(context.Context) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.report()
			return nil
		case <-reloadCh:
			if err := reload(ctx); err != nil {
				slog.Warn("effect definitions reload failed, keeping previous set", "err", err)
			}
		case <-ticker.C:
			s.Step()
			if s.tick%s.tps == 0 {
				s.report()
			}
			if ticks > 0 && s.tick >= ticks {
				return nil
			}
		}
	}
}

// Step applies the steps scheduled for the current tick, then advances the
// actor by one tick.
func (s *simulation) Step() {
	for s.next < len(s.steps) && s.steps[s.next].Tick <= s.tick {
		s.apply(s.steps[s.next])
		s.next++
	}
	s.actor.Tick()
	s.tick++
}

func (s *simulation) apply(st config.Step) {
	fx := s.actor.Effects()
	log := slog.With("tick", s.tick, "action", st.Action)

	switch st.Action {
	case "add", "add_item", "trigger":
		def, err := s.table.Lookup(st.Effect)
		if err != nil {
			log.Warn("scripted step skipped", "err", err)
			return
		}
		var inst *effect.Instance
		switch st.Action {
		case "add":
			inst = s.actor.Apply(def, st.Duration, st.Magnitude, effect.ParseSource(st.Source), effect.PowerID(st.Power))
		case "add_item":
			inst = s.actor.Equip(def, st.Duration, st.Magnitude)
		default:
			inst = s.actor.ApplyTriggered(def, st.Duration, st.Magnitude, effect.ParseSource(st.Source), effect.PowerID(st.Power), effect.ParseTrigger(st.Trigger))
		}
		if inst == nil {
			log.Info("effect not applied", "effect", st.Effect)
			return
		}
		log.Info("effect applied", "effect", st.Effect, "handle", inst.Handle, "magnitude", inst.Magnitude)
	case "remove":
		n := fx.RemoveEffectID([]effect.Removal{{ID: st.Effect, Count: st.Count}})
		log.Info("effects removed", "effect", st.Effect, "removed", n)
	case "remove_type":
		ty, _ := s.tax.Parse(st.Type)
		log.Info("effects removed", "type", s.tax.Name(ty), "removed", fx.RemoveEffectType(ty))
	case "remove_passive":
		log.Info("effects removed", "power", st.Power, "removed", fx.RemoveEffectPassive(effect.PowerID(st.Power)))
	case "clear_negative":
		ty, _ := s.tax.Parse(st.Type)
		log.Info("effects removed", "type", s.tax.Name(ty), "removed", fx.ClearNegativeEffects(ty))
	case "clear_items":
		log.Info("effects removed", "removed", fx.ClearItemEffects())
	case "clear_trigger":
		tr := effect.ParseTrigger(st.Trigger)
		log.Info("effects removed", "trigger", tr, "removed", fx.ClearTriggerEffects(tr))
	case "clear":
		log.Info("effects removed", "removed", fx.ClearEffects())
	case "damage":
		log.Info("actor hit", "damage", st.Magnitude, "hp_lost", s.actor.TakeDamage(st.Magnitude))
	default:
		log.Warn("unknown scripted action")
	}
}

func (s *simulation) report() {
	fx := s.actor.Effects()
	stats := s.actor.Stats()
	state := fx.State()

	slog.Info("actor status",
		"tick", s.tick,
		"hp", stats.CurrentHP(),
		"max_hp", stats.MaxHP(),
		"mp", stats.CurrentMP(),
		"effects", fx.Count(),
		"speed", state.Speed,
		"stunned", state.Stun,
		"debuffed", fx.IsDebuffed(),
		"color", fx.CurrentColor(effect.ColorDefault),
		"alpha", fx.CurrentAlpha(effect.AlphaDefault),
		"dot_source", fx.DamageSourceType(effect.TypeDamage))

	for _, row := range fx.Display() {
		slog.Debug("status icon",
			"effect", row.ID,
			"name", row.Name,
			"stacks", row.Stacks,
			"magnitude", row.Magnitude,
			"remaining", row.Remaining,
			"permanent", row.Permanent)
	}
}
