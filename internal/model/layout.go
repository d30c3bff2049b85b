package model

// DamageType describes one damage channel with separate min/max stat names.
type DamageType struct {
	ID  string `yaml:"id"`
	Min string `yaml:"min"`
	Max string `yaml:"max"`
}

// Element describes one elemental resistance slot.
type Element struct {
	ID     string `yaml:"id"`
	Resist string `yaml:"resist"`
}

// StatLayout describes the shape of an entity's stat block as authored in
// game data. Effect types above the fixed kinds are addressed through it.
type StatLayout struct {
	Stats       []string     `yaml:"stats"`
	DamageTypes []DamageType `yaml:"damage_types"`
	Elements    []Element    `yaml:"elements"`
	Primary     []string     `yaml:"primary"`

	// EffectResists lists the stats that grant resistance to status effects
	// rather than to damage. Each entry must also appear in Stats.
	EffectResists []string `yaml:"effect_resists"`
}

// Effect-resistance stat names used by legacy immunity effects.
const (
	StatResistDamageOverTime = "resist_damage_over_time"
	StatResistSlow           = "resist_slow"
	StatResistStun           = "resist_stun"
	StatResistHPSteal        = "resist_hp_steal"
	StatResistMPSteal        = "resist_mp_steal"
	StatResistKnockback      = "resist_knockback"
	StatResistDamageReflect  = "resist_damage_reflect"
	StatResistStatDebuff     = "resist_stat_debuff"
)

// DefaultLayout returns the stat layout of the stock ruleset.
func DefaultLayout() StatLayout {
	effectResists := []string{
		StatResistDamageOverTime,
		StatResistSlow,
		StatResistStun,
		StatResistHPSteal,
		StatResistMPSteal,
		StatResistKnockback,
		StatResistDamageReflect,
		StatResistStatDebuff,
	}

	stats := []string{
		"hp", "hp_regen", "hp_percent",
		"mp", "mp_regen", "mp_percent",
		"accuracy", "avoidance",
		"absorb_min", "absorb_max",
		"crit", "poise",
		"xp_gain", "currency_find", "item_find",
		"stealth", "hp_steal", "mp_steal",
		"return_damage", "reflect_chance",
	}
	stats = append(stats, effectResists...)

	return StatLayout{
		Stats: stats,
		DamageTypes: []DamageType{
			{ID: "melee", Min: "dmg_melee_min", Max: "dmg_melee_max"},
			{ID: "ranged", Min: "dmg_ranged_min", Max: "dmg_ranged_max"},
			{ID: "ment", Min: "dmg_ment_min", Max: "dmg_ment_max"},
		},
		Elements: []Element{
			{ID: "fire", Resist: "fire_resist"},
			{ID: "ice", Resist: "ice_resist"},
			{ID: "lightning", Resist: "lightning_resist"},
			{ID: "shadow", Resist: "shadow_resist"},
			{ID: "light", Resist: "light_resist"},
		},
		Primary:       []string{"physical", "mental", "offense", "defense"},
		EffectResists: effectResists,
	}
}

// StatIndex returns the position of a named stat, or -1.
func (l *StatLayout) StatIndex(name string) int {
	for i, s := range l.Stats {
		if s == name {
			return i
		}
	}
	return -1
}

// DamageSlots returns the number of damage min/max slots (two per damage type).
func (l *StatLayout) DamageSlots() int {
	return len(l.DamageTypes) * 2
}
