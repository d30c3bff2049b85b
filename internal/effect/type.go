package effect

import "strconv"

// Type identifies what an effect does.
// Values at or above TypeCount address stat, damage, resist and primary
// slots of a model.StatLayout; see Taxonomy.
type Type int

const (
	TypeNone Type = iota
	TypeDamage
	TypeDamagePercent
	TypeHPOT
	TypeHPOTPercent
	TypeMPOT
	TypeMPOTPercent
	TypeSpeed
	TypeAttackSpeed
	TypeResistAll
	TypeStun
	TypeRevive
	TypeConvert
	TypeFear
	TypeDeathSentence
	TypeShield
	TypeHeal
	TypeKnockback
	TypeCount // sentinel, first layout-dependent type
)

var typeNames = [TypeCount]string{
	TypeNone:          "none",
	TypeDamage:        "damage",
	TypeDamagePercent: "damage_percent",
	TypeHPOT:          "hpot",
	TypeHPOTPercent:   "hpot_percent",
	TypeMPOT:          "mpot",
	TypeMPOTPercent:   "mpot_percent",
	TypeSpeed:         "speed",
	TypeAttackSpeed:   "attack_speed",
	TypeResistAll:     "resist_all",
	TypeStun:          "stun",
	TypeRevive:        "revive",
	TypeConvert:       "convert",
	TypeFear:          "fear",
	TypeDeathSentence: "death_sentence",
	TypeShield:        "shield",
	TypeHeal:          "heal",
	TypeKnockback:     "knockback",
}

// String returns the data name of fixed types. Layout-dependent types are
// printed numerically; use Taxonomy.Name for their data names.
func (t Type) String() string {
	if t >= 0 && t < TypeCount {
		return typeNames[t]
	}
	return "type(" + strconv.Itoa(int(t)) + ")"
}

// IsPeriodic reports whether the type pulses once per second instead of
// contributing every tick.
func (t Type) IsPeriodic() bool {
	switch t {
	case TypeDamage, TypeDamagePercent, TypeHPOT, TypeHPOTPercent, TypeMPOT, TypeMPOTPercent:
		return true
	}
	return false
}
