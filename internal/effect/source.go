package effect

// PowerID identifies the power (ability) that applied an effect.
// The manager never dereferences it; it is only compared for bulk removal.
type PowerID uint32

// NoPower marks effects that were not applied by a power.
const NoPower PowerID = 0

// SourceType classifies who dealt the damage associated with an effect.
type SourceType int8

const (
	SourceNone SourceType = iota - 1
	SourceHero
	SourceNeutral
	SourceAlly
	SourceEnemy
	SourceItem // equipment; resolves as SourceHero for damage attribution
)

func (s SourceType) String() string {
	switch s {
	case SourceHero:
		return "hero"
	case SourceNeutral:
		return "neutral"
	case SourceAlly:
		return "ally"
	case SourceEnemy:
		return "enemy"
	case SourceItem:
		return "item"
	}
	return "none"
}

// ParseSource resolves a data source name; unknown names are SourceNone.
func ParseSource(s string) SourceType {
	switch s {
	case "hero":
		return SourceHero
	case "neutral":
		return SourceNeutral
	case "ally":
		return SourceAlly
	case "enemy":
		return SourceEnemy
	case "item":
		return SourceItem
	}
	return SourceNone
}

// Trigger is the game event that caused an effect to be applied.
type Trigger int8

const (
	TriggerNone Trigger = iota
	TriggerBlock
	TriggerHit
	TriggerHalfDeath
	TriggerJoinCombat
	TriggerDeath
)

func (t Trigger) String() string {
	switch t {
	case TriggerBlock:
		return "block"
	case TriggerHit:
		return "hit"
	case TriggerHalfDeath:
		return "half_death"
	case TriggerJoinCombat:
		return "join_combat"
	case TriggerDeath:
		return "death"
	}
	return "none"
}

// ParseTrigger resolves a data trigger name; unknown names are TriggerNone.
func ParseTrigger(s string) Trigger {
	switch s {
	case "block", "on_block":
		return TriggerBlock
	case "hit", "on_hit":
		return TriggerHit
	case "half_death", "on_half_dead":
		return TriggerHalfDeath
	case "join_combat", "on_join_combat":
		return TriggerJoinCombat
	case "death", "on_death":
		return TriggerDeath
	}
	return TriggerNone
}

// Color is an RGBA tint.
type Color struct {
	R, G, B, A uint8
}

var (
	// ColorDefault is the neutral tint: it never overrides anything.
	ColorDefault = Color{R: 255, G: 255, B: 255, A: 255}
	// ColorUnset marks a definition without a tint.
	ColorUnset = Color{}
)

// AlphaDefault is the neutral alpha.
const AlphaDefault uint8 = 255

// IsNeutral reports whether c leaves the entity's tint unchanged.
func (c Color) IsNeutral() bool {
	return c == ColorDefault || c == ColorUnset
}
