package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDamageShields_FIFO(t *testing.T) {
	m, _ := newTestManager(1)
	shield := makeStackingDef("shield", TypeShield, 0)

	first := m.AddEffect(nil, shield, 100, 30, SourceHero, NoPower)
	second := m.AddEffect(nil, shield, 100, 20, SourceHero, NoPower)
	require.Equal(t, 2, m.Count())

	assert.Equal(t, 0, m.DamageShields(40))
	require.Equal(t, 1, m.Count())
	assert.Same(t, second, m.Effects()[0])
	assert.Equal(t, 0, first.Magnitude)
	assert.Equal(t, 10, second.Magnitude)

	assert.Equal(t, 5, m.DamageShields(15))
	assert.Equal(t, 0, m.Count())
}

func TestDamageShields_NoShields(t *testing.T) {
	m, _ := newTestManager(1)
	m.AddEffect(nil, makeDef("haste", TypeSpeed), 10, 150, SourceHero, NoPower)

	assert.Equal(t, 25, m.DamageShields(25))
	assert.Equal(t, 0, m.DamageShields(0))
	assert.Equal(t, 1, m.Count())
}

func TestRemoveEffectID_Count(t *testing.T) {
	m, _ := newTestManager(1)
	slow := makeStackingDef("slow", TypeSpeed, 0)

	older := m.AddEffect(nil, slow, 10, 50, SourceEnemy, NoPower)
	m.AddEffect(nil, slow, 10, 50, SourceEnemy, NoPower)

	assert.Equal(t, 1, m.RemoveEffectID([]Removal{{ID: "slow", Count: 1}}))
	require.Equal(t, 1, m.Count())
	assert.Same(t, older, m.Effects()[0], "newest instance goes first")

	assert.Equal(t, 0, m.RemoveEffectID([]Removal{{ID: "missing", Count: 3}}))
}

func TestRemoveEffectID_All(t *testing.T) {
	m, _ := newTestManager(1)
	slow := makeStackingDef("slow", TypeSpeed, 0)
	for range 3 {
		m.AddEffect(nil, slow, 10, 50, SourceEnemy, NoPower)
	}
	m.AddEffect(nil, makeDef("stun", TypeStun), 10, 0, SourceEnemy, NoPower)

	assert.Equal(t, 4, m.RemoveEffectID([]Removal{{ID: "slow", Count: 0}, {ID: "stun", Count: -1}}))
	assert.Equal(t, 0, m.Count())
}

func TestGroupStack(t *testing.T) {
	m, _ := newTestManager(1)
	rage := makeStackingDef("rage", TypeDamagePercent, 5)
	rage.GroupStack = true

	for _, d := range []int{10, 30, 20} {
		m.AddEffect(nil, rage, d, 4, SourceHero, NoPower)
	}
	m.AddEffect(nil, makeDef("haste", TypeSpeed), 10, 150, SourceHero, NoPower)

	rows := m.Display()
	require.Len(t, rows, 2)
	assert.Equal(t, "rage", rows[0].ID)
	assert.Equal(t, 3, rows[0].Stacks)
	assert.Equal(t, 12, rows[0].Magnitude)
	assert.Equal(t, 30, rows[0].Remaining)
	assert.Equal(t, 1, rows[1].Stacks)

	// One unit: removing one removes the group
	assert.Equal(t, 3, m.RemoveEffectID([]Removal{{ID: "rage", Count: 1}}))
	assert.Equal(t, 1, m.Count())
}

func TestRemoveEffectPassive(t *testing.T) {
	m, _ := newTestManager(1)
	aura := makeStackingDef("aura", TypeSpeed, 0)

	m.AddEffect(nil, aura, 0, 110, SourceHero, 7)
	m.AddEffect(nil, makeDef("thorns", TypeResistAll), 0, 5, SourceHero, 7)
	m.AddEffect(nil, aura, 0, 110, SourceHero, 8)
	m.AddEffect(nil, makeDef("stun", TypeStun), 5, 0, SourceEnemy, NoPower)

	assert.Equal(t, 0, m.RemoveEffectPassive(NoPower))
	assert.Equal(t, 0, m.RemoveEffectPassive(99))
	assert.Equal(t, 2, m.RemoveEffectPassive(7))
	require.Equal(t, 2, m.Count())
	assert.Equal(t, PowerID(8), m.Effects()[0].PassiveID)
}

func TestClearNegativeEffects(t *testing.T) {
	m, _ := newTestManager(1)
	accuracy := layoutType(t, m, "accuracy")
	resistStun := layoutType(t, m, "resist_stun")

	m.AddEffect(nil, makeDef("stun", TypeStun), 10, 0, SourceEnemy, NoPower)
	m.AddEffect(nil, makeDef("haste", TypeSpeed), 10, 150, SourceHero, NoPower)
	m.AddEffect(nil, makeDef("slow", TypeSpeed), 10, 50, SourceEnemy, NoPower)
	m.AddItemEffect(nil, makeDef("heavy_boots", TypeSpeed), 0, 90)
	m.AddEffect(nil, makeDef("steadfast", resistStun), 10, 20, SourceHero, NoPower)
	m.AddEffect(nil, makeDef("blind", accuracy), 10, -5, SourceEnemy, NoPower)

	t.Run("filtered by type", func(t *testing.T) {
		assert.Equal(t, 1, m.ClearNegativeEffects(TypeStun))
		assert.False(t, m.HasEffect("stun", 1))
		assert.True(t, m.HasEffect("slow", 1))
	})

	t.Run("all negative types", func(t *testing.T) {
		assert.Equal(t, 2, m.ClearNegativeEffects(TypeNone))
		ids := []string{}
		for _, e := range m.Effects() {
			ids = append(ids, e.ID)
		}
		assert.Equal(t, []string{"haste", "heavy_boots", "steadfast"}, ids)
	})

	t.Run("item debuffs still count", func(t *testing.T) {
		assert.True(t, m.IsDebuffed())
		m.ClearItemEffects()
		assert.False(t, m.IsDebuffed())
	})
}

func TestClearTriggerEffects(t *testing.T) {
	m, _ := newTestManager(1)
	m.AddTriggeredEffect(nil, makeDef("riposte", TypeDamagePercent), 10, 20, SourceHero, 3, TriggerBlock)
	m.AddTriggeredEffect(nil, makeDef("bloodlust", TypeSpeed), 10, 120, SourceHero, 4, TriggerHit)
	m.AddEffect(nil, makeDef("haste", TypeSpeed), 10, 150, SourceHero, NoPower)
	m.AddItemEffect(nil, makeDef("amulet", TypeRevive), 0, 1)

	assert.Equal(t, 0, m.ClearTriggerEffects(TriggerNone))
	assert.Equal(t, 1, m.ClearTriggerEffects(TriggerBlock))
	assert.Equal(t, 0, m.ClearTriggerEffects(TriggerBlock))
	assert.Equal(t, 3, m.Count())
	assert.True(t, m.HasEffect("bloodlust", 1))
}

func TestClearEffects(t *testing.T) {
	m, _ := newTestManager(1)
	m.AddEffect(nil, makeDef("haste", TypeSpeed), 10, 150, SourceHero, NoPower)
	m.AddItemEffect(nil, makeDef("amulet", TypeRevive), 0, 1)

	assert.Equal(t, 2, m.ClearEffects())
	assert.Equal(t, 0, m.ClearEffects())
	assert.False(t, m.State().Revive)
}

func TestCurrentColorAndAlpha(t *testing.T) {
	m, _ := newTestManager(1)
	red := makeDef("burning", TypeDamage)
	red.ColorMod = Color{R: 255, A: 255}
	blue := makeDef("frozen", TypeSpeed)
	blue.ColorMod = Color{B: 255, A: 255}
	blue.AlphaMod = 128
	plain := makeDef("haste", TypeSpeed)
	plain.ColorMod = ColorDefault

	assert.Equal(t, ColorDefault, m.CurrentColor(ColorDefault))
	assert.Equal(t, AlphaDefault, m.CurrentAlpha(AlphaDefault))

	m.AddEffect(nil, red, 10, 1, SourceEnemy, NoPower)
	m.AddEffect(nil, blue, 10, 50, SourceEnemy, NoPower)
	m.AddEffect(nil, plain, 10, 150, SourceHero, NoPower)

	assert.Equal(t, blue.ColorMod, m.CurrentColor(ColorDefault), "latest tinted instance wins")
	assert.Equal(t, uint8(128), m.CurrentAlpha(AlphaDefault))

	m.RemoveEffectID([]Removal{{ID: "frozen"}})
	assert.Equal(t, red.ColorMod, m.CurrentColor(ColorDefault))
	assert.Equal(t, AlphaDefault, m.CurrentAlpha(AlphaDefault))
}

func TestHasEffect(t *testing.T) {
	m, _ := newTestManager(1)
	def := makeStackingDef("focus", TypeNone, 0)
	m.AddEffect(nil, def, 10, 1, SourceHero, NoPower)
	m.AddEffect(nil, def, 10, 1, SourceHero, NoPower)

	assert.True(t, m.HasEffect("focus", 1))
	assert.True(t, m.HasEffect("focus", 2))
	assert.False(t, m.HasEffect("focus", 3))
	assert.False(t, m.HasEffect("focus", 0))
	assert.False(t, m.HasEffect("other", 1))
}

func TestAttackSpeed(t *testing.T) {
	m, _ := newTestManager(1)
	assert.Equal(t, 1.0, m.AttackSpeed("swing"))

	frenzy := makeDef("frenzy", TypeAttackSpeed)
	aim := makeDef("aim", TypeAttackSpeed)
	aim.AttackSpeedAnim = "shoot"

	m.AddEffect(nil, frenzy, 10, 150, SourceHero, NoPower)
	m.AddEffect(nil, aim, 10, 200, SourceHero, NoPower)

	assert.InDelta(t, 1.5, m.AttackSpeed("swing"), 1e-9)
	assert.InDelta(t, 3.0, m.AttackSpeed("shoot"), 1e-9)
}

func TestDamageSourceType(t *testing.T) {
	m, _ := newTestManager(1)
	dot := makeStackingDef("dot", TypeDamage, 0)

	assert.Equal(t, SourceNeutral, m.DamageSourceType(TypeDamage))
	assert.Equal(t, SourceNone, m.DamageSourceType(TypeStun))

	m.AddEffect(nil, dot, 10, 1, SourceEnemy, NoPower)
	assert.Equal(t, SourceEnemy, m.DamageSourceType(TypeDamage))

	m.AddEffect(nil, dot, 10, 1, SourceAlly, NoPower)
	m.AddEffect(nil, dot, 10, 1, SourceEnemy, NoPower)
	assert.Equal(t, SourceAlly, m.DamageSourceType(TypeDamage))

	m.AddItemEffect(nil, dot, 0, 1)
	assert.Equal(t, SourceHero, m.DamageSourceType(TypeDamage))
	assert.Equal(t, SourceNeutral, m.DamageSourceType(TypeHPOT))
}
