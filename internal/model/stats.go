package model

// Stats is the stat block of one combat entity.
// Base values come from the entity template; bonus vectors are filled in by
// whoever owns the status effects (see entity.Actor) when a refresh is due.
type Stats struct {
	layout StatLayout

	currentHP int
	currentMP int

	base    []int
	bonus   []int
	resist  []int
	primary []int
}

// NewStats creates a stat block for the layout with full HP/MP pools.
// base is indexed like layout.Stats; missing entries default to 0.
func NewStats(layout StatLayout, base map[string]int) *Stats {
	s := &Stats{
		layout:  layout,
		base:    make([]int, len(layout.Stats)+layout.DamageSlots()),
		bonus:   make([]int, len(layout.Stats)+layout.DamageSlots()),
		resist:  make([]int, len(layout.Elements)),
		primary: make([]int, len(layout.Primary)),
	}
	for name, v := range base {
		if i := layout.StatIndex(name); i >= 0 {
			s.base[i] = v
		}
	}
	s.currentHP = s.MaxHP()
	s.currentMP = s.MaxMP()
	return s
}

// Layout returns the layout the stat block was built for.
func (s *Stats) Layout() StatLayout {
	return s.layout
}

// Get returns base plus bonus for a stat or damage slot index.
func (s *Stats) Get(index int) int {
	if index < 0 || index >= len(s.base) {
		return 0
	}
	return s.base[index] + s.bonus[index]
}

// GetNamed returns base plus bonus for a named stat.
func (s *Stats) GetNamed(name string) int {
	return s.Get(s.layout.StatIndex(name))
}

// Resist returns the bonus resistance for an element index.
func (s *Stats) Resist(index int) int {
	if index < 0 || index >= len(s.resist) {
		return 0
	}
	return s.resist[index]
}

// Primary returns the bonus for a primary attribute index.
func (s *Stats) Primary(index int) int {
	if index < 0 || index >= len(s.primary) {
		return 0
	}
	return s.primary[index]
}

// ApplyBonuses replaces the bonus vectors. Slices shorter than the layout
// leave the remaining entries at zero.
func (s *Stats) ApplyBonuses(bonus, resist, primary []int) {
	clear(s.bonus)
	clear(s.resist)
	clear(s.primary)
	copy(s.bonus, bonus)
	copy(s.resist, resist)
	copy(s.primary, primary)

	// Shrinking max pools clamps current values
	s.SetCurrentHP(s.currentHP)
	s.SetCurrentMP(s.currentMP)
}

// MaxHP returns the maximum HP, never below 1.
func (s *Stats) MaxHP() int {
	return max(s.GetNamed("hp"), 1)
}

// MaxMP returns the maximum MP.
func (s *Stats) MaxMP() int {
	return max(s.GetNamed("mp"), 0)
}

// CurrentHP returns current HP.
func (s *Stats) CurrentHP() int {
	return s.currentHP
}

// CurrentMP returns current MP.
func (s *Stats) CurrentMP() int {
	return s.currentMP
}

// SetCurrentHP sets HP clamped to 0..MaxHP.
func (s *Stats) SetCurrentHP(hp int) {
	s.currentHP = min(max(hp, 0), s.MaxHP())
}

// SetCurrentMP sets MP clamped to 0..MaxMP.
func (s *Stats) SetCurrentMP(mp int) {
	s.currentMP = min(max(mp, 0), s.MaxMP())
}

// RestoreHP adds amount to current HP (clamped).
func (s *Stats) RestoreHP(amount int) {
	s.SetCurrentHP(s.currentHP + amount)
}

// RestoreMP adds amount to current MP (clamped).
func (s *Stats) RestoreMP(amount int) {
	s.SetCurrentMP(s.currentMP + amount)
}

// IsDead reports whether HP reached zero.
func (s *Stats) IsDead() bool {
	return s.currentHP <= 0
}
