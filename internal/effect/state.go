package effect

// State is the aggregate of all active instances on one entity.
// It is derived by the Manager and must not be mutated by callers.
type State struct {
	Damage        int
	DamagePercent int
	HPOT          int
	HPOTPercent   int
	MPOT          int
	MPOTPercent   int

	Speed          float64 // movement multiplier, 1.0 is neutral
	KnockbackSpeed float64 // tiles per tick

	Stun          bool
	Revive        bool
	Convert       bool
	Fear          bool
	DeathSentence bool

	// Bonus is indexed by Taxonomy.BonusIndex (stats then damage slots).
	Bonus        []int
	BonusResist  []int
	BonusPrimary []int
}

func newState(tax *Taxonomy) State {
	return State{
		Speed:        1,
		Bonus:        make([]int, tax.BonusLen()),
		BonusResist:  make([]int, len(tax.Layout().Elements)),
		BonusPrimary: make([]int, len(tax.Layout().Primary)),
	}
}

// reset zeroes the state in place, keeping vector capacity.
func (s *State) reset() {
	bonus, resist, primary := s.Bonus, s.BonusResist, s.BonusPrimary
	clear(bonus)
	clear(resist)
	clear(primary)
	*s = State{
		Speed:        1,
		Bonus:        bonus,
		BonusResist:  resist,
		BonusPrimary: primary,
	}
}

// Clone returns a copy that does not share vectors with s.
func (s State) Clone() State {
	c := s
	c.Bonus = append([]int(nil), s.Bonus...)
	c.BonusResist = append([]int(nil), s.BonusResist...)
	c.BonusPrimary = append([]int(nil), s.BonusPrimary...)
	return c
}

// Triggers holds one-shot flags raised by combat events. External systems
// set and consume them; aggregate recomputation leaves them alone.
type Triggers struct {
	Others     bool
	Block      bool
	Hit        bool
	HalfDeath  bool
	JoinCombat bool
	Death      bool
}

func (t *Triggers) flag(tr Trigger) *bool {
	switch tr {
	case TriggerBlock:
		return &t.Block
	case TriggerHit:
		return &t.Hit
	case TriggerHalfDeath:
		return &t.HalfDeath
	case TriggerJoinCombat:
		return &t.JoinCombat
	case TriggerDeath:
		return &t.Death
	}
	return &t.Others
}
