package model

import "testing"

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout()

	if got := l.StatIndex("accuracy"); got != 6 {
		t.Errorf("StatIndex(accuracy) = %d, want 6", got)
	}
	if got := l.StatIndex("nope"); got != -1 {
		t.Errorf("StatIndex(nope) = %d, want -1", got)
	}
	if got := l.DamageSlots(); got != 6 {
		t.Errorf("DamageSlots() = %d, want 6", got)
	}
	for _, name := range l.EffectResists {
		if l.StatIndex(name) < 0 {
			t.Errorf("effect resist %q missing from Stats", name)
		}
	}
}

func TestNewStats(t *testing.T) {
	s := NewStats(DefaultLayout(), map[string]int{"hp": 80, "mp": 20, "accuracy": 7, "unknown": 99})

	if s.CurrentHP() != 80 || s.CurrentMP() != 20 {
		t.Errorf("pools = %d/%d, want 80/20", s.CurrentHP(), s.CurrentMP())
	}
	if got := s.GetNamed("accuracy"); got != 7 {
		t.Errorf("accuracy = %d, want 7", got)
	}
	if got := s.Get(-1); got != 0 {
		t.Errorf("Get(-1) = %d, want 0", got)
	}
	if got := NewStats(DefaultLayout(), nil).MaxHP(); got != 1 {
		t.Errorf("MaxHP() without hp stat = %d, want 1", got)
	}
}

func TestStats_HPClamp(t *testing.T) {
	tests := []struct {
		name    string
		set     int
		restore int
		want    int
	}{
		{name: "restore within bounds", set: 50, restore: 20, want: 70},
		{name: "restore clamps at max", set: 90, restore: 50, want: 100},
		{name: "negative restore clamps at zero", set: 10, restore: -30, want: 0},
		{name: "set above max", set: 500, restore: 0, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStats(DefaultLayout(), map[string]int{"hp": 100})
			s.SetCurrentHP(tt.set)
			s.RestoreHP(tt.restore)
			if s.CurrentHP() != tt.want {
				t.Errorf("CurrentHP() = %d, want %d", s.CurrentHP(), tt.want)
			}
			if s.IsDead() != (tt.want == 0) {
				t.Errorf("IsDead() = %v with hp %d", s.IsDead(), tt.want)
			}
		})
	}
}

func TestStats_ApplyBonuses(t *testing.T) {
	l := DefaultLayout()
	s := NewStats(l, map[string]int{"hp": 100, "mp": 30})

	bonus := make([]int, len(l.Stats)+l.DamageSlots())
	bonus[l.StatIndex("hp")] = 50
	bonus[l.StatIndex("mp")] = -10
	bonus[len(l.Stats)+1] = 4
	s.ApplyBonuses(bonus, []int{25}, []int{0, 3})

	if s.MaxHP() != 150 {
		t.Errorf("MaxHP() = %d, want 150", s.MaxHP())
	}
	if s.CurrentMP() != 20 {
		t.Errorf("CurrentMP() = %d, want clamp to 20", s.CurrentMP())
	}
	if s.Get(len(l.Stats)+1) != 4 {
		t.Errorf("melee max bonus = %d, want 4", s.Get(len(l.Stats)+1))
	}
	if s.Resist(0) != 25 || s.Resist(1) != 0 || s.Resist(99) != 0 {
		t.Errorf("resists = %d/%d/%d", s.Resist(0), s.Resist(1), s.Resist(99))
	}
	if s.Primary(1) != 3 {
		t.Errorf("Primary(1) = %d, want 3", s.Primary(1))
	}

	s.ApplyBonuses(nil, nil, nil)
	if s.MaxHP() != 100 || s.Primary(1) != 0 {
		t.Errorf("after reset MaxHP() = %d, Primary(1) = %d", s.MaxHP(), s.Primary(1))
	}
}
