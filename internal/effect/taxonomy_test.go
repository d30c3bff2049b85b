package effect

import (
	"testing"

	"github.com/udisondev/statfx/internal/model"
)

func TestParse_FixedTypes(t *testing.T) {
	tax := NewTaxonomy(model.DefaultLayout())

	for ty := TypeNone; ty < TypeCount; ty++ {
		got, immunity := tax.Parse(ty.String())
		if got != ty {
			t.Errorf("Parse(%q) = %v, want %v", ty.String(), got, ty)
		}
		if immunity {
			t.Errorf("Parse(%q) flagged as immunity", ty.String())
		}
	}
}

func TestParse_LayoutTypes(t *testing.T) {
	tax := NewTaxonomy(model.DefaultLayout())

	tests := []struct {
		name  string
		check func(Type) bool
		index func(Type) int
		want  int
	}{
		{name: "accuracy", check: tax.IsStat, index: tax.StatFromType, want: 6},
		{name: "dmg_melee_min", check: tax.IsDmgMin, index: tax.DmgFromType, want: 0},
		{name: "dmg_ranged_max", check: tax.IsDmgMax, index: tax.DmgFromType, want: 3},
		{name: "ice_resist", check: tax.IsResist, index: tax.ResistFromType, want: 1},
		{name: "defense", check: tax.IsPrimary, index: tax.PrimaryFromType, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ty, immunity := tax.Parse(tt.name)
			if immunity {
				t.Fatal("unexpected immunity flag")
			}
			if !tt.check(ty) {
				t.Fatalf("%q (%d) not classified", tt.name, ty)
			}
			if got := tt.index(ty); got != tt.want {
				t.Errorf("index = %d, want %d", got, tt.want)
			}
			if got := tax.Name(ty); got != tt.name {
				t.Errorf("Name = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	tax := NewTaxonomy(model.DefaultLayout())

	ty, immunity := tax.Parse("no_such_effect")
	if ty != TypeNone || immunity {
		t.Errorf("Parse(unknown) = (%v, %v), want (none, false)", ty, immunity)
	}
}

func TestParse_LegacyImmunity(t *testing.T) {
	tax := NewTaxonomy(model.DefaultLayout())

	ty, immunity := tax.Parse("immunity")
	if ty != TypeResistAll || !immunity {
		t.Errorf("Parse(immunity) = (%v, %v)", ty, immunity)
	}

	ty, immunity = tax.Parse("immunity_stun")
	if !immunity {
		t.Fatal("immunity_stun should be flagged")
	}
	if !tax.IsEffectResist(ty) {
		t.Fatal("immunity_stun should map to an effect resistance")
	}
	if got := tax.Name(ty); got != model.StatResistStun {
		t.Errorf("immunity_stun resolved to %q", got)
	}

	if !IsImmunityTypeString("immunity_slow") || IsImmunityTypeString("slow") {
		t.Error("IsImmunityTypeString misclassifies")
	}
}

func TestParse_LegacyImmunityMissingStat(t *testing.T) {
	layout := model.DefaultLayout()
	layout.Stats = []string{"hp", "mp"}
	layout.EffectResists = nil
	tax := NewTaxonomy(layout)

	ty, immunity := tax.Parse("immunity_knockback")
	if ty != TypeNone || !immunity {
		t.Errorf("Parse = (%v, %v), want (none, true)", ty, immunity)
	}
}

func TestParse_FixedNamesWin(t *testing.T) {
	layout := model.DefaultLayout()
	layout.Stats = append(layout.Stats, "speed", "accuracy")
	layout.Primary = append(layout.Primary, "stun")
	tax := NewTaxonomy(layout)

	for _, ty := range []Type{TypeSpeed, TypeStun} {
		got, _ := tax.Parse(ty.String())
		if got != ty {
			t.Errorf("Parse(%q) = %v, want fixed %v", ty.String(), got, ty)
		}
		if tax.IsStat(got) || tax.IsPrimary(got) {
			t.Errorf("Parse(%q) resolved into the layout range", ty.String())
		}
	}

	accuracy, _ := tax.Parse("accuracy")
	if tax.StatFromType(accuracy) != 6 {
		t.Errorf("duplicate stat name took over accuracy: index %d", tax.StatFromType(accuracy))
	}
}

func TestValidateLayout(t *testing.T) {
	if err := ValidateLayout(model.DefaultLayout()); err != nil {
		t.Fatalf("default layout rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(l *model.StatLayout)
	}{
		{name: "stat named like fixed type", mutate: func(l *model.StatLayout) { l.Stats = append(l.Stats, "speed") }},
		{name: "resist named like fixed type", mutate: func(l *model.StatLayout) { l.Elements[0].Resist = "heal" }},
		{name: "legacy immunity name", mutate: func(l *model.StatLayout) { l.Primary = append(l.Primary, "immunity_stun") }},
		{name: "duplicate name", mutate: func(l *model.StatLayout) { l.Primary = append(l.Primary, "hp") }},
		{name: "empty name", mutate: func(l *model.StatLayout) { l.DamageTypes[0].Max = "" }},
		{name: "effect resist missing from stats", mutate: func(l *model.StatLayout) { l.Stats = l.Stats[:len(l.Stats)-1] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := model.DefaultLayout()
			tt.mutate(&layout)
			if err := ValidateLayout(layout); err == nil {
				t.Error("ValidateLayout accepted an invalid layout")
			}
		})
	}
}

func TestClassification_Exclusive(t *testing.T) {
	tax := NewTaxonomy(model.DefaultLayout())

	for ty := TypeNone; tax.IsValid(ty); ty++ {
		n := 0
		for _, f := range []func(Type) bool{tax.IsStat, tax.IsDmgMin, tax.IsDmgMax, tax.IsResist, tax.IsPrimary} {
			if f(ty) {
				n++
			}
		}
		if ty < TypeCount && n != 0 {
			t.Errorf("fixed type %v classified %d times", ty, n)
		}
		if ty >= TypeCount && n != 1 {
			t.Errorf("layout type %d classified %d times", ty, n)
		}

		if back, _ := tax.Parse(tax.Name(ty)); back != ty {
			t.Errorf("Parse(Name(%d)) = %d", ty, back)
		}
	}
}

func TestEffectResistStats(t *testing.T) {
	layout := model.DefaultLayout()
	tax := NewTaxonomy(layout)

	got := tax.EffectResistStats()
	if len(got) != len(layout.EffectResists) {
		t.Fatalf("got %d effect resist stats, want %d", len(got), len(layout.EffectResists))
	}
	for i, idx := range got {
		if layout.Stats[idx] != layout.EffectResists[i] {
			t.Errorf("stat %d = %q, want %q", idx, layout.Stats[idx], layout.EffectResists[i])
		}
	}
}

func TestParseSourceAndTrigger(t *testing.T) {
	for _, s := range []SourceType{SourceHero, SourceNeutral, SourceAlly, SourceEnemy, SourceItem} {
		if got := ParseSource(s.String()); got != s {
			t.Errorf("ParseSource(%q) = %v", s.String(), got)
		}
	}
	if got := ParseSource("bystander"); got != SourceNone {
		t.Errorf("ParseSource(bystander) = %v, want none", got)
	}

	for _, tr := range []Trigger{TriggerBlock, TriggerHit, TriggerHalfDeath, TriggerJoinCombat, TriggerDeath} {
		if got := ParseTrigger(tr.String()); got != tr {
			t.Errorf("ParseTrigger(%q) = %v", tr.String(), got)
		}
	}
	if got := ParseTrigger("on_half_dead"); got != TriggerHalfDeath {
		t.Errorf("ParseTrigger(on_half_dead) = %v", got)
	}
}
