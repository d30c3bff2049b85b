package effect

//go:generate mockgen -destination=mock/mock_resolver.go -package=mockeffect -source=instance.go

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/udisondev/statfx/internal/anim"
)

// AnimationResolver looks up already-loaded animation assets by name.
// Every successful Resolve hands out a new handle owned by the caller.
type AnimationResolver interface {
	Resolve(name string) (*anim.Animation, error)
}

// Instance is a live occurrence of a Definition on one entity.
// Instances are owned by a Manager; callers must treat them as read-only.
type Instance struct {
	// Handle is unique per instance and survives refreshes.
	Handle uuid.UUID

	ID           string
	Name         string
	Icon         int
	Timer        Timer
	Type         Type
	Magnitude    int
	MagnitudeMax int

	AnimationName string

	Item        bool
	Trigger     Trigger
	RenderAbove bool
	PassiveID   PowerID
	SourceType  SourceType
	GroupStack  bool
	ColorMod    Color
	AlphaMod    uint8

	AttackSpeedAnim string

	animation *anim.Animation
	resolver  AnimationResolver

	// pulse is set by Logic when a periodic type is due this tick.
	pulse bool
}

// NewInstance creates an instance of def. The instance does not own an
// animation until LoadAnimation is called.
func NewInstance(def *Definition, duration, magnitude int, source SourceType, item bool, power PowerID, resolver AnimationResolver) *Instance {
	if def.ImmunityType {
		magnitude = 100
	}
	return &Instance{
		Handle:          uuid.New(),
		ID:              def.ID,
		Name:            def.Name,
		Icon:            def.Icon,
		Timer:           NewTimer(duration),
		Type:            def.Type,
		Magnitude:       magnitude,
		MagnitudeMax:    magnitude,
		AnimationName:   def.Animation,
		Item:            item,
		RenderAbove:     def.RenderAbove,
		PassiveID:       power,
		SourceType:      source,
		GroupStack:      def.GroupStack,
		ColorMod:        def.ColorMod,
		AlphaMod:        def.AlphaMod,
		AttackSpeedAnim: def.AttackSpeedAnim,
		resolver:        resolver,
	}
}

// Animation returns the owned animation, or nil.
func (e *Instance) Animation() *anim.Animation {
	return e.animation
}

// LoadAnimation resolves name and takes ownership of the result, releasing
// any animation held before. Resolution failures leave the instance without
// a visual.
func (e *Instance) LoadAnimation(name string) {
	e.UnloadAnimation()
	e.AnimationName = name
	if name == "" || e.resolver == nil {
		return
	}

	a, err := e.resolver.Resolve(name)
	if err != nil {
		slog.Debug("effect animation unavailable", "effect", e.ID, "animation", name, "err", err)
		return
	}
	e.animation = a
}

// UnloadAnimation releases the owned animation, if any.
func (e *Instance) UnloadAnimation() {
	if e.animation == nil {
		return
	}
	e.animation.Release()
	e.animation = nil
}

// Clone returns a deep copy. The copy reloads its own animation by name
// and gets a new Handle.
func (e *Instance) Clone() *Instance {
	c := *e
	c.Handle = uuid.New()
	c.animation = nil
	if e.animation != nil {
		c.LoadAnimation(e.AnimationName)
	}
	return &c
}

func (e *Instance) isShield() bool {
	return e.Type == TypeShield
}
