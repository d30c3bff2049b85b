package anim

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrAnimationNotFound is returned by Resolve for unknown names.
var ErrAnimationNotFound = errors.New("animation not found")

// Spec describes an already-loaded animation asset.
type Spec struct {
	Frames        int  `yaml:"frames"`
	TicksPerFrame int  `yaml:"ticks_per_frame"`
	Loop          bool `yaml:"loop"`
}

// Library stores animation specs by name and hands out owned handles.
// Not safe for concurrent use; it lives on the simulation goroutine.
type Library struct {
	specs map[string]Spec
	live  int
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{specs: make(map[string]Spec)}
}

// Register adds or replaces an animation spec.
func (l *Library) Register(name string, spec Spec) {
	if l == nil || name == "" {
		return
	}
	if spec.TicksPerFrame <= 0 {
		spec.TicksPerFrame = 1
	}
	l.specs[name] = spec
}

// Len returns the number of registered specs.
func (l *Library) Len() int {
	return len(l.specs)
}

// Resolve returns a fresh handle for name. The caller owns the handle and
// must Release it.
func (l *Library) Resolve(name string) (*Animation, error) {
	if l == nil {
		return nil, fmt.Errorf("resolving %q: %w", name, ErrAnimationNotFound)
	}
	spec, ok := l.specs[name]
	if !ok {
		return nil, fmt.Errorf("resolving %q: %w", name, ErrAnimationNotFound)
	}
	l.live++
	return &Animation{
		name:          name,
		frames:        spec.Frames,
		ticksPerFrame: spec.TicksPerFrame,
		loop:          spec.Loop,
		lib:           l,
	}, nil
}

// Live returns how many resolved handles have not been released yet.
func (l *Library) Live() int {
	return l.live
}

type libraryFile struct {
	Animations map[string]Spec `yaml:"animations"`
}

// LoadLibrary reads animation specs from a YAML file.
// If the file doesn't exist, returns an empty library.
func LoadLibrary(path string) (*Library, error) {
	lib := NewLibrary()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("animation library not found, visuals disabled", "path", path)
			return lib, nil
		}
		return nil, fmt.Errorf("reading animations %s: %w", path, err)
	}

	var f libraryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing animations %s: %w", path, err)
	}
	for name, spec := range f.Animations {
		lib.Register(name, spec)
	}

	slog.Info("loaded animations", "count", lib.Len(), "path", path)
	return lib, nil
}
