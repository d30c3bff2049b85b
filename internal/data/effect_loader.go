package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/statfx/internal/effect"
)

// ErrNoDefinitions is returned when a definitions directory holds no files.
var ErrNoDefinitions = errors.New("no effect definition files")

// EffectTable holds the loaded effect definitions.
// Not safe for concurrent use: load and read it from the simulation goroutine.
type EffectTable struct {
	tax         *effect.Taxonomy
	defs        effect.Definitions
	fingerprint [blake2b.Size256]byte
}

// NewEffectTable creates an empty table.
func NewEffectTable(tax *effect.Taxonomy) *EffectTable {
	return &EffectTable{
		tax:  tax,
		defs: make(effect.Definitions),
	}
}

// Lookup returns the definition with the given id.
func (t *EffectTable) Lookup(id string) (*effect.Definition, error) {
	return t.defs.Lookup(id)
}

// Definitions returns the current definitions.
func (t *EffectTable) Definitions() effect.Definitions {
	return t.defs
}

// Len returns the number of loaded definitions.
func (t *EffectTable) Len() int {
	return len(t.defs)
}

// Replace swaps in definitions loaded elsewhere (e.g. the database).
// Later entries win on duplicate ids.
func (t *EffectTable) Replace(defs []*effect.Definition) {
	t.defs = merge(defs)
	t.fingerprint = [blake2b.Size256]byte{}
}

// LoadDir loads every *.yaml / *.yml file in dir. Files are parsed in
// parallel and merged in name order; later files override earlier ones.
// Returns false without touching the table when the files are unchanged
// since the previous load.
func (t *EffectTable) LoadDir(ctx context.Context, dir string) (bool, error) {
	paths, err := definitionFiles(dir)
	if err != nil {
		return false, err
	}

	raw := make([][]byte, len(paths))
	h, _ := blake2b.New256(nil)
	for i, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return false, fmt.Errorf("reading %s: %w", p, err)
		}
		raw[i] = b
		h.Write([]byte(filepath.Base(p)))
		h.Write(b)
	}

	var sum [blake2b.Size256]byte
	copy(sum[:], h.Sum(nil))
	if sum == t.fingerprint && len(t.defs) > 0 {
		slog.Debug("effect definitions unchanged", "dir", dir)
		return false, nil
	}

	parsed := make([][]*effect.Definition, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			defs, err := ParseEffects(t.tax, raw[i], filepath.Base(paths[i]))
			if err != nil {
				return err
			}
			parsed[i] = defs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, fmt.Errorf("loading effect definitions from %s: %w", dir, err)
	}

	t.defs = merge(slices.Concat(parsed...))
	t.fingerprint = sum

	slog.Info("loaded effect definitions", "count", len(t.defs), "files", len(paths), "dir", dir)
	return true, nil
}

func definitionFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading definitions dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !isDefinitionFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoDefinitions)
	}
	slices.Sort(paths)
	return paths, nil
}

func isDefinitionFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func merge(defs []*effect.Definition) effect.Definitions {
	out := make(effect.Definitions, len(defs))
	for _, d := range defs {
		if _, dup := out[d.ID]; dup {
			slog.Warn("duplicate effect definition, later entry wins", "effect", d.ID)
		}
		out[d.ID] = d
	}
	return out
}
