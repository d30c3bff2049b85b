package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/statfx/internal/effect"
)

const definitionColumns = `id, type, name, icon, animation, can_stack, max_stacks, group_stack,
	render_above, color_r, color_g, color_b, color_a, alpha_mod, attack_speed_anim, immunity`

// DefinitionRepository manages the effect_definitions table.
type DefinitionRepository struct {
	db *pgxpool.Pool
}

// NewDefinitionRepository creates a new DefinitionRepository.
func NewDefinitionRepository(db *pgxpool.Pool) *DefinitionRepository {
	return &DefinitionRepository{db: db}
}

// LoadAll loads every stored definition ordered by id.
// Types are stored by data name and resolved against tax.
func (r *DefinitionRepository) LoadAll(ctx context.Context, tax *effect.Taxonomy) ([]*effect.Definition, error) {
	query := `SELECT ` + definitionColumns + ` FROM effect_definitions ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying effect definitions: %w", err)
	}
	defer rows.Close()

	defs := make([]*effect.Definition, 0, 64)
	for rows.Next() {
		def, err := scanDefinition(rows, tax)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating effect definition rows: %w", err)
	}

	slog.Info("loaded effect definitions from database", "count", len(defs))
	return defs, nil
}

// Get loads one definition. Returns effect.ErrUnknownDefinition when absent.
func (r *DefinitionRepository) Get(ctx context.Context, tax *effect.Taxonomy, id string) (*effect.Definition, error) {
	query := `SELECT ` + definitionColumns + ` FROM effect_definitions WHERE id = $1`

	def, err := scanDefinition(r.db.QueryRow(ctx, query, id), tax)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("effect %q: %w", id, effect.ErrUnknownDefinition)
	}
	return def, err
}

// Upsert inserts or replaces defs in one transaction.
func (r *DefinitionRepository) Upsert(ctx context.Context, tax *effect.Taxonomy, defs []*effect.Definition) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("effect definitions rollback failed", "error", err)
		}
	}()

	query := `
		INSERT INTO effect_definitions (` + definitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			type = EXCLUDED.type,
			name = EXCLUDED.name,
			icon = EXCLUDED.icon,
			animation = EXCLUDED.animation,
			can_stack = EXCLUDED.can_stack,
			max_stacks = EXCLUDED.max_stacks,
			group_stack = EXCLUDED.group_stack,
			render_above = EXCLUDED.render_above,
			color_r = EXCLUDED.color_r,
			color_g = EXCLUDED.color_g,
			color_b = EXCLUDED.color_b,
			color_a = EXCLUDED.color_a,
			alpha_mod = EXCLUDED.alpha_mod,
			attack_speed_anim = EXCLUDED.attack_speed_anim,
			immunity = EXCLUDED.immunity,
			updated_at = now()
	`

	batch := &pgx.Batch{}
	for _, d := range defs {
		batch.Queue(query,
			d.ID, tax.Name(d.Type), d.Name, d.Icon, d.Animation, d.CanStack, d.MaxStacks, d.GroupStack,
			d.RenderAbove, int16(d.ColorMod.R), int16(d.ColorMod.G), int16(d.ColorMod.B), int16(d.ColorMod.A),
			int16(d.AlphaMod), d.AttackSpeedAnim, d.ImmunityType,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upserting %d effect definitions: %w", len(defs), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing effect definitions: %w", err)
	}
	return nil
}

// Delete removes the definition with the given id.
func (r *DefinitionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM effect_definitions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting effect definition %q: %w", id, err)
	}
	return nil
}

func scanDefinition(row pgx.Row, tax *effect.Taxonomy) (*effect.Definition, error) {
	var (
		d                   effect.Definition
		typeName            string
		cr, cg, cb, ca, alp int16
	)
	err := row.Scan(
		&d.ID, &typeName, &d.Name, &d.Icon, &d.Animation, &d.CanStack, &d.MaxStacks, &d.GroupStack,
		&d.RenderAbove, &cr, &cg, &cb, &ca, &alp, &d.AttackSpeedAnim, &d.ImmunityType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning effect definition row: %w", err)
	}

	ty, legacy := tax.Parse(typeName)
	if ty == effect.TypeNone && typeName != "none" {
		slog.Warn("unknown effect type in database, treating as none", "effect", d.ID, "type", typeName)
	}
	d.Type = ty
	d.ImmunityType = d.ImmunityType || legacy
	d.ColorMod = effect.Color{R: uint8(cr), G: uint8(cg), B: uint8(cb), A: uint8(ca)}
	d.AlphaMod = uint8(alp)
	return &d, nil
}
