package layout

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inamate/inamate/surface-go/internal/items"
)

const schema = `
CREATE TABLE IF NOT EXISTS surface_items (
	surface_id TEXT NOT NULL,
	item_id    TEXT NOT NULL,
	position   INTEGER NOT NULL,
	left_px    DOUBLE PRECISION NOT NULL,
	top_px     DOUBLE PRECISION NOT NULL,
	width_px   DOUBLE PRECISION NOT NULL,
	height_px  DOUBLE PRECISION NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (surface_id, item_id)
)`

const upsertPlacement = `
INSERT INTO surface_items (surface_id, item_id, position, left_px, top_px, width_px, height_px)
VALUES ($1, $2, COALESCE((SELECT MAX(position) + 1 FROM surface_items WHERE surface_id = $1), 0), $3, $4, $5, $6)
ON CONFLICT (surface_id, item_id) DO UPDATE
SET left_px = EXCLUDED.left_px, top_px = EXCLUDED.top_px,
    width_px = EXCLUDED.width_px, height_px = EXCLUDED.height_px, updated_at = now()`

// PostgresStore keeps layouts in a surface_items table, one row per item.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPool connects and verifies the database is reachable.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate layout: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, surfaceID string) ([]items.Placement, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT item_id, left_px, top_px, width_px, height_px
		 FROM surface_items WHERE surface_id = $1 ORDER BY position`, surfaceID)
	if err != nil {
		return nil, fmt.Errorf("query layout: %w", err)
	}

	placements, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (items.Placement, error) {
		var (
			id                       string
			left, top, width, height float64
		)
		if err := row.Scan(&id, &left, &top, &width, &height); err != nil {
			return items.Placement{}, err
		}
		return items.Placement{ID: id, Left: &left, Top: &top, Width: &width, Height: &height}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan layout: %w", err)
	}
	if len(placements) == 0 {
		return nil, ErrNotFound
	}
	return placements, nil
}

func (s *PostgresStore) Save(ctx context.Context, surfaceID string, placements []items.Placement) error {
	rects := make([]items.Placement, 0, len(placements))
	for _, p := range placements {
		if _, err := p.Rect(); err != nil {
			return fmt.Errorf("save layout: %w", err)
		}
		rects = append(rects, p)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM surface_items WHERE surface_id = $1`, surfaceID); err != nil {
		return fmt.Errorf("clear layout: %w", err)
	}

	batch := &pgx.Batch{}
	for i, p := range rects {
		batch.Queue(
			`INSERT INTO surface_items (surface_id, item_id, position, left_px, top_px, width_px, height_px)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			surfaceID, p.ID, i, *p.Left, *p.Top, *p.Width, *p.Height)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert layout: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit layout: %w", err)
	}
	return nil
}

func (s *PostgresStore) SavePlacement(ctx context.Context, surfaceID string, p items.Placement) error {
	if _, err := p.Rect(); err != nil {
		return fmt.Errorf("save placement: %w", err)
	}
	_, err := s.pool.Exec(ctx, upsertPlacement, surfaceID, p.ID, *p.Left, *p.Top, *p.Width, *p.Height)
	if err != nil {
		return fmt.Errorf("upsert placement: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, surfaceID, itemID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM surface_items WHERE surface_id = $1 AND item_id = $2`, surfaceID, itemID)
	if err != nil {
		return fmt.Errorf("delete placement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

