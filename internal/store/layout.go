package store

import (
	"database/sql"
	"errors"
	"image"
	"time"

	"github.com/ayusman/lumikey/internal/keymap"
)

// Layout represents a stored zone layout.
type Layout struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// LayoutRepository provides CRUD operations for layouts and their zones.
type LayoutRepository struct {
	db *sql.DB
}

// Layouts returns the layout repository for this store.
func (s *Store) Layouts() *LayoutRepository {
	return &LayoutRepository{db: s.db}
}

// Create inserts a layout and its zones in a single transaction. Zone order
// is recorded so overlap priority survives the round trip.
func (r *LayoutRepository) Create(l *Layout, zones []keymap.Zone) error {
	l.CreatedAt = time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO layouts (id, name, created_at) VALUES (?, ?, ?)`,
		l.ID, l.Name, l.CreatedAt,
	); err != nil {
		return err
	}

	for i, z := range zones {
		if _, err := tx.Exec(
			`INSERT INTO layout_zones (layout_id, position, key, x, y, w, h, cx, cy)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, i, string(z.Key),
			z.Rect.Min.X, z.Rect.Min.Y, z.Rect.Dx(), z.Rect.Dy(),
			z.Center.X, z.Center.Y,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID retrieves a layout by its ID.
func (r *LayoutRepository) GetByID(id string) (*Layout, error) {
	l := &Layout{}

	err := r.db.QueryRow(
		`SELECT id, name, created_at FROM layouts WHERE id = ?`, id,
	).Scan(&l.ID, &l.Name, &l.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return l, nil
}

// List returns all layouts ordered by creation time.
func (r *LayoutRepository) List() ([]*Layout, error) {
	rows, err := r.db.Query(
		`SELECT id, name, created_at FROM layouts ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var layouts []*Layout
	for rows.Next() {
		l := &Layout{}
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, err
		}
		layouts = append(layouts, l)
	}

	return layouts, rows.Err()
}

// GetZones returns the zones of a layout in priority order.
func (r *LayoutRepository) GetZones(layoutID string) ([]keymap.Zone, error) {
	rows, err := r.db.Query(
		`SELECT key, x, y, w, h, cx, cy FROM layout_zones
		 WHERE layout_id = ? ORDER BY position`,
		layoutID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []keymap.Zone
	for rows.Next() {
		var key string
		var x, y, w, h, cx, cy int
		if err := rows.Scan(&key, &x, &y, &w, &h, &cx, &cy); err != nil {
			return nil, err
		}
		zones = append(zones, keymap.Zone{
			Key:    keymap.KeyID(key),
			Rect:   keymap.R(x, y, w, h),
			Center: image.Pt(cx, cy),
		})
	}

	return zones, rows.Err()
}

// Delete removes a layout and, via cascade, its zones.
func (r *LayoutRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
