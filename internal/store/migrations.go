package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Layouts table - stores named zone layouts
		`CREATE TABLE IF NOT EXISTS layouts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Layout zones table - ordered zone rectangles; position preserves
		// overlap priority (earlier zones win)
		`CREATE TABLE IF NOT EXISTS layout_zones (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			layout_id TEXT NOT NULL REFERENCES layouts(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			key TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			w INTEGER NOT NULL,
			h INTEGER NOT NULL,
			cx INTEGER NOT NULL,
			cy INTEGER NOT NULL
		)`,

		// Key events table - append-only log of emitted commands
		`CREATE TABLE IF NOT EXISTS key_events (
			id TEXT PRIMARY KEY,
			key TEXT NOT NULL,
			kind TEXT NOT NULL CHECK(kind IN ('press', 'release')),
			at_ms INTEGER NOT NULL
		)`,

		// Settings table - stores tracker settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_layout_zones_layout_id ON layout_zones(layout_id)`,
		`CREATE INDEX IF NOT EXISTS idx_key_events_at_ms ON key_events(at_ms)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
