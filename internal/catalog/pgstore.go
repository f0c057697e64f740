package catalog

import (
	"github.com/jmoiron/sqlx"

	"github.com/sardorasatov93-code/Vakansiya-bot/core/logger"
	"log/slog"
)

// PGStore keeps the catalog in a Postgres openings table. It mirrors the
// FileStore contract: duplicate appends report false, reload failures
// degrade to an empty catalog.
type PGStore struct {
	db *sqlx.DB
}

// NewPGStore wraps an open database handle.
func NewPGStore(db *sqlx.DB) *PGStore {
	logger.Info(logger.Background(), "catalog", "store.open",
		slog.String("backend", "postgres"),
	)
	return &PGStore{db: db}
}

type openingRow struct {
	District string `db:"district"`
	Title    string `db:"title"`
}

func (s *PGStore) snapshot() Catalog {
	var rows []openingRow
	err := s.db.Select(&rows, `SELECT district, title FROM openings ORDER BY district, position`)
	if err != nil {
		logger.Warn(logger.Background(), "catalog", "store.read_failed",
			slog.String("backend", "postgres"),
			slog.String("err", err.Error()),
		)
		return Catalog{}
	}
	c := Catalog{}
	for _, r := range rows {
		c[r.District] = append(c[r.District], r.Title)
	}
	return c
}

// Reload returns the current table contents as a catalog.
func (s *PGStore) Reload() Catalog {
	return s.snapshot()
}

// Append inserts a title, keeping insertion order via the position column.
func (s *PGStore) Append(district, title string) (bool, error) {
	res, err := s.db.Exec(`
		INSERT INTO openings (district, title, position)
		SELECT $1, $2, COALESCE(MAX(position) + 1, 0)
		FROM openings WHERE district = $1
		ON CONFLICT (district, title) DO NOTHING`,
		district, title,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	logger.Info(logger.Background(), "catalog", "append",
		slog.String("district", district),
		slog.String("job", title),
	)
	return true, nil
}

// Clear removes every title under a district and reports the count.
func (s *PGStore) Clear(district string) (int, error) {
	res, err := s.db.Exec(`DELETE FROM openings WHERE district = $1`, district)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Info(logger.Background(), "catalog", "clear",
			slog.String("district", district),
			slog.Int("removed", int(n)),
		)
	}
	return int(n), nil
}

// Jobs returns a district's titles in insertion order.
func (s *PGStore) Jobs(district string) []string {
	var titles []string
	err := s.db.Select(&titles, `SELECT title FROM openings WHERE district = $1 ORDER BY position`, district)
	if err != nil {
		logger.Warn(logger.Background(), "catalog", "store.read_failed",
			slog.String("backend", "postgres"),
			slog.String("district", district),
			slog.String("err", err.Error()),
		)
		return nil
	}
	return titles
}

// DistrictsWithOpenings returns districts holding at least one title,
// in canonical order.
func (s *PGStore) DistrictsWithOpenings() []string {
	return s.snapshot().districtsWithOpenings()
}

// ReplaceAll swaps the whole table contents in one transaction.
func (s *PGStore) ReplaceAll(c Catalog) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM openings`); err != nil {
		return err
	}
	for district, jobs := range c {
		for pos, title := range jobs {
			if _, err := tx.Exec(
				`INSERT INTO openings (district, title, position) VALUES ($1, $2, $3)`,
				district, title, pos,
			); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}
