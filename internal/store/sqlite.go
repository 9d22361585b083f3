package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/ubck/survey-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS day_records (
	id         TEXT PRIMARY KEY,
	day        INTEGER NOT NULL UNIQUE,
	teams      TEXT NOT NULL,
	carriers   TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_day_records_day ON day_records(day);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveDay(ctx context.Context, rec model.DayRecord) error {
	teamsJSON, err := json.Marshal(rec.Teams)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal teams")
	}
	carriersJSON, err := json.Marshal(rec.Carriers)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal carriers")
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO day_records (id, day, teams, carriers, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (day) DO UPDATE SET
			teams = excluded.teams,
			carriers = excluded.carriers,
			updated_at = excluded.updated_at`,
		uuid.New().String(), rec.Day, string(teamsJSON), string(carriersJSON), now, now,
	)
	return eris.Wrapf(err, "sqlite: save day %d", rec.Day)
}

func (s *SQLiteStore) GetDay(ctx context.Context, day int) (*model.DayRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT day, teams, carriers, created_at, updated_at FROM day_records WHERE day = ?`,
		day,
	)

	var rec model.DayRecord
	var teamsJSON, carriersJSON string
	err := row.Scan(&rec.Day, &teamsJSON, &carriersJSON, &rec.CreatedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get day %d", day)
	}

	if err := json.Unmarshal([]byte(teamsJSON), &rec.Teams); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal teams for day %d", day)
	}
	if err := json.Unmarshal([]byte(carriersJSON), &rec.Carriers); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal carriers for day %d", day)
	}
	return &rec, nil
}

func (s *SQLiteStore) ListDays(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT day FROM day_records ORDER BY day`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list days")
	}
	defer rows.Close() //nolint:errcheck

	var days []int
	for rows.Next() {
		var d int
		if err := rows.Scan(&d); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan day")
		}
		days = append(days, d)
	}
	return days, eris.Wrap(rows.Err(), "sqlite: iterate days")
}

func (s *SQLiteStore) DeleteDay(ctx context.Context, day int) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM day_records WHERE day = ?`, day)
	return eris.Wrapf(err, "sqlite: delete day %d", day)
}
