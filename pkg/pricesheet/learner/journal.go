package learner

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
	_ "modernc.org/sqlite"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS retrain_rounds (
	id         TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	source     TEXT NOT NULL,
	added      INTEGER NOT NULL,
	total      INTEGER NOT NULL,
	trained_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS retrain_samples (
	round_id TEXT NOT NULL REFERENCES retrain_rounds(id),
	position INTEGER NOT NULL,
	header   TEXT NOT NULL,
	role     TEXT NOT NULL,
	PRIMARY KEY (round_id, position)
);
CREATE INDEX IF NOT EXISTS idx_retrain_rounds_version ON retrain_rounds(version);
`

// Round is one recorded retrain: the samples it added and the resulting
// training-set version.
type Round struct {
	ID        uuid.UUID
	Version   int
	Source    string
	Added     int
	Total     int
	TrainedAt time.Time
	// Samples holds the added samples. Rounds leaves it nil.
	Samples []models.Sample
}

// Journal is an append-only SQLite log of retrain rounds.
type Journal struct {
	db *sql.DB
}

// OpenJournal opens or creates the journal database at path.
func OpenJournal(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// A single connection serializes writers on the database file.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(journalSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends a round and its samples in one transaction. A zero ID is
// replaced by a fresh random one and returned.
func (j *Journal) Record(ctx context.Context, r Round) (uuid.UUID, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.TrainedAt.IsZero() {
		r.TrainedAt = time.Now()
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO retrain_rounds (id, version, source, added, total, trained_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Version, r.Source, r.Added, r.Total, r.TrainedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return uuid.Nil, fmt.Errorf("insert round: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO retrain_samples (round_id, position, header, role) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, err
	}
	defer stmt.Close()
	for i, s := range r.Samples {
		if _, err := stmt.ExecContext(ctx, r.ID.String(), i, s.Header, string(s.Role)); err != nil {
			return uuid.Nil, fmt.Errorf("insert sample: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return r.ID, nil
}

// Rounds returns the most recent rounds, newest first. limit <= 0 returns all.
func (j *Journal) Rounds(ctx context.Context, limit int) ([]Round, error) {
	query := `SELECT id, version, source, added, total, trained_at FROM retrain_rounds ORDER BY version DESC, trained_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var (
			r         Round
			id, stamp string
		)
		if err := rows.Scan(&id, &r.Version, &r.Source, &r.Added, &r.Total, &stamp); err != nil {
			return nil, err
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("round id %q: %w", id, err)
		}
		if r.TrainedAt, err = time.Parse(time.RFC3339Nano, stamp); err != nil {
			return nil, fmt.Errorf("round %s timestamp: %w", id, err)
		}
		rounds = append(rounds, r)
	}
	return rounds, rows.Err()
}

// Samples returns the samples added by one round in their original order.
func (j *Journal) Samples(ctx context.Context, id uuid.UUID) ([]models.Sample, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT header, role FROM retrain_samples WHERE round_id = ? ORDER BY position`, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.Sample
	for rows.Next() {
		var (
			s    models.Sample
			role string
		)
		if err := rows.Scan(&s.Header, &role); err != nil {
			return nil, err
		}
		s.Role = models.Role(role)
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
