package encounters

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
)

// SQLiteConfig holds the configuration for the SQLite repository
type SQLiteConfig struct {
	DB *sql.DB
}

// Validate ensures all required dependencies are provided
func (c *SQLiteConfig) Validate() error {
	if c.DB == nil {
		return errors.InvalidArgument("database is required")
	}
	return nil
}

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates an encounter log backed by SQLite
func NewSQLiteRepository(cfg *SQLiteConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &sqliteRepository{db: cfg.DB}, nil
}

var _ Repository = (*sqliteRepository)(nil)

func (r *sqliteRepository) Record(ctx context.Context, input *RecordInput) (*RecordOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errEncounterRequired)
	}
	if err := validateEncounter(input.Encounter); err != nil {
		return nil, err
	}

	e := cloneEncounter(input.Encounter)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	participants := e.ParticipantIDs
	if participants == nil {
		participants = []string{}
	}
	data, err := json.Marshal(participants)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal participants")
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO encounters (id, game_id, location_id, participant_ids, text, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`,
		e.ID, e.GameID, e.LocationID, string(data), e.Text, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to record encounter %s", e.ID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, errors.AlreadyExists("encounter already recorded").WithMeta("encounter_id", e.ID)
	}

	return &RecordOutput{Encounter: e}, nil
}

func (r *sqliteRepository) ListByGame(ctx context.Context, input *ListByGameInput) (*ListByGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, game_id, location_id, participant_ids, text, created_at FROM encounters
WHERE game_id = ? ORDER BY created_at, rowid`, input.GameID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list encounters")
	}
	defer func() { _ = rows.Close() }()

	out := &ListByGameOutput{Encounters: []*entities.Encounter{}}
	for rows.Next() {
		var (
			e            entities.Encounter
			participants string
			createdAt    int64
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.LocationID, &participants, &e.Text, &createdAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan encounter")
		}
		if err := json.Unmarshal([]byte(participants), &e.ParticipantIDs); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal participants")
		}
		e.CreatedAt = time.Unix(0, createdAt)
		out.Encounters = append(out.Encounters, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate encounters")
	}

	return out, nil
}
