package games

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
)

const gameColumns = `id, scenario_id, creator_id, active, started, created_at, ended_at`

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

// NewSQLiteRepository creates a game repository backed by SQLite
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

func (r *sqliteRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if err := validateGame(input.Game); err != nil {
		return nil, err
	}
	g := cloneGame(input.Game)
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO games (`+gameColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`,
		g.ID, g.ScenarioID, g.CreatorID, g.Active, g.Started, g.CreatedAt.UnixNano(), endedAt(g),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to insert game %s", g.ID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, errors.AlreadyExists("game already exists").WithMeta("game_id", g.ID)
	}

	return &CreateOutput{Game: g}, nil
}

func (r *sqliteRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, input.ID)
	g, err := scanGame(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, gameNotFound(input.ID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load game %s", input.ID)
	}

	return &GetOutput{Game: g}, nil
}

func (r *sqliteRepository) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if err := validateGame(input.Game); err != nil {
		return nil, err
	}
	g := cloneGame(input.Game)

	res, err := r.db.ExecContext(ctx, `
UPDATE games SET active = ?, started = ?, ended_at = ? WHERE id = ?`,
		g.Active, g.Started, endedAt(g), g.ID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update game %s", g.ID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, gameNotFound(g.ID)
	}

	return &UpdateOutput{Game: g}, nil
}

func (r *sqliteRepository) ListActive(ctx context.Context, input *ListActiveInput) (*ListActiveOutput, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE active = 1 ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list games")
	}
	defer func() { _ = rows.Close() }()

	out := &ListActiveOutput{Games: []*entities.Game{}}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan game")
		}
		out.Games = append(out.Games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate games")
	}

	return out, nil
}

func (r *sqliteRepository) AddRules(ctx context.Context, input *AddRulesInput) (*AddRulesOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}
	if err := r.ensureGame(ctx, input.GameID); err != nil {
		return nil, err
	}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		for _, rule := range input.Rules {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO rules (game_id, text, hidden) VALUES (?, ?, ?)`,
				input.GameID, rule.Text, rule.Hidden,
			); err != nil {
				return errors.Wrapf(err, "failed to insert rule for game %s", input.GameID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AddRulesOutput{}, nil
}

func (r *sqliteRepository) ListRules(ctx context.Context, input *ListRulesInput) (*ListRulesOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}

	query := `SELECT text, hidden FROM rules WHERE game_id = ?`
	switch input.Visibility {
	case RulesHidden:
		query += ` AND hidden = 1`
	case RulesPublic:
		query += ` AND hidden = 0`
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, input.GameID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rules")
	}
	defer func() { _ = rows.Close() }()

	out := &ListRulesOutput{Rules: []entities.Rule{}}
	for rows.Next() {
		rule := entities.Rule{GameID: input.GameID}
		if err := rows.Scan(&rule.Text, &rule.Hidden); err != nil {
			return nil, errors.Wrap(err, "failed to scan rule")
		}
		out.Rules = append(out.Rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate rules")
	}

	return out, nil
}

func (r *sqliteRepository) SaveLocations(ctx context.Context, input *SaveLocationsInput) (*SaveLocationsOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}
	for _, l := range input.Locations {
		if l == nil || l.ID == "" {
			return nil, errors.InvalidArgument(errLocationIDRequired)
		}
	}
	if err := r.ensureGame(ctx, input.GameID); err != nil {
		return nil, err
	}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM locations WHERE game_id = ?`, input.GameID); err != nil {
			return errors.Wrapf(err, "failed to clear map for game %s", input.GameID)
		}
		for i, l := range input.Locations {
			exits := l.Exits
			if exits == nil {
				exits = []string{}
			}
			data, err := json.Marshal(exits)
			if err != nil {
				return errors.Wrap(err, "failed to marshal exits")
			}
			if _, err := tx.ExecContext(ctx, `
INSERT INTO locations (game_id, id, name, floor, exits, is_start, ordinal)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
				input.GameID, l.ID, l.Name, l.Floor, string(data), l.Start, i,
			); err != nil {
				return errors.Wrapf(err, "failed to insert location %s", l.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SaveLocationsOutput{}, nil
}

func (r *sqliteRepository) ListLocations(ctx context.Context, input *ListLocationsInput) (*ListLocationsOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT game_id, id, name, floor, exits, is_start FROM locations
WHERE game_id = ? ORDER BY ordinal`, input.GameID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list locations")
	}
	defer func() { _ = rows.Close() }()

	out := &ListLocationsOutput{Locations: []*entities.Location{}}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan location")
		}
		out.Locations = append(out.Locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate locations")
	}

	return out, nil
}

func (r *sqliteRepository) GetLocation(ctx context.Context, input *GetLocationInput) (*GetLocationOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}
	if input.LocationID == "" {
		return nil, errors.InvalidArgument(errLocationIDRequired)
	}

	row := r.db.QueryRowContext(ctx, `
SELECT game_id, id, name, floor, exits, is_start FROM locations
WHERE game_id = ? AND id = ?`, input.GameID, input.LocationID)
	l, err := scanLocation(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, locationNotFound(input.GameID, input.LocationID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load location %s", input.LocationID)
	}

	return &GetLocationOutput{Location: l}, nil
}

func (r *sqliteRepository) ensureGame(ctx context.Context, gameID string) error {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM games WHERE id = ?`, gameID).Scan(&exists)
	if stderrors.Is(err, sql.ErrNoRows) {
		return gameNotFound(gameID)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to check game %s", gameID)
	}
	return nil
}

func (r *sqliteRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(s rowScanner) (*entities.Game, error) {
	var (
		g         entities.Game
		createdAt int64
		ended     sql.NullInt64
	)
	if err := s.Scan(&g.ID, &g.ScenarioID, &g.CreatorID, &g.Active, &g.Started, &createdAt, &ended); err != nil {
		return nil, err
	}
	g.CreatedAt = time.Unix(0, createdAt)
	if ended.Valid {
		t := time.Unix(0, ended.Int64)
		g.EndedAt = &t
	}
	return &g, nil
}

func scanLocation(s rowScanner) (*entities.Location, error) {
	var (
		l     entities.Location
		exits string
	)
	if err := s.Scan(&l.GameID, &l.ID, &l.Name, &l.Floor, &exits, &l.Start); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(exits), &l.Exits); err != nil {
		return nil, err
	}
	return &l, nil
}

func endedAt(g *entities.Game) any {
	if g.EndedAt == nil {
		return nil
	}
	return g.EndedAt.UnixNano()
}
