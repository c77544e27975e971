package players

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
)

const playerColumns = `id, game_id, name, background, hp, sanity, agility, accuracy,
	location_id, inventory, history, joined_at`

// SQLiteConfig holds the configuration for the SQLite repository
type SQLiteConfig struct {
	DB *sql.DB
	// HistoryLimit defaults to DefaultHistoryLimit
	HistoryLimit int
}

// Validate ensures all required dependencies are provided
func (c *SQLiteConfig) Validate() error {
	if c.DB == nil {
		return errors.InvalidArgument("database is required")
	}
	if c.HistoryLimit < 0 {
		return errors.InvalidArgument("history limit cannot be negative")
	}
	return nil
}

type sqliteRepository struct {
	db           *sql.DB
	historyLimit int
}

// NewSQLiteRepository creates a player repository backed by SQLite
func NewSQLiteRepository(cfg *SQLiteConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	limit := cfg.HistoryLimit
	if limit == 0 {
		limit = DefaultHistoryLimit
	}

	return &sqliteRepository{db: cfg.DB, historyLimit: limit}, nil
}

var _ Repository = (*sqliteRepository)(nil)

func (r *sqliteRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil || input.Player == nil {
		return nil, errors.InvalidArgument(errPlayerRequired)
	}
	p := input.Player.Clone()
	if err := validateKey(p.GameID, p.ID); err != nil {
		return nil, err
	}
	p.HP = entities.Clamp(p.HP, 0, entities.MaxStat)
	p.Sanity = entities.Clamp(p.Sanity, 0, entities.MaxStat)
	if p.JoinedAt.IsZero() {
		p.JoinedAt = time.Now()
	}

	inventory, history, err := encodeLists(p)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO players (`+playerColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (game_id, id) DO NOTHING`,
		p.ID, p.GameID, p.Name, p.Background, p.HP, p.Sanity, p.Agility, p.Accuracy,
		p.LocationID, inventory, history, p.JoinedAt.UnixNano(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to insert player %s", p.ID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, errors.AlreadyExists("player already joined").
			WithMeta("game_id", p.GameID).
			WithMeta("player_id", p.ID)
	}

	return &CreateOutput{Player: p}, nil
}

func (r *sqliteRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if err := validateKey(input.GameID, input.PlayerID); err != nil {
		return nil, err
	}

	p, err := r.get(ctx, r.db, input.GameID, input.PlayerID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Player: p}, nil
}

func (r *sqliteRepository) UpdateStats(ctx context.Context, input *UpdateStatsInput) (*UpdateStatsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if err := validateKey(input.GameID, input.PlayerID); err != nil {
		return nil, err
	}

	var updated *entities.Player
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		p, err := r.get(ctx, tx, input.GameID, input.PlayerID)
		if err != nil {
			return err
		}

		applyUpdate(p, input)

		inventory, _, err := encodeLists(p)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
UPDATE players SET hp = ?, sanity = ?, location_id = ?, inventory = ?
WHERE game_id = ? AND id = ?`,
			p.HP, p.Sanity, p.LocationID, inventory, p.GameID, p.ID,
		); err != nil {
			return errors.Wrapf(err, "failed to update player %s", p.ID)
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &UpdateStatsOutput{Player: updated}, nil
}

func (r *sqliteRepository) ListByGame(ctx context.Context, input *ListByGameInput) (*ListOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}
	return r.query(ctx, `SELECT `+playerColumns+` FROM players
WHERE game_id = ? ORDER BY joined_at, id`, input.GameID)
}

func (r *sqliteRepository) ListLiving(ctx context.Context, input *ListLivingInput) (*ListOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}
	return r.query(ctx, `SELECT `+playerColumns+` FROM players
WHERE game_id = ? AND hp > 0 ORDER BY joined_at, id`, input.GameID)
}

func (r *sqliteRepository) ListAtLocation(ctx context.Context, input *ListAtLocationInput) (*ListOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}
	if input.LocationID == "" {
		return &ListOutput{}, nil
	}
	return r.query(ctx, `SELECT `+playerColumns+` FROM players
WHERE game_id = ? AND location_id = ? AND hp > 0 ORDER BY joined_at, id`,
		input.GameID, input.LocationID)
}

func (r *sqliteRepository) AppendConversation(ctx context.Context, input *AppendConversationInput) (*AppendConversationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if err := validateKey(input.GameID, input.PlayerID); err != nil {
		return nil, err
	}

	var history []entities.ConversationEntry
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		p, err := r.get(ctx, tx, input.GameID, input.PlayerID)
		if err != nil {
			return err
		}

		history = entities.TrimHistory(append(p.History, input.Entry), r.historyLimit)
		data, err := json.Marshal(history)
		if err != nil {
			return errors.Wrap(err, "failed to marshal history")
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE players SET history = ? WHERE game_id = ? AND id = ?`,
			string(data), input.GameID, input.PlayerID,
		); err != nil {
			return errors.Wrapf(err, "failed to append history for %s", input.PlayerID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AppendConversationOutput{History: history}, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if err := validateKey(input.GameID, input.PlayerID); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM players WHERE game_id = ? AND id = ?`, input.GameID, input.PlayerID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete player %s", input.PlayerID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, notFound(input.GameID, input.PlayerID)
	}

	return &DeleteOutput{}, nil
}

func (r *sqliteRepository) DeleteByGame(ctx context.Context, input *DeleteByGameInput) (*DeleteByGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.InvalidArgument(errGameIDRequired)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE game_id = ?`, input.GameID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete players of game %s", input.GameID)
	}
	n, _ := res.RowsAffected()

	return &DeleteByGameOutput{Deleted: int(n)}, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *sqliteRepository) get(ctx context.Context, q queryer, gameID, playerID string) (*entities.Player, error) {
	row := q.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players
WHERE game_id = ? AND id = ?`, gameID, playerID)

	p, err := scanPlayer(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, notFound(gameID, playerID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load player %s", playerID)
	}
	return p, nil
}

func (r *sqliteRepository) query(ctx context.Context, query string, args ...any) (*ListOutput, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list players")
	}
	defer func() { _ = rows.Close() }()

	out := &ListOutput{Players: []*entities.Player{}}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan player")
		}
		out.Players = append(out.Players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate players")
	}

	return out, nil
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

func scanPlayer(s rowScanner) (*entities.Player, error) {
	var (
		p         entities.Player
		inventory string
		history   string
		joinedAt  int64
	)
	if err := s.Scan(&p.ID, &p.GameID, &p.Name, &p.Background, &p.HP, &p.Sanity,
		&p.Agility, &p.Accuracy, &p.LocationID, &inventory, &history, &joinedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(inventory), &p.Inventory); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(history), &p.History); err != nil {
		return nil, err
	}
	p.JoinedAt = time.Unix(0, joinedAt)

	return &p, nil
}

func encodeLists(p *entities.Player) (string, string, error) {
	inventory := p.Inventory
	if inventory == nil {
		inventory = []string{}
	}
	inv, err := json.Marshal(inventory)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to marshal inventory")
	}

	history := p.History
	if history == nil {
		history = []entities.ConversationEntry{}
	}
	hist, err := json.Marshal(history)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to marshal history")
	}

	return string(inv), string(hist), nil
}
