package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dyluth/fuse/pkg/gamelog"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS fuse_log_entries (
	game_id  TEXT    NOT NULL,
	seq      INTEGER NOT NULL,
	kind     TEXT    NOT NULL,
	record   JSONB   NOT NULL,
	PRIMARY KEY (game_id, seq)
)`

// PostgresStore keeps one game's log as rows of fuse_log_entries.
type PostgresStore struct {
	pool   *pgxpool.Pool
	gameID string
}

// NewPostgresStore connects to dsn and makes sure the log table exists.
func NewPostgresStore(ctx context.Context, dsn, gameID string) (*PostgresStore, error) {
	if gameID == "" {
		return nil, fmt.Errorf("game id cannot be empty")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create log table: %w", err)
	}

	return &PostgresStore{pool: pool, gameID: gameID}, nil
}

// Load reads the log ordered by sequence number.
func (p *PostgresStore) Load(ctx context.Context) ([]gamelog.Entry, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT record FROM fuse_log_entries WHERE game_id = $1 ORDER BY seq`, p.gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query log: %w", err)
	}
	defer rows.Close()

	var records []gamelog.Record
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan log row: %w", err)
		}
		var r gamelog.Record
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal log record %d: %w", len(records), err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log rows: %w", err)
	}

	entries, err := gamelog.RecordsToEntries(records)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize log: %w", err)
	}
	return entries, nil
}

// Save replaces the game's rows inside one transaction.
func (p *PostgresStore) Save(ctx context.Context, entries []gamelog.Entry) error {
	records, err := gamelog.EntriesToRecords(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize log: %w", err)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM fuse_log_entries WHERE game_id = $1`, p.gameID); err != nil {
		return fmt.Errorf("failed to clear log: %w", err)
	}

	for i, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal log record: %w", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO fuse_log_entries (game_id, seq, kind, record) VALUES ($1, $2, $3, $4)`,
			p.gameID, i, string(r.Kind), data)
		if err != nil {
			return fmt.Errorf("failed to insert log record %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit log: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}
