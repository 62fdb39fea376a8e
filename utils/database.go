package utils

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"jackpot-go/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoDatabase is returned by reads when DATABASE_URL is not configured.
var ErrNoDatabase = errors.New("database not connected")

var (
	DB            *pgxpool.Pool
	dbInitialized = false
	dbMutex       sync.RWMutex
)

// SetupDatabase initializes the database connection pool. An empty URL
// leaves the ledger disabled.
func SetupDatabase(ctx context.Context, databaseURL string) error {
	dbMutex.Lock()
	defer dbMutex.Unlock()

	if dbInitialized || databaseURL == "" {
		return nil
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	// The ledger writes one row per finished game, so a small pool is plenty
	config.MaxConns = 8
	config.MinConns = 1
	config.MaxConnLifetime = 45 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second
	config.ConnConfig.RuntimeParams = map[string]string{
		"application_name":                    "jackpot-bot",
		"timezone":                            "UTC",
		"statement_timeout":                   "30s",
		"idle_in_transaction_session_timeout": "60s",
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to reach database: %w", err)
	}

	if err := createPlaysTable(ctx, pool); err != nil {
		pool.Close()
		return err
	}

	DB = pool
	dbInitialized = true
	return nil
}

// CloseDatabase closes the database connection pool
func CloseDatabase() {
	dbMutex.Lock()
	defer dbMutex.Unlock()

	if DB != nil {
		DB.Close()
		DB = nil
		dbInitialized = false
	}
}

func currentDB() *pgxpool.Pool {
	dbMutex.RLock()
	defer dbMutex.RUnlock()
	return DB
}

// createPlaysTable creates the jackpot_plays table if it does not exist
func createPlaysTable(ctx context.Context, pool *pgxpool.Pool) error {
	query := `CREATE TABLE IF NOT EXISTS jackpot_plays (
		message_id TEXT PRIMARY KEY,
		channel_id TEXT NOT NULL,
		guild_id TEXT NOT NULL DEFAULT '',
		user_id BIGINT NOT NULL,
		outcome TEXT NOT NULL,
		matches INTEGER NOT NULL,
		symbols TEXT[] NOT NULL,
		played_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_jackpot_plays_user ON jackpot_plays(user_id);`
	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create jackpot_plays table: %w", err)
	}
	return nil
}

// RecordPlay stores a finished game. A message finishes once, so replays of
// the same message are ignored. Without a database this is a no-op.
func RecordPlay(ctx context.Context, rec models.PlayRecord) error {
	db := currentDB()
	if db == nil {
		return nil
	}

	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO jackpot_plays (message_id, channel_id, guild_id, user_id, outcome, matches, symbols, played_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (message_id) DO NOTHING`
	_, err := db.Exec(ctx, query,
		rec.MessageID,
		rec.ChannelID,
		rec.GuildID,
		rec.UserID,
		rec.Outcome,
		rec.Matches,
		rec.Symbols,
		rec.PlayedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record play: %w", err)
	}
	return nil
}

// GetPlayStats aggregates a user's finished games
func GetPlayStats(ctx context.Context, userID int64) (*models.PlayStats, error) {
	db := currentDB()
	if db == nil {
		return nil, ErrNoDatabase
	}

	query := `
		SELECT outcome, MAX(matches), COUNT(*), MAX(played_at)
		FROM jackpot_plays WHERE user_id = $1
		GROUP BY outcome`
	rows, err := db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query play stats: %w", err)
	}
	defer rows.Close()

	stats := models.NewPlayStats(userID)
	for rows.Next() {
		var (
			outcome    string
			matches    int
			count      int
			lastPlayed time.Time
		)
		if err := rows.Scan(&outcome, &matches, &count, &lastPlayed); err != nil {
			return nil, fmt.Errorf("failed to scan play stats: %w", err)
		}
		stats.Add(outcome, matches, count, lastPlayed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read play stats: %w", err)
	}
	return stats, nil
}

// DatabaseLedger exposes the package-level ledger functions as a value.
// With a Cache, stats reads are served from it and each recorded play drops
// that user's entry.
type DatabaseLedger struct {
	Cache *StatsCache
}

func (l DatabaseLedger) RecordPlay(ctx context.Context, rec models.PlayRecord) error {
	if err := RecordPlay(ctx, rec); err != nil {
		return err
	}
	if l.Cache != nil {
		l.Cache.Delete(rec.UserID)
	}
	return nil
}

func (l DatabaseLedger) PlayStats(ctx context.Context, userID int64) (*models.PlayStats, error) {
	if l.Cache != nil {
		if stats, ok := l.Cache.Get(userID); ok {
			return stats, nil
		}
	}
	stats, err := GetPlayStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if l.Cache != nil {
		l.Cache.Set(userID, stats)
	}
	return stats, nil
}
