package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"snakeServer/game"
)

var (
	// PostgresPool is the global PostgreSQL connection pool
	PostgresPool *pgxpool.Pool
)

// InitPostgres initializes the PostgreSQL connection pool
func InitPostgres() error {
	log.Println("🔌 Connecting to PostgreSQL...")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 5 * time.Minute

	PostgresPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := PostgresPool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ PostgreSQL connected successfully")

	if err := InitSchema(context.Background()); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// ClosePostgres closes the PostgreSQL connection pool
func ClosePostgres() {
	if PostgresPool != nil {
		log.Println("🔌 Closing PostgreSQL connection...")
		PostgresPool.Close()
	}
}

// HealthCheckPostgres pings PostgreSQL
func HealthCheckPostgres(ctx context.Context) error {
	if PostgresPool == nil {
		return fmt.Errorf("PostgreSQL not initialized")
	}
	return PostgresPool.Ping(ctx)
}

// InitSchema creates the database tables if they don't exist
func InitSchema(ctx context.Context) error {
	log.Println("📋 Initializing database schema...")

	sessionSchema := `
	CREATE TABLE IF NOT EXISTS game_sessions (
		id TEXT PRIMARY KEY,
		secret TEXT NOT NULL,
		seed BIGINT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		validated_score INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	-- Index on created_at for housekeeping queries
	CREATE INDEX IF NOT EXISTS idx_game_sessions_created_at ON game_sessions(created_at DESC);
	`

	if _, err := PostgresPool.Exec(ctx, sessionSchema); err != nil {
		return fmt.Errorf("failed to create game_sessions table: %w", err)
	}

	leaderboardSchema := `
	CREATE TABLE IF NOT EXISTS leaderboard (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		score INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	-- Index matching the board order: score descending, earlier entry wins ties
	CREATE INDEX IF NOT EXISTS idx_leaderboard_rank ON leaderboard(score DESC, created_at ASC);
	`

	if _, err := PostgresPool.Exec(ctx, leaderboardSchema); err != nil {
		return fmt.Errorf("failed to create leaderboard table: %w", err)
	}

	log.Println("✅ Database schema initialized")
	return nil
}

/* =========================
   GAME SESSIONS
========================= */

// CreateGameSession persists a new active session
func CreateGameSession(ctx context.Context, session *game.GameSession) error {
	query := `
		INSERT INTO game_sessions (id, secret, seed, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := PostgresPool.Exec(ctx, query,
		session.ID, session.Secret, int64(session.Seed), session.IsActive, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create game session: %w", err)
	}

	log.Printf("🎮 Created game session %s", session.ID)
	return nil
}

// GetGameSession retrieves a session by id, nil when unknown
func GetGameSession(ctx context.Context, id string) (*game.GameSession, error) {
	query := `
		SELECT id, secret, seed, is_active, validated_score, created_at
		FROM game_sessions
		WHERE id = $1
	`

	var session game.GameSession
	var seed int64
	err := PostgresPool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.Secret,
		&seed,
		&session.IsActive,
		&session.ValidatedScore,
		&session.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game session: %w", err)
	}

	session.Seed = uint32(seed)
	return &session, nil
}

// FinalizeGameSession flips is_active and stores the validated score as one
// atomic conditional update. Returns false when the session was not active,
// so two concurrent finalize attempts cannot both succeed.
func FinalizeGameSession(ctx context.Context, id string, validatedScore int) (bool, error) {
	query := `
		UPDATE game_sessions
		SET is_active = FALSE, validated_score = $2
		WHERE id = $1 AND is_active = TRUE
	`

	tag, err := PostgresPool.Exec(ctx, query, id, validatedScore)
	if err != nil {
		return false, fmt.Errorf("failed to finalize game session: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

/* =========================
   LEADERBOARD
========================= */

// InsertLeaderboardEntry stores a new board entry
func InsertLeaderboardEntry(ctx context.Context, entry *game.LeaderboardEntry) error {
	query := `
		INSERT INTO leaderboard (id, name, score, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := PostgresPool.Exec(ctx, query,
		entry.ID, entry.Name, entry.Score, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert leaderboard entry: %w", err)
	}

	return nil
}

// GetLeaderboardEntries returns all entries sorted by score descending
func GetLeaderboardEntries(ctx context.Context) ([]*game.LeaderboardEntry, error) {
	query := `
		SELECT id, name, score, created_at
		FROM leaderboard
		ORDER BY score DESC, created_at ASC
	`

	rows, err := PostgresPool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*game.LeaderboardEntry
	for rows.Next() {
		var entry game.LeaderboardEntry
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Score, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

/* =========================
   STORE ADAPTER
========================= */

// Store adapts the pooled queries to the game package store interfaces.
type Store struct{}

func (Store) CreateSession(ctx context.Context, session *game.GameSession) error {
	return CreateGameSession(ctx, session)
}

func (Store) GetSession(ctx context.Context, id string) (*game.GameSession, error) {
	return GetGameSession(ctx, id)
}

func (Store) FinalizeSession(ctx context.Context, id string, validatedScore int) (bool, error) {
	return FinalizeGameSession(ctx, id, validatedScore)
}

func (Store) InsertEntry(ctx context.Context, entry *game.LeaderboardEntry) error {
	return InsertLeaderboardEntry(ctx, entry)
}

func (Store) AllEntries(ctx context.Context) ([]*game.LeaderboardEntry, error) {
	return GetLeaderboardEntries(ctx)
}
