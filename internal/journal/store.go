package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/ninjachat/pkg/core/apperr"
)

// Conversation is one run of a client
type Conversation struct {
	ID        string            `json:"id"`
	Variant   string            `json:"variant"`
	Model     string            `json:"model"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	StartedAt time.Time         `json:"started_at"`
}

// Turn records one request/response cycle, successful or not
type Turn struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	UserText       string    `json:"user_text"`
	Reply          string    `json:"reply,omitempty"`
	ArtifactPath   string    `json:"artifact_path,omitempty"`
	Voice          string    `json:"voice,omitempty"`
	Error          string    `json:"error,omitempty"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
}

// Failed reports whether the turn ended in an error
func (t *Turn) Failed() bool {
	return t.Error != ""
}

// Duration returns how long the turn took
func (t *Turn) Duration() time.Duration {
	return t.FinishedAt.Sub(t.StartedAt)
}

// Store persists conversations and turns in SQLite
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds configuration for the SQLite journal
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/journal.db",
	}
}

// Open creates or opens the journal database
func Open(cfg Config) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperr.Persistence("create journal directory", err)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	if err != nil {
		return nil, apperr.Persistence("open journal", err)
	}

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, apperr.Persistence("initialize journal schema", err)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		variant TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		metadata TEXT,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS turns (
		id TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL,
		user_text TEXT NOT NULL,
		reply TEXT NOT NULL DEFAULT '',
		artifact_path TEXT NOT NULL DEFAULT '',
		voice TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		FOREIGN KEY (conversation_id) REFERENCES conversations(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_turns_conversation ON turns(conversation_id);
	CREATE INDEX IF NOT EXISTS idx_turns_started ON turns(started_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// StartConversation records the start of a client run
func (s *Store) StartConversation(ctx context.Context, variant, model string, metadata map[string]string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := &Conversation{
		ID:        uuid.New().String(),
		Variant:   variant,
		Model:     model,
		Metadata:  metadata,
		StartedAt: time.Now(),
	}

	var metadataJSON []byte
	if conv.Metadata != nil {
		metadataJSON, _ = sonic.Marshal(conv.Metadata)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, variant, model, metadata, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, conv.ID, conv.Variant, conv.Model, metadataJSON, conv.StartedAt)
	if err != nil {
		return nil, apperr.Persistence("create conversation", err)
	}

	return conv, nil
}

// GetConversation retrieves a conversation by ID, nil if absent
func (s *Store) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, variant, model, metadata, started_at
		FROM conversations WHERE id = ?
	`, id)

	var conv Conversation
	var metadataJSON sql.NullString

	err := row.Scan(&conv.ID, &conv.Variant, &conv.Model, &metadataJSON, &conv.StartedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, apperr.Persistence("get conversation", err)
	}

	if metadataJSON.Valid && metadataJSON.String != "" {
		sonic.Unmarshal([]byte(metadataJSON.String), &conv.Metadata)
	}

	return &conv, nil
}

// RecordTurn stores a finished turn
func (s *Store) RecordTurn(ctx context.Context, turn *Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if turn.ConversationID == "" {
		return apperr.New(apperr.KindPersistence, "record turn", "conversation ID is required")
	}
	if turn.ID == "" {
		turn.ID = uuid.New().String()
	}
	if turn.FinishedAt.IsZero() {
		turn.FinishedAt = time.Now()
	}
	if turn.StartedAt.IsZero() {
		turn.StartedAt = turn.FinishedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO turns (id, conversation_id, user_text, reply, artifact_path, voice, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, turn.ID, turn.ConversationID, turn.UserText, turn.Reply, turn.ArtifactPath,
		turn.Voice, turn.Error, turn.StartedAt, turn.FinishedAt)
	if err != nil {
		return apperr.Persistence("record turn", fmt.Errorf("failed to insert turn: %w", err))
	}

	return nil
}

// RecentTurns returns the newest turns across all conversations, newest first
func (s *Store) RecentTurns(ctx context.Context, limit int) ([]*Turn, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryTurns(ctx, `
		SELECT id, conversation_id, user_text, reply, artifact_path, voice, error, started_at, finished_at
		FROM turns ORDER BY started_at DESC, rowid DESC LIMIT ?
	`, limit)
}

// ConversationTurns returns the turns of one conversation in order
func (s *Store) ConversationTurns(ctx context.Context, conversationID string) ([]*Turn, error) {
	return s.queryTurns(ctx, `
		SELECT id, conversation_id, user_text, reply, artifact_path, voice, error, started_at, finished_at
		FROM turns WHERE conversation_id = ? ORDER BY started_at ASC, rowid ASC
	`, conversationID)
}

func (s *Store) queryTurns(ctx context.Context, query string, args ...interface{}) ([]*Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Persistence("query turns", err)
	}
	defer rows.Close()

	var turns []*Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.ConversationID, &t.UserText, &t.Reply, &t.ArtifactPath,
			&t.Voice, &t.Error, &t.StartedAt, &t.FinishedAt); err != nil {
			return nil, apperr.Persistence("scan turn", err)
		}
		turns = append(turns, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("query turns", err)
	}
	return turns, nil
}

// Statistics returns journal statistics
func (s *Store) Statistics(ctx context.Context) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]interface{})

	var totalConvs int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversations`).Scan(&totalConvs); err != nil {
		return nil, apperr.Persistence("count conversations", err)
	}
	stats["total_conversations"] = totalConvs

	var totalTurns, failedTurns int64
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM turns`).Scan(&totalTurns)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM turns WHERE error != ''`).Scan(&failedTurns)
	stats["total_turns"] = totalTurns
	stats["failed_turns"] = failedTurns

	if totalConvs > 0 {
		stats["avg_turns_per_conversation"] = float64(totalTurns) / float64(totalConvs)
	}

	return stats, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
