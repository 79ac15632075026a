package storage

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Member is a chat participant the bot has seen.
type Member struct {
	ChatID      int64
	UserID      int64
	DisplayName string
	IsBot       bool
}

// RosterStore tracks who is present in each chat.
type RosterStore interface {
	UpsertMember(m Member) error
	RemoveMember(chatID, userID int64) error
	Members(chatID int64) ([]Member, error)
}

// SQLiteStore implements RosterStore and the scrape run history on SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (or creates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Configure SQLite with WAL mode and busy timeout for better concurrency
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}

	// The file exists once the schema is created; in-memory databases have none.
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		db.Close()
		return nil, fmt.Errorf("failed to set database permissions: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) init() error {
	membersQuery := `
	CREATE TABLE IF NOT EXISTS chat_members (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		chat_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		display_name TEXT NOT NULL,
		is_bot INTEGER NOT NULL DEFAULT 0,
		first_seen DATETIME NOT NULL,
		UNIQUE (chat_id, user_id)
	);
	`
	if _, err := s.db.Exec(membersQuery); err != nil {
		return fmt.Errorf("failed to create chat_members table: %w", err)
	}

	runsQuery := `
	CREATE TABLE IF NOT EXISTS scrape_runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		entries INTEGER NOT NULL DEFAULT 0,
		error TEXT
	);
	`
	if _, err := s.db.Exec(runsQuery); err != nil {
		return fmt.Errorf("failed to create scrape_runs table: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// UpsertMember records a member of a chat. A known member keeps its original
// position; its display name and bot flag are refreshed.
func (s *SQLiteStore) UpsertMember(m Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO chat_members (chat_id, user_id, display_name, is_bot, first_seen)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(chat_id, user_id) DO UPDATE SET
			display_name = excluded.display_name,
			is_bot = excluded.is_bot
	`, m.ChatID, m.UserID, m.DisplayName, m.IsBot, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert chat member: %w", err)
	}
	return nil
}

// RemoveMember forgets a member of a chat.
func (s *SQLiteStore) RemoveMember(chatID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM chat_members WHERE chat_id = ? AND user_id = ?`, chatID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove chat member: %w", err)
	}
	return nil
}

// Members returns the members of a chat in the order they were first seen.
func (s *SQLiteStore) Members(chatID int64) ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT chat_id, user_id, display_name, is_bot FROM chat_members WHERE chat_id = ? ORDER BY seq`,
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ChatID, &m.UserID, &m.DisplayName, &m.IsBot); err != nil {
			return nil, fmt.Errorf("failed to scan chat member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}
