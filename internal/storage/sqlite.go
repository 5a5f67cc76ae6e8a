// Package storage persists what survives restarts: calendar conversions,
// which never change once the converter has answered, and the chats
// subscribed to the morning digest.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type Storage struct {
	db *sql.DB
}

func New(dbPath string) (*Storage, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			key TEXT PRIMARY KEY,
			gy INTEGER NOT NULL,
			gm INTEGER NOT NULL,
			gd INTEGER NOT NULL,
			hy INTEGER NOT NULL,
			hm TEXT NOT NULL,
			hd INTEGER NOT NULL,
			hebrew TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
			chat_id INTEGER PRIMARY KEY,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// Subscribe adds a chat to the morning digest. Subscribing twice is a no-op.
func (s *Storage) Subscribe(chatID int64) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO subscriptions (chat_id) VALUES (?)`, chatID)
	if err != nil {
		return fmt.Errorf("subscribe chat: %w", err)
	}
	return nil
}

// Unsubscribe removes a chat from the morning digest.
func (s *Storage) Unsubscribe(chatID int64) error {
	_, err := s.db.Exec(`DELETE FROM subscriptions WHERE chat_id = ?`, chatID)
	if err != nil {
		return fmt.Errorf("unsubscribe chat: %w", err)
	}
	return nil
}

// ListSubscribers returns every chat subscribed to the digest.
func (s *Storage) ListSubscribers() ([]int64, error) {
	rows, err := s.db.Query(`SELECT chat_id FROM subscriptions ORDER BY chat_id`)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
