package prompt

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"maic/internal/logging"
)

// Store persists the last good template set in SQLite. The original
// deployment cached remote prompt files locally for the same reason:
// a broken or unreachable prompts.yaml must not leave the tutor without
// the templates that were working yesterday.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the template cache at dbPath.
func OpenStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template cache %s: %w", dbPath, err)
	}
	s := &Store{db: db}
	if err := s.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// EnsureSchema creates the prompt_templates table.
func (s *Store) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS prompt_templates (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode_key TEXT NOT NULL UNIQUE,
			file_version INTEGER NOT NULL DEFAULT 1,
			persona TEXT NOT NULL,
			system_instructions TEXT NOT NULL,
			citations_policy TEXT NOT NULL,
			guardrails TEXT,
			routing_hints TEXT,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_prompt_templates_mode ON prompt_templates(mode_key);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create template schema: %w", err)
	}
	return nil
}

// SaveFile replaces the cached template set with the given file.
// Returns the number of entries stored.
func (s *Store) SaveFile(ctx context.Context, f *File) (int, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Store.SaveFile")
	defer timer.Stop()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM prompt_templates`); err != nil {
		return 0, fmt.Errorf("failed to clear template cache: %w", err)
	}

	stored := 0
	now := time.Now().UTC()
	for key, entry := range f.Modes {
		guard, err := json.Marshal(entry.Guardrails)
		if err != nil {
			logging.Get(logging.CategoryStore).Error("failed to encode guardrails for %s: %v", key, err)
			continue
		}
		routing, err := json.Marshal(entry.RoutingHints)
		if err != nil {
			logging.Get(logging.CategoryStore).Error("failed to encode routing hints for %s: %v", key, err)
			continue
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO prompt_templates
				(mode_key, file_version, persona, system_instructions, citations_policy, guardrails, routing_hints, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			key, f.Version, entry.Persona, entry.SystemInstructions,
			entry.CitationsPolicy, string(guard), string(routing), now,
		)
		if err != nil {
			return stored, fmt.Errorf("failed to store template %s: %w", key, err)
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return stored, fmt.Errorf("failed to commit template cache: %w", err)
	}
	logging.Get(logging.CategoryStore).Info("cached %d/%d mode templates", stored, len(f.Modes))
	return stored, nil
}

// LoadFile reads the cached template set. Returns an error when the
// cache is empty.
func (s *Store) LoadFile(ctx context.Context) (*File, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT mode_key, file_version, persona, system_instructions, citations_policy, guardrails, routing_hints
		FROM prompt_templates ORDER BY mode_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query template cache: %w", err)
	}
	defer rows.Close()

	f := &File{Modes: map[string]TemplateEntry{}}
	for rows.Next() {
		var (
			key, persona, sysins, cpol string
			guard, routing             sql.NullString
			version                    int
		)
		if err := rows.Scan(&key, &version, &persona, &sysins, &cpol, &guard, &routing); err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		entry := TemplateEntry{
			Persona:            persona,
			SystemInstructions: sysins,
			CitationsPolicy:    cpol,
		}
		if guard.Valid && guard.String != "" && guard.String != "null" {
			if err := json.Unmarshal([]byte(guard.String), &entry.Guardrails); err != nil {
				logging.Get(logging.CategoryStore).Warn("bad guardrails json for %s: %v", key, err)
			}
		}
		if routing.Valid && routing.String != "" && routing.String != "null" {
			if err := json.Unmarshal([]byte(routing.String), &entry.RoutingHints); err != nil {
				logging.Get(logging.CategoryStore).Warn("bad routing json for %s: %v", key, err)
			}
		}
		f.Version = version
		f.Modes[key] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read template cache: %w", err)
	}
	if len(f.Modes) == 0 {
		return nil, fmt.Errorf("template cache is empty")
	}
	return f, nil
}
