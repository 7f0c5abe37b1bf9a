package audit

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Log records assistant usage in SQLite. Rows carry run metadata only:
// no prompt text, no completion text, no credentials, no field values.
type Log struct {
	db    *sql.DB
	model string
	log   *slog.Logger
}

// Entry is one usage row.
type Entry struct {
	ID              int64     `json:"id"`
	Function        string    `json:"function"`
	Status          string    `json:"status"`
	ErrorKind       string    `json:"error_kind,omitempty"`
	DurationMS      int64     `json:"duration_ms"`
	Model           string    `json:"model"`
	PromptChars     int       `json:"prompt_chars"`
	CompletionChars int       `json:"completion_chars"`
	Timestamp       time.Time `json:"timestamp"`
}

// Open creates or opens the usage database at path. model is stamped
// on every row so reports stay meaningful across config changes.
func Open(path, model string, logger *slog.Logger) (*Log, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open usage db: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS usage_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		function TEXT NOT NULL,
		status TEXT NOT NULL,
		error_kind TEXT,
		duration_ms INTEGER NOT NULL,
		model TEXT NOT NULL,
		prompt_chars INTEGER NOT NULL,
		completion_chars INTEGER NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create usage table: %w", err)
	}
	return &Log{db: db, model: model, log: logger}, nil
}

// Disabled returns a no-op log for deployments that switch auditing
// off.
func Disabled() *Log {
	return &Log{}
}

// Record inserts one usage row. Best effort: failures are logged, not
// returned, so a broken usage database never fails a run.
func (l *Log) Record(functionID, status, errorKind string, duration time.Duration, promptChars, completionChars int) {
	if l.db == nil {
		return
	}
	_, err := l.db.Exec(
		`INSERT INTO usage_log (function, status, error_kind, duration_ms, model, prompt_chars, completion_chars)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		functionID, status, errorKind, duration.Milliseconds(), l.model, promptChars, completionChars,
	)
	if err != nil {
		l.log.Warn("usage record failed", "error", err)
	}
}

// Recent returns the newest entries, most recent first.
func (l *Log) Recent(limit int) ([]Entry, error) {
	if l.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.Query(
		`SELECT id, function, status, error_kind, duration_ms, model, prompt_chars, completion_chars, timestamp
		 FROM usage_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query usage log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind sql.NullString
		if err := rows.Scan(&e.ID, &e.Function, &e.Status, &kind, &e.DurationMS, &e.Model, &e.PromptChars, &e.CompletionChars, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		e.ErrorKind = kind.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (l *Log) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}
