package game

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

const (
	historyMemoryDSN = ":memory:"
	historyTableName = "round_history"
)

// RoundRecord is one finished round.
type RoundRecord struct {
	RoundID    string
	PlayerName string
	Difficulty string
	Score      int
	Cause      string
	Ticks      int
	CreatedAt  time.Time
}

// RoundHistory logs finished rounds for the lifetime of the process.
type RoundHistory struct {
	db *sql.DB
}

// NewRoundHistory opens an in-memory history. An empty dsn means ":memory:".
func NewRoundHistory(dsn string) (*RoundHistory, error) {
	if dsn == "" {
		dsn = historyMemoryDSN
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening history database: %w", err)
	}
	// every new connection to :memory: is a fresh, empty database
	db.SetMaxOpenConns(1)

	history := &RoundHistory{db: db}
	if err := history.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return history, nil
}

func (h *RoundHistory) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + historyTableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		round_id TEXT NOT NULL UNIQUE,
		player_name TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		score INTEGER NOT NULL,
		cause TEXT NOT NULL,
		ticks INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);`

	if _, err := h.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("Round history table ensured.")
	return nil
}

func (h *RoundHistory) Record(record RoundRecord) error {
	const insertSQL = `
	INSERT INTO ` + historyTableName + ` (round_id, player_name, difficulty, score, cause, ticks, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?);`

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	_, err := h.db.Exec(insertSQL, record.RoundID, record.PlayerName, record.Difficulty,
		record.Score, record.Cause, record.Ticks, record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record round %s: %w", record.RoundID, err)
	}
	return nil
}

// Recent returns the latest rounds, newest first.
func (h *RoundHistory) Recent(limit int) ([]RoundRecord, error) {
	const selectSQL = `
	SELECT round_id, player_name, difficulty, score, cause, ticks, created_at
	FROM ` + historyTableName + `
	ORDER BY id DESC
	LIMIT ?;`

	rows, err := h.db.Query(selectSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query round history: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var record RoundRecord
		err := rows.Scan(&record.RoundID, &record.PlayerName, &record.Difficulty,
			&record.Score, &record.Cause, &record.Ticks, &record.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return records, nil
}

// Best returns the highest score recorded so far, 0 when empty.
func (h *RoundHistory) Best() (int, error) {
	const bestSQL = `SELECT COALESCE(MAX(score), 0) FROM ` + historyTableName + `;`
	var best int
	if err := h.db.QueryRow(bestSQL).Scan(&best); err != nil {
		return 0, fmt.Errorf("failed to get best score: %w", err)
	}
	return best, nil
}

func (h *RoundHistory) Count() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + historyTableName + `;`
	var count int
	if err := h.db.QueryRow(countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get round count: %w", err)
	}
	return count, nil
}

func (h *RoundHistory) Close() error {
	return h.db.Close()
}
