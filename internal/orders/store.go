// Package orders persists confirmed orders to a local SQLite file. Only
// completed checkouts land here; conversation state itself is never
// persisted.
package orders

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id              TEXT PRIMARY KEY,
	placed_at       TEXT NOT NULL,
	delivery_method TEXT NOT NULL,
	destination     TEXT NOT NULL,
	payment         TEXT NOT NULL,
	total           REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS order_lines (
	order_id   TEXT NOT NULL REFERENCES orders(id),
	isbn       TEXT NOT NULL,
	title      TEXT NOT NULL,
	quantity   INTEGER NOT NULL,
	unit_price REAL NOT NULL
);
`

// Line is one ordered item.
type Line struct {
	ISBN      string
	Title     string
	Quantity  int
	UnitPrice float64
}

// Record is a confirmed order.
type Record struct {
	ID             string
	PlacedAt       time.Time
	DeliveryMethod string
	Destination    string // courier address or pickup location
	Payment        string
	Total          float64
	Lines          []Line
}

// Store is a SQLite-backed order ledger.
type Store struct {
	db *sql.DB
}

// Open initializes the database at path, creating the directory and schema
// as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes one order and its lines atomically.
func (s *Store) Save(rec Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO orders (id, placed_at, delivery_method, destination, payment, total) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.PlacedAt.UTC().Format(time.RFC3339), rec.DeliveryMethod, rec.Destination, rec.Payment, rec.Total,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, l := range rec.Lines {
		_, err = tx.Exec(
			`INSERT INTO order_lines (order_id, isbn, title, quantity, unit_price) VALUES (?, ?, ?, ?, ?)`,
			rec.ID, l.ISBN, l.Title, l.Quantity, l.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert line: %w", err)
		}
	}
	return tx.Commit()
}

// Recent returns up to limit orders, newest first, with their lines.
func (s *Store) Recent(limit int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, placed_at, delivery_method, destination, payment, total
		 FROM orders ORDER BY placed_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		var placedAt string
		if err := rows.Scan(&rec.ID, &placedAt, &rec.DeliveryMethod, &rec.Destination, &rec.Payment, &rec.Total); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		rec.PlacedAt, _ = time.Parse(time.RFC3339, placedAt)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}

	for i := range recs {
		lines, err := s.lines(recs[i].ID)
		if err != nil {
			return nil, err
		}
		recs[i].Lines = lines
	}
	return recs, nil
}

func (s *Store) lines(orderID string) ([]Line, error) {
	rows, err := s.db.Query(
		`SELECT isbn, title, quantity, unit_price FROM order_lines WHERE order_id = ?`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query lines: %w", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ISBN, &l.Title, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// NewOrderID returns a fresh user-facing order identifier.
func NewOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
