// Package index maintains a SQLite index over the active cards of one or
// more board documents. The documents stay the source of truth: the
// database file is recreated on every Open and filled with Load.
package index

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// FileName is the index database file created in the data directory.
const FileName = "index.db"

// dueLayout is fixed width so that stored due dates sort as text.
const dueLayout = "2006-01-02T15:04:05.000000000Z"

// ErrClosed is returned by every method after Close.
var ErrClosed = errors.New("index closed")

// Entry is one indexed card.
type Entry struct {
	Doc       string
	CardID    string
	ListID    string
	ListTitle string
	Position  int
	Title     string
	DueDate   *time.Time
	Checked   int
	Total     int
}

// Index is a card index backed by SQLite.
type Index struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

// Open creates a fresh index in dataDir, creating the directory if needed.
// Any index left by an earlier run is discarded.
func Open(dataDir string) (*Index, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	path := filepath.Join(dataDir, FileName)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("removing old index: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Index{db: db, path: path}, nil
}

// Path returns the database file path.
func (x *Index) Path() string { return x.path }

// Load replaces everything indexed for doc with the active cards of b.
// The replacement is transactional.
func (x *Index) Load(ctx context.Context, doc string, b types.Board) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.db == nil {
		return ErrClosed
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM card_labels WHERE doc = ?", doc); err != nil {
		return fmt.Errorf("clearing labels: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM cards WHERE doc = ?", doc); err != nil {
		return fmt.Errorf("clearing cards: %w", err)
	}

	insertCard, err := tx.PrepareContext(ctx, `INSERT INTO cards
		(doc, card_id, list_id, list_title, position, title, due_date, checked, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing card insert: %w", err)
	}
	defer insertCard.Close()
	insertLabel, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO card_labels
		(doc, card_id, label_id, title, color) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing label insert: %w", err)
	}
	defer insertLabel.Close()

	for _, l := range b.Lists {
		for pos, c := range l.Cards {
			var due any
			if c.DueDate != nil {
				due = c.DueDate.UTC().Format(dueLayout)
			}
			checked, total := c.Progress()
			if _, err := insertCard.ExecContext(ctx, doc, c.ID, l.ID, l.Title, pos, c.Title, due, checked, total); err != nil {
				return fmt.Errorf("indexing card %s: %w", c.ID, err)
			}
			for _, lb := range c.Labels {
				if _, err := insertLabel.ExecContext(ctx, doc, c.ID, lb.ID, lb.Title, string(lb.Color)); err != nil {
					return fmt.Errorf("indexing label %s of card %s: %w", lb.ID, c.ID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

const selectEntries = `SELECT c.doc, c.card_id, c.list_id, c.list_title, c.position,
	c.title, c.due_date, c.checked, c.total FROM cards c`

// Due returns cards with a due date strictly before the given time,
// soonest first.
func (x *Index) Due(ctx context.Context, before time.Time) ([]Entry, error) {
	return x.query(ctx, selectEntries+`
		WHERE c.due_date IS NOT NULL AND c.due_date < ?
		ORDER BY c.due_date, c.doc, c.rowid`,
		before.UTC().Format(dueLayout))
}

// ByLabel returns cards carrying a label with the given title, in document
// and board order.
func (x *Index) ByLabel(ctx context.Context, title string) ([]Entry, error) {
	return x.query(ctx, selectEntries+`
		WHERE EXISTS (SELECT 1 FROM card_labels l
			WHERE l.doc = c.doc AND l.card_id = c.card_id AND l.title = ?)
		ORDER BY c.doc, c.rowid`,
		title)
}

// Count returns the number of indexed cards.
func (x *Index) Count(ctx context.Context) (int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.db == nil {
		return 0, ErrClosed
	}
	var n int
	if err := x.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cards").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cards: %w", err)
	}
	return n, nil
}

func (x *Index) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.db == nil {
		return nil, ErrClosed
	}

	rows, err := x.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var due sql.NullString
		if err := rows.Scan(&e.Doc, &e.CardID, &e.ListID, &e.ListTitle, &e.Position,
			&e.Title, &due, &e.Checked, &e.Total); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if due.Valid {
			t, err := time.Parse(dueLayout, due.String)
			if err != nil {
				return nil, fmt.Errorf("parsing due date of %s: %w", e.CardID, err)
			}
			e.DueDate = &t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database. It is idempotent.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.db == nil {
		return nil
	}
	err := x.db.Close()
	x.db = nil
	return err
}
