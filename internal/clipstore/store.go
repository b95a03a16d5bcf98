// Package clipstore persists clipboard history and text templates in SQLite.
package clipstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	// DefaultMaxItems caps the history; older entries are dropped.
	DefaultMaxItems = 200
	previewRunes    = 100
)

var ErrNotFound = errors.New("clipboard entry not found")

const schema = `
CREATE TABLE IF NOT EXISTS clips (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	content     TEXT NOT NULL,
	preview     TEXT NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS clip_tags (
	clip_id  TEXT NOT NULL REFERENCES clips(id) ON DELETE CASCADE,
	tag      TEXT NOT NULL,
	PRIMARY KEY (clip_id, tag)
);

CREATE TABLE IF NOT EXISTS templates (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	name        TEXT NOT NULL,
	content     TEXT NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_clip_tags_tag ON clip_tags(tag);
`

// Entry is one clipboard history item.
type Entry struct {
	ID        string
	Content   string
	Preview   string
	CreatedAt time.Time
	Tags      []string
}

// Template is a named snippet.
type Template struct {
	ID        string
	Name      string
	Content   string
	CreatedAt time.Time
}

// TagCount is a tag with the number of entries carrying it.
type TagCount struct {
	Name  string
	Count int
}

// Filter narrows List. Term matches content or preview case-insensitively;
// Tag requires an exact tag. Limit <= 0 means no limit.
type Filter struct {
	Term  string
	Tag   string
	Limit int
}

// Store is a SQLite-backed clipboard history.
type Store struct {
	db       *sql.DB
	maxItems int
	now      func() time.Time
}

// Option customizes Open.
type Option func(*Store)

// WithMaxItems overrides DefaultMaxItems.
func WithMaxItems(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxItems = n
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens (or creates) the database at path. ":memory:" is accepted.
func Open(path string, opts ...Option) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create clipboard dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open clipboard db: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init clipboard schema: %w", err)
	}

	s := &Store{db: db, maxItems: DefaultMaxItems, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Add prepends content to the history and trims it to the cap. Adding the
// same content as the newest entry returns that entry unchanged.
func (s *Store) Add(ctx context.Context, content string, tags ...string) (Entry, error) {
	if content == "" {
		return Entry{}, errors.New("empty clipboard content")
	}

	latest, err := s.List(ctx, Filter{Limit: 1})
	if err != nil {
		return Entry{}, err
	}
	if len(latest) == 1 && latest[0].Content == content {
		return latest[0], nil
	}

	e := Entry{
		ID:        uuid.NewString(),
		Content:   content,
		Preview:   Preview(content),
		CreatedAt: s.now().UTC(),
		Tags:      normalizeTags(tags),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO clips (id, content, preview, created_at) VALUES (?, ?, ?, ?)`,
		e.ID, e.Content, e.Preview, e.CreatedAt.Format(time.RFC3339Nano)); err != nil {
		return Entry{}, fmt.Errorf("insert clip: %w", err)
	}
	if err := insertTags(ctx, tx, e.ID, e.Tags); err != nil {
		return Entry{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM clips WHERE seq NOT IN (SELECT seq FROM clips ORDER BY seq DESC LIMIT ?)`,
		s.maxItems); err != nil {
		return Entry{}, fmt.Errorf("trim history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("commit: %w", err)
	}
	return e, nil
}

// List returns entries newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if term := strings.TrimSpace(f.Term); term != "" {
		where = append(where, `(lower(c.content) LIKE ? OR lower(c.preview) LIKE ?)`)
		like := "%" + strings.ToLower(term) + "%"
		args = append(args, like, like)
	}
	if f.Tag != "" {
		where = append(where, `EXISTS (SELECT 1 FROM clip_tags t WHERE t.clip_id = c.id AND t.tag = ?)`)
		args = append(args, f.Tag)
	}

	q := `SELECT c.id, c.content, c.preview, c.created_at FROM clips c`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY c.seq DESC"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list clips: %w", err)
	}
	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.ID, &e.Content, &e.Preview, &created); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan clip: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		entries = append(entries, e)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		tags, err := s.tags(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Tags = tags
	}
	return entries, nil
}

func (s *Store) tags(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tag FROM clip_tags WHERE clip_id = ? ORDER BY tag`, id)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()
	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// Delete removes one entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete clip: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// Clear removes every history entry. Templates are kept.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM clips`); err != nil {
		return fmt.Errorf("clear clips: %w", err)
	}
	return nil
}

// SetTags replaces the tags of an entry.
func (s *Store) SetTags(ctx context.Context, id string, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM clips WHERE id = ?`, id).Scan(&exists); err != nil {
		return fmt.Errorf("lookup clip: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM clip_tags WHERE clip_id = ?`, id); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	if err := insertTags(ctx, tx, id, normalizeTags(tags)); err != nil {
		return err
	}
	return tx.Commit()
}

// TagCounts lists tags by how many entries carry them, most used first.
func (s *Store) TagCounts(ctx context.Context) ([]TagCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tag, COUNT(*) FROM clip_tags GROUP BY tag`)
	if err != nil {
		return nil, fmt.Errorf("count tags: %w", err)
	}
	defer rows.Close()
	var out []TagCount
	for rows.Next() {
		var tc TagCount
		if err := rows.Scan(&tc.Name, &tc.Count); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// AddTemplate stores a named snippet.
func (s *Store) AddTemplate(ctx context.Context, name, content string) (Template, error) {
	name = strings.TrimSpace(name)
	if name == "" || content == "" {
		return Template{}, errors.New("template needs a name and content")
	}
	tpl := Template{ID: uuid.NewString(), Name: name, Content: content, CreatedAt: s.now().UTC()}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO templates (id, name, content, created_at) VALUES (?, ?, ?, ?)`,
		tpl.ID, tpl.Name, tpl.Content, tpl.CreatedAt.Format(time.RFC3339Nano)); err != nil {
		return Template{}, fmt.Errorf("insert template: %w", err)
	}
	return tpl, nil
}

// Templates lists templates in creation order.
func (s *Store) Templates(ctx context.Context) ([]Template, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, content, created_at FROM templates ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	var out []Template
	for rows.Next() {
		var (
			tpl     Template
			created string
		)
		if err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.Content, &created); err != nil {
			return nil, err
		}
		tpl.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, tpl)
	}
	return out, rows.Err()
}

// DeleteTemplate removes a template.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	return nil
}

// Preview shortens content for list display.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewRunes {
		return content
	}
	return string(runes[:previewRunes]) + "..."
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func insertTags(ctx context.Context, tx *sql.Tx, id string, tags []string) error {
	for _, tag := range tags {
		if _, err := tx.ExecContext(ctx, `INSERT INTO clip_tags (clip_id, tag) VALUES (?, ?)`, id, tag); err != nil {
			return fmt.Errorf("insert tag: %w", err)
		}
	}
	return nil
}
