// Package store persists decks, slides, and templates in a local SQLite
// database. Slides are written whole: the element list serializes to a single
// JSON column so a save is one row, never a diff.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/deckforge/deckforge/internal/brand"
	"github.com/deckforge/deckforge/internal/model"
	"github.com/deckforge/deckforge/internal/templates"
	apperrors "github.com/deckforge/deckforge/pkg/errors"
)

// Deck is the persisted top-level record a set of slides hangs off.
type Deck struct {
	ID        string
	Name      string
	Tier      templates.AccessTier
	Brand     brand.Kit
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store wraps a SQLite database and provides CRUD operations for decks,
// slides, and template definitions.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL allows concurrent read/write access; busy_timeout makes writers
	// wait instead of failing with SQLITE_BUSY. synchronous=NORMAL is safe
	// under WAL and avoids an fsync per transaction.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS decks (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    tier TEXT NOT NULL DEFAULT 'free',
    brand_kit TEXT NOT NULL DEFAULT '{}',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS slides (
    id TEXT PRIMARY KEY,
    deck_id TEXT NOT NULL REFERENCES decks(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    position INTEGER NOT NULL,
    background TEXT NOT NULL DEFAULT '{}',
    elements TEXT NOT NULL DEFAULT '[]',
    template_id TEXT NOT NULL DEFAULT '',
    template_defaults TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_slides_deck ON slides(deck_id, position);
CREATE TABLE IF NOT EXISTS templates (
    id TEXT PRIMARY KEY,
    category TEXT NOT NULL,
    payload TEXT NOT NULL
);
`)
	return err
}

// SaveDeck upserts a deck record. CreatedAt is preserved on update;
// UpdatedAt is always bumped to now.
func (s *Store) SaveDeck(ctx context.Context, d Deck) error {
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	kit, err := json.Marshal(d.Brand)
	if err != nil {
		return err
	}
	tier := d.Tier
	if tier == "" {
		tier = templates.TierFree
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO decks (id, name, tier, brand_kit, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    tier = excluded.tier,
    brand_kit = excluded.brand_kit,
    updated_at = excluded.updated_at
`,
		d.ID, d.Name, string(tier), string(kit),
		d.CreatedAt.Format(time.RFC3339), now.Format(time.RFC3339))
	return err
}

// GetDeck returns a deck by id.
func (s *Store) GetDeck(ctx context.Context, id string) (Deck, error) {
	var name, tier, kit, created, updated string
	err := s.db.QueryRowContext(ctx, `SELECT name, tier, brand_kit, created_at, updated_at FROM decks WHERE id = ?`, id).
		Scan(&name, &tier, &kit, &created, &updated)
	if err == sql.ErrNoRows {
		return Deck{}, &apperrors.NotFoundError{Kind: "deck", ID: id}
	}
	if err != nil {
		return Deck{}, err
	}
	d := Deck{ID: id, Name: name, Tier: templates.AccessTier(tier)}
	if err := json.Unmarshal([]byte(kit), &d.Brand); err != nil {
		return Deck{}, err
	}
	d.CreatedAt, _ = time.Parse(time.RFC3339, created)
	d.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return d, nil
}

// ListDecks returns all decks ordered by most recently updated.
func (s *Store) ListDecks(ctx context.Context) ([]Deck, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, tier, brand_kit, created_at, updated_at FROM decks ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []Deck
	for rows.Next() {
		var id, name, tier, kit, created, updated string
		if err := rows.Scan(&id, &name, &tier, &kit, &created, &updated); err != nil {
			return nil, err
		}
		d := Deck{ID: id, Name: name, Tier: templates.AccessTier(tier)}
		if err := json.Unmarshal([]byte(kit), &d.Brand); err != nil {
			return nil, err
		}
		d.CreatedAt, _ = time.Parse(time.RFC3339, created)
		d.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

// DeleteDeck removes a deck and all of its slides.
func (s *Store) DeleteDeck(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM slides WHERE deck_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveSlide upserts a slide for the given deck, replacing its element list
// wholesale.
func (s *Store) SaveSlide(ctx context.Context, deckID string, doc model.Document) error {
	bg, err := json.Marshal(doc.Background)
	if err != nil {
		return err
	}
	elements, err := json.Marshal(doc.Elements)
	if err != nil {
		return err
	}
	if doc.Elements == nil {
		elements = []byte("[]")
	}
	defaults := []byte("{}")
	if len(doc.TemplateDefaults) > 0 {
		defaults, err = json.Marshal(doc.TemplateDefaults)
		if err != nil {
			return err
		}
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO slides (id, deck_id, name, position, background, elements, template_id, template_defaults)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    deck_id = excluded.deck_id,
    name = excluded.name,
    position = excluded.position,
    background = excluded.background,
    elements = excluded.elements,
    template_id = excluded.template_id,
    template_defaults = excluded.template_defaults
`,
		doc.ID, deckID, doc.Name, doc.Order, string(bg), string(elements), doc.TemplateID, string(defaults))
	return err
}

func scanSlide(id, name string, position int, bg, elements, templateID, defaults string) (model.Document, error) {
	doc := model.Document{ID: id, Name: name, Order: position, TemplateID: templateID}
	if err := json.Unmarshal([]byte(bg), &doc.Background); err != nil {
		return model.Document{}, err
	}
	if err := json.Unmarshal([]byte(elements), &doc.Elements); err != nil {
		return model.Document{}, err
	}
	if defaults != "" && defaults != "{}" {
		if err := json.Unmarshal([]byte(defaults), &doc.TemplateDefaults); err != nil {
			return model.Document{}, err
		}
	}
	return doc, nil
}

// GetSlide returns a single slide by id within a deck.
func (s *Store) GetSlide(ctx context.Context, deckID, slideID string) (model.Document, error) {
	var name, bg, elements, templateID, defaults string
	var position int
	err := s.db.QueryRowContext(ctx, `SELECT name, position, background, elements, template_id, template_defaults FROM slides WHERE deck_id = ? AND id = ?`, deckID, slideID).
		Scan(&name, &position, &bg, &elements, &templateID, &defaults)
	if err == sql.ErrNoRows {
		return model.Document{}, &apperrors.NotFoundError{Kind: "slide", ID: slideID}
	}
	if err != nil {
		return model.Document{}, err
	}
	return scanSlide(slideID, name, position, bg, elements, templateID, defaults)
}

// ListSlides returns all slides of a deck in presentation order.
func (s *Store) ListSlides(ctx context.Context, deckID string) ([]model.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, position, background, elements, template_id, template_defaults FROM slides WHERE deck_id = ? ORDER BY position ASC`, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slides []model.Document
	for rows.Next() {
		var id, name, bg, elements, templateID, defaults string
		var position int
		if err := rows.Scan(&id, &name, &position, &bg, &elements, &templateID, &defaults); err != nil {
			return nil, err
		}
		doc, err := scanSlide(id, name, position, bg, elements, templateID, defaults)
		if err != nil {
			return nil, err
		}
		slides = append(slides, doc)
	}
	return slides, rows.Err()
}

// DeleteSlide removes a slide by id.
func (s *Store) DeleteSlide(ctx context.Context, deckID, slideID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM slides WHERE deck_id = ? AND id = ?`, deckID, slideID)
	return err
}

// SaveTemplate upserts a template definition. The whole template is stored as
// one JSON payload; category is duplicated into its own column for listing.
func (s *Store) SaveTemplate(ctx context.Context, t templates.Template) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT OR REPLACE INTO templates (id, category, payload) VALUES (?, ?, ?)`,
		t.ID, t.Category, string(payload))
	return err
}

// GetTemplate returns a template by id. Satisfies templates.Source.
func (s *Store) GetTemplate(ctx context.Context, id string) (templates.Template, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM templates WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return templates.Template{}, &apperrors.NotFoundError{Kind: "template", ID: id}
	}
	if err != nil {
		return templates.Template{}, err
	}
	var t templates.Template
	if err := json.Unmarshal([]byte(payload), &t); err != nil {
		return templates.Template{}, err
	}
	return t, nil
}

// ListTemplates returns all templates, optionally filtered by category.
func (s *Store) ListTemplates(ctx context.Context, category string) ([]templates.Template, error) {
	var rows *sql.Rows
	var err error
	if category == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT payload FROM templates ORDER BY id ASC`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT payload FROM templates WHERE category = ? ORDER BY id ASC`, category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []templates.Template
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var t templates.Template
		if err := json.Unmarshal([]byte(payload), &t); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
