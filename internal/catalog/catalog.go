// Package catalog loads the two book catalog sources and normalizes them
// into one item shape. The primary source is a structured JSON catalog; the
// tabular source is a CSV export with a different schema (language codes,
// free-text topics, single-value formats) that gets adapted before the
// retrieval engine ever sees it. Both sources are read once at startup and
// are immutable afterwards.
package catalog

import (
	"bytes"
	"embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"linguacart/internal/lexicon"
)

//go:embed data/catalog.json data/books_catalog.csv
var defaultData embed.FS

// Item is the normalized catalog record both sources map into.
type Item struct {
	ISBN      string   `json:"isbn"`
	Title     string   `json:"title"`
	Language  string   `json:"language"`
	Level     string   `json:"cefr"`
	Genre     string   `json:"genre"`
	Formats   []string `json:"format"`
	Price     float64  `json:"price"`
	Publisher string   `json:"publisher"`
	Year      int      `json:"year"`
	Rating    float64  `json:"rating"`
	Stock     int      `json:"stock"`
}

// Row is one record of the tabular CSV source, in its native schema.
type Row struct {
	Title        string
	Series       string
	Author       string
	Publisher    string
	Language     string // two-letter code, not a name
	Level        string
	Topic        string // free text, mapped onto a genre tag
	LearningGoal string
	Format       string // single value, not a set
	Price        float64
	Rating       float64
}

// Source bundles the two catalog views the retrieval engine consumes.
type Source struct {
	Primary []Item
	Tabular []Row
}

// Load reads both catalog sources. Empty paths fall back to the embedded
// default datasets. The two sources are independent files, so they load
// concurrently; the session loop itself starts only after both are in
// memory.
func Load(primaryPath, tabularPath string, logger *zap.Logger) (*Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	src := &Source{}
	var g errgroup.Group
	g.Go(func() error {
		items, err := loadPrimary(primaryPath)
		if err != nil {
			return fmt.Errorf("primary catalog: %w", err)
		}
		src.Primary = items
		return nil
	})
	g.Go(func() error {
		rows, err := loadTabular(tabularPath)
		if err != nil {
			return fmt.Errorf("tabular catalog: %w", err)
		}
		src.Tabular = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("catalog loaded",
		zap.Int("primary_items", len(src.Primary)),
		zap.Int("tabular_rows", len(src.Tabular)))
	return src, nil
}

// ItemByISBN looks up an item by key across the primary catalog plus any
// extra items (typically normalized tabular rows from the last retrieval,
// so cart lines over synthetic ISBNs still resolve to a price).
func (s *Source) ItemByISBN(isbn string, extra []Item) (Item, bool) {
	for _, it := range s.Primary {
		if it.ISBN == isbn {
			return it, true
		}
	}
	for _, it := range extra {
		if it.ISBN == isbn {
			return it, true
		}
	}
	return Item{}, false
}

func loadPrimary(path string) ([]Item, error) {
	data, err := readSource(path, "data/catalog.json")
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return items, nil
}

func loadTabular(path string) ([]Row, error) {
	data, err := readSource(path, "data/books_catalog.csv")
	if err != nil {
		return nil, err
	}
	return parseRows(bytes.NewReader(data))
}

// readSource reads path from disk, or the named embedded default when path
// is empty. A missing or unreadable file is a fatal startup condition.
func readSource(path, embedded string) ([]byte, error) {
	if path == "" {
		return defaultData.ReadFile(embedded)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return data, nil
}

// parseRows reads the CSV header and decodes each record by column name.
// Unparsable numeric fields become zero rather than errors, matching how
// the rest of the system treats malformed numbers.
func parseRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		price, _ := strconv.ParseFloat(field(rec, "price"), 64)
		rating, _ := strconv.ParseFloat(field(rec, "rating"), 64)
		rows = append(rows, Row{
			Title:        field(rec, "title"),
			Series:       field(rec, "series"),
			Author:       field(rec, "author"),
			Publisher:    field(rec, "publisher"),
			Language:     field(rec, "language"),
			Level:        field(rec, "cefr"),
			Topic:        field(rec, "topic"),
			LearningGoal: field(rec, "learning_goal"),
			Format:       field(rec, "format"),
			Price:        price,
			Rating:       rating,
		})
	}
	return rows, nil
}

// Normalize maps a tabular row into the primary item shape: language code
// back to its canonical name, topic onto a genre tag, the single format
// wrapped into a set, and a synthetic content-addressed ISBN derived from
// title+publisher. The derivation is stable across calls; distinct editions
// sharing title and publisher collide, which is an accepted limitation.
func (r Row) Normalize() Item {
	lang, _ := lexicon.LanguageForCode(r.Language)

	title := r.Title
	if title == "" {
		title = "Untitled"
	}

	var formats []string
	if f := strings.TrimSpace(r.Format); f != "" {
		formats = []string{capitalize(f)}
	}

	return Item{
		ISBN:      SyntheticISBN(r.Title, r.Publisher),
		Title:     title,
		Language:  lang,
		Level:     strings.ToUpper(r.Level),
		Genre:     lexicon.GenreForTopic(r.Topic),
		Formats:   formats,
		Price:     r.Price,
		Publisher: r.Publisher,
		Rating:    r.Rating,
		Stock:     999,
	}
}

func capitalize(s string) string {
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}

// SyntheticISBN derives a stable key for a tabular row from its title and
// publisher. Content-addressed, not globally unique against real ISBNs.
func SyntheticISBN(title, publisher string) string {
	h := fnv.New64a()
	h.Write([]byte(title))
	h.Write([]byte{0})
	h.Write([]byte(publisher))
	return fmt.Sprintf("CSV-%010d", h.Sum64()%1e10)
}
