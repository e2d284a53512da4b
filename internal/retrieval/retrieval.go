// Package retrieval turns partial slot constraints into a ranked list of
// catalog items. When the exact constraints match nothing in the primary
// catalog, a fixed relaxation cascade progressively loosens them (drop
// genre, then try adjacent CEFR levels) until something matches or the
// cascade is exhausted. The tabular source is then queried under the same
// relaxed constraints so both tiers report under identical criteria.
package retrieval

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"linguacart/internal/catalog"
	"linguacart/internal/lexicon"
)

// PageSize is the number of items one "show more" step advances by.
const PageSize = 3

// Constraints is a partial filter over catalog items. Zero-valued fields
// are absent and match everything; the price bounds are inclusive.
type Constraints struct {
	Language string
	Level    string
	Genre    string
	Format   string
	PriceMin *float64
	PriceMax *float64
}

// ResultSet is the outcome of one retrieval: the combined ranked list
// (structured tier first, tabular tier after — deliberately not re-sorted
// into one ladder, so provenance ordering survives) plus the constraint
// tuple that actually produced it.
type ResultSet struct {
	Items  []catalog.Item
	Chosen Constraints
}

// Engine answers constraint queries over a loaded catalog source.
type Engine struct {
	src    *catalog.Source
	logger *zap.Logger
}

// New creates an engine over the given source. A nil logger is replaced
// with a no-op one.
func New(src *catalog.Source, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{src: src, logger: logger}
}

// Retrieve runs the relaxation cascade over the primary catalog, queries
// the tabular catalog under the chosen constraints, ranks both tiers
// independently and concatenates them structured-first. The cascade stops
// at the first attempt with results; if every attempt is empty the final
// empty set stands under the original constraints.
func (e *Engine) Retrieve(c Constraints) ResultSet {
	chosen := c
	var structured []catalog.Item
	for i, attempt := range relaxationAttempts(c) {
		structured = e.filterPrimary(attempt)
		e.logger.Debug("retrieval attempt",
			zap.Int("attempt", i),
			zap.String("level", attempt.Level),
			zap.String("genre", attempt.Genre),
			zap.Int("hits", len(structured)))
		if len(structured) > 0 {
			chosen = attempt
			break
		}
	}

	rank(structured)
	tabular := e.filterTabular(chosen)
	rank(tabular)

	return ResultSet{Items: append(structured, tabular...), Chosen: chosen}
}

// relaxationAttempts builds the ordered constraint tuples to try: exact,
// genre dropped, then for each adjacent level (one step up, one step down)
// the same two attempts again. Price and format are never relaxed.
func relaxationAttempts(c Constraints) []Constraints {
	attempts := []Constraints{c, dropGenre(c)}
	for _, nb := range lexicon.NeighborLevels(c.Level) {
		at := c
		at.Level = nb
		attempts = append(attempts, at, dropGenre(at))
	}
	return attempts
}

func dropGenre(c Constraints) Constraints {
	c.Genre = ""
	return c
}

func (e *Engine) filterPrimary(c Constraints) []catalog.Item {
	var out []catalog.Item
	for _, it := range e.src.Primary {
		if matches(it, c) {
			out = append(out, it)
		}
	}
	return out
}

// matches applies every present constraint: case-insensitive equality for
// language and genre, uppercase equality for level, set membership for
// format, inclusive bounds for price.
func matches(it catalog.Item, c Constraints) bool {
	if c.Language != "" && !strings.EqualFold(it.Language, c.Language) {
		return false
	}
	if c.Level != "" && strings.ToUpper(it.Level) != strings.ToUpper(c.Level) {
		return false
	}
	if c.Genre != "" && !strings.EqualFold(it.Genre, c.Genre) {
		return false
	}
	if c.Format != "" && !hasFormat(it.Formats, c.Format) {
		return false
	}
	if c.PriceMin != nil && it.Price < *c.PriceMin {
		return false
	}
	if c.PriceMax != nil && it.Price > *c.PriceMax {
		return false
	}
	return true
}

func hasFormat(formats []string, want string) bool {
	for _, f := range formats {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}

// filterTabular applies the chosen constraints to the tabular source in its
// native schema (language as code, genre as topic, single format) and
// normalizes the matches. A Readers genre has no topic equivalent in the
// tabular schema, so it is left unfiltered there rather than matching
// nothing.
func (e *Engine) filterTabular(c Constraints) []catalog.Item {
	var langCode string
	if c.Language != "" {
		langCode = lexicon.LanguageToCode[strings.ToLower(c.Language)]
	}
	var topic string
	if c.Genre != "" {
		switch strings.ToLower(c.Genre) {
		case "textbook":
			topic = "coursebook"
		case "grammar":
			topic = "grammar"
		case "vocabulary":
			topic = "vocabulary"
		}
	}

	var out []catalog.Item
	for _, r := range e.src.Tabular {
		if langCode != "" && !strings.EqualFold(r.Language, langCode) {
			continue
		}
		if c.Level != "" && strings.ToUpper(r.Level) != strings.ToUpper(c.Level) {
			continue
		}
		if topic != "" && !strings.EqualFold(r.Topic, topic) {
			continue
		}
		if c.Format != "" && !strings.EqualFold(r.Format, c.Format) {
			continue
		}
		if c.PriceMin != nil && r.Price < *c.PriceMin {
			continue
		}
		if c.PriceMax != nil && r.Price > *c.PriceMax {
			continue
		}
		out = append(out, r.Normalize())
	}
	return out
}

// rank orders items by descending rating, ties broken by ascending price.
// The sort is stable, so equal (rating, price) pairs keep their source
// order.
func rank(items []catalog.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Rating != items[j].Rating {
			return items[i].Rating > items[j].Rating
		}
		return items[i].Price < items[j].Price
	})
}
