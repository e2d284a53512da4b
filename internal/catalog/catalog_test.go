package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_EmbeddedDefaults(t *testing.T) {
	src, err := Load("", "", zap.NewNop())
	require.NoError(t, err)
	require.NotEmpty(t, src.Primary)
	require.NotEmpty(t, src.Tabular)

	for _, it := range src.Primary {
		require.NotEmpty(t, it.ISBN, "item %q", it.Title)
		require.NotEmpty(t, it.Language, "item %q", it.Title)
		require.NotEmpty(t, it.Level, "item %q", it.Title)
		require.Greater(t, it.Price, 0.0, "item %q", it.Title)
	}
	for _, r := range src.Tabular {
		require.NotEmpty(t, r.Title)
		require.Len(t, r.Language, 2, "row %q carries a language code", r.Title)
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load("does/not/exist.json", "", zap.NewNop())
	require.Error(t, err)
	require.Contains(t, err.Error(), "primary catalog")
}

func TestParseRows(t *testing.T) {
	csvData := `title,series,author,publisher,language,cefr,topic,learning_goal,format,price,rating
Dieci Lezioni,Dieci,Anna Rossi,Alma,it,A2,reading,fluency,Paperback,19.90,4.6
Broken Price,,X,Acme,de,B1,grammar,,Ebook,not-a-number,4.0
`
	rows, err := parseRows(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "Dieci Lezioni", rows[0].Title)
	require.Equal(t, "it", rows[0].Language)
	require.Equal(t, 19.90, rows[0].Price)
	require.Equal(t, 4.6, rows[0].Rating)

	// Unparsable numbers degrade to zero, not to an error.
	require.Equal(t, 0.0, rows[1].Price)
}

func TestRowNormalize(t *testing.T) {
	r := Row{
		Title:     "Grammatik aktiv",
		Publisher: "Cornelsen",
		Language:  "de",
		Level:     "b1",
		Topic:     "grammar",
		Format:    "paperback",
		Price:     21.50,
		Rating:    4.4,
	}
	it := r.Normalize()

	require.Equal(t, "German", it.Language)
	require.Equal(t, "B1", it.Level)
	require.Equal(t, "Grammar", it.Genre)
	require.Equal(t, []string{"Paperback"}, it.Formats)
	require.Equal(t, 999, it.Stock)
	require.True(t, strings.HasPrefix(it.ISBN, "CSV-"))
	require.Len(t, it.ISBN, 14)
}

func TestRowNormalize_Fallbacks(t *testing.T) {
	it := Row{Language: "xx", Topic: "something odd"}.Normalize()
	require.Equal(t, "Untitled", it.Title)
	require.Equal(t, "", it.Language)
	require.Equal(t, "Textbook", it.Genre)
	require.Empty(t, it.Formats)
}

func TestSyntheticISBN(t *testing.T) {
	a := SyntheticISBN("Grammatik aktiv", "Cornelsen")
	require.Equal(t, a, SyntheticISBN("Grammatik aktiv", "Cornelsen"))
	require.NotEqual(t, a, SyntheticISBN("Grammatik aktiv", "Hueber"))
	// The separator keeps (title, publisher) boundaries unambiguous.
	require.NotEqual(t, SyntheticISBN("ab", "c"), SyntheticISBN("a", "bc"))
}

func TestItemByISBN(t *testing.T) {
	src := &Source{Primary: []Item{{ISBN: "978-1", Title: "Primary Hit"}}}
	extra := []Item{{ISBN: "CSV-0000000042", Title: "Extra Hit"}}

	it, ok := src.ItemByISBN("978-1", extra)
	require.True(t, ok)
	require.Equal(t, "Primary Hit", it.Title)

	it, ok = src.ItemByISBN("CSV-0000000042", extra)
	require.True(t, ok)
	require.Equal(t, "Extra Hit", it.Title)

	_, ok = src.ItemByISBN("missing", nil)
	require.False(t, ok)
}
