package lexicon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalLanguage(t *testing.T) {
	require.Equal(t, "German", CanonicalLanguage("german"))
	require.Equal(t, "Italian", CanonicalLanguage("ITALIAN"))
}

func TestLanguageForCode(t *testing.T) {
	name, ok := LanguageForCode("it")
	require.True(t, ok)
	require.Equal(t, "Italian", name)

	name, ok = LanguageForCode(" DE ")
	require.True(t, ok)
	require.Equal(t, "German", name)

	_, ok = LanguageForCode("xx")
	require.False(t, ok)
}

func TestGenreForTopic(t *testing.T) {
	require.Equal(t, "Textbook", GenreForTopic("coursebook"))
	require.Equal(t, "Grammar", GenreForTopic(" Grammar "))
	require.Equal(t, DefaultGenre, GenreForTopic("travel phrasebook"))
	require.Equal(t, DefaultGenre, GenreForTopic(""))
}

func TestIsLevel(t *testing.T) {
	require.True(t, IsLevel("a2"))
	require.True(t, IsLevel(" B1 "))
	require.False(t, IsLevel("A3"))
	require.False(t, IsLevel(""))
}

// Neighbors go one step up first, then one step down.
func TestNeighborLevels(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{"B1", []string{"B2", "A2"}},
		{"a1", []string{"A2"}},
		{"C2", []string{"C1"}},
		{"", nil},
		{"D1", nil},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			require.Equal(t, tt.want, NeighborLevels(tt.level))
		})
	}
}
