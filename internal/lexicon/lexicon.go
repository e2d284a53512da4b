// Package lexicon holds the closed vocabularies the assistant understands:
// catalog languages, CEFR levels, genres, formats, and the mapping tables
// used to normalize the tabular catalog source. Pure data, no behavior
// beyond lookups.
package lexicon

import "strings"

// Slot names a typed piece of information extracted from user text.
type Slot string

const (
	SlotLanguage Slot = "language"
	SlotLevel    Slot = "level"
	SlotGenre    Slot = "genre"
	SlotFormat   Slot = "format"
	SlotPriceMin Slot = "price_min"
	SlotPriceMax Slot = "price_max"
)

// Intent is a closed-vocabulary tag classifying the purpose of one utterance.
type Intent string

const (
	IntentAddToCart      Intent = "add_to_cart"
	IntentRemoveFromCart Intent = "remove_from_cart"
	IntentViewCart       Intent = "view_cart"
	IntentCheckout       Intent = "checkout"
	IntentChooseDelivery Intent = "choose_delivery"
	IntentProvidePayment Intent = "provide_payment"
	IntentPaymentHelp    Intent = "payment_help"
	IntentProvideAddress Intent = "provide_address"
	IntentMoreResults    Intent = "more_results"
	IntentHelp           Intent = "help"
	IntentThanks         Intent = "thanks"
	IntentFarewell       Intent = "farewell"
	IntentAskRec         Intent = "ask_recommendation"
	IntentSearchBooks    Intent = "search_books"
	IntentFilterByPrice  Intent = "filter_by_price"
	IntentUnknown        Intent = "unknown"
)

// Languages is the set of languages the catalog covers. The slice order is
// the extraction order: the first entry found as a substring of an utterance
// wins, so the order is part of the package contract.
var Languages = []string{
	"english",
	"german",
	"french",
	"spanish",
	"italian",
	"chinese",
	"japanese",
}

// Levels lists the CEFR proficiency tiers in ascending order. Neighbor
// computation depends on this ordering.
var Levels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

// Genres lists the catalog genre tags. Extraction order as with Languages.
var Genres = []string{"Textbook", "Readers", "Grammar", "Vocabulary"}

// Formats lists the media formats a catalog item may ship in.
var Formats = []string{"Paperback", "Ebook", "Audiobook"}

// LanguageToCode maps canonical language names (lowercase) to the two-letter
// codes the tabular catalog uses.
var LanguageToCode = map[string]string{
	"english":  "en",
	"german":   "de",
	"french":   "fr",
	"spanish":  "es",
	"italian":  "it",
	"chinese":  "zh",
	"japanese": "ja",
}

// TopicToGenre maps the tabular catalog's free-text topic column onto the
// fixed genre tags. Topics not listed here fall back to DefaultGenre.
var TopicToGenre = map[string]string{
	"coursebook": "Textbook",
	"grammar":    "Grammar",
	"vocabulary": "Vocabulary",
}

// DefaultGenre is the bucket for tabular rows whose topic is unrecognized.
const DefaultGenre = "Textbook"

// CanonicalLanguage returns the display form of a language name
// ("german" -> "German"). Input casing is ignored.
func CanonicalLanguage(name string) string {
	return capitalize(strings.ToLower(name))
}

// LanguageForCode resolves a tabular-source language code back to its
// canonical display name. The second return is false for unknown codes.
func LanguageForCode(code string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for name, c := range LanguageToCode {
		if c == code {
			return capitalize(name), true
		}
	}
	return "", false
}

// GenreForTopic maps a tabular topic onto a genre tag, falling back to
// DefaultGenre for anything unrecognized (including empty).
func GenreForTopic(topic string) string {
	if g, ok := TopicToGenre[strings.ToLower(strings.TrimSpace(topic))]; ok {
		return g
	}
	return DefaultGenre
}

// IsLevel reports whether s is a valid CEFR code, ignoring case.
func IsLevel(s string) bool {
	u := strings.ToUpper(strings.TrimSpace(s))
	for _, l := range Levels {
		if l == u {
			return true
		}
	}
	return false
}

// NeighborLevels returns the CEFR levels adjacent to level: one step up
// first, then one step down. Unknown levels have no neighbors.
func NeighborLevels(level string) []string {
	u := strings.ToUpper(strings.TrimSpace(level))
	for i, l := range Levels {
		if l != u {
			continue
		}
		var out []string
		if i+1 < len(Levels) {
			out = append(out, Levels[i+1])
		}
		if i-1 >= 0 {
			out = append(out, Levels[i-1])
		}
		return out
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
