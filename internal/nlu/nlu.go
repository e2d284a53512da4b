// Package nlu implements the rule-based utterance understander. One
// utterance in, one Result out: an intent tag from a closed set plus
// whatever slot values could be extracted. Matching is deterministic,
// stateless and case-insensitive; there is no error path — anything
// unrecognized degrades to IntentUnknown with the slots that did match.
package nlu

import (
	"regexp"
	"strconv"
	"strings"

	"linguacart/internal/lexicon"
)

// SlotValues maps slot names to extracted values. Categorical slots carry
// string values, the price bounds carry float64. Only slots that actually
// matched are present.
type SlotValues map[lexicon.Slot]any

// Result is the output of understanding a single utterance. It is produced
// fresh each turn and never mutated afterwards.
type Result struct {
	Intent lexicon.Intent
	Slots  SlotValues
}

// =============================================================================
// PATTERN TABLES
// =============================================================================

var (
	// levelPattern matches a bare CEFR code anywhere in the text.
	levelPattern = regexp.MustCompile(`\b([abc][12])\b`)

	// needLevelPattern matches a level preceded by a desire/target phrase
	// ("want B1", "aim for a2"). When both patterns hit, this one wins.
	needLevelPattern = regexp.MustCompile(`(?:need|want|aim|target)\s*(?:for|to)?\s*\b([abc][12])\b`)

	// Price bound patterns, tried in order. The range pattern runs last and
	// may overwrite bounds set by the single-bound patterns.
	priceMaxPattern   = regexp.MustCompile(`(?:under|below|<=?|less than)\s*(?:€|euro)?\s*(\d+(?:\.\d*)?)`)
	priceMinPattern   = regexp.MustCompile(`(?:over|above|>=?|more than)\s*(?:€|euro)?\s*(\d+(?:\.\d*)?)`)
	priceRangePattern = regexp.MustCompile(`(?:€|euro)?\s*(\d+(?:\.\d*)?)\s*[-~to]+\s*(?:€|euro)?\s*(\d+(?:\.\d*)?)`)

	helpPattern = regexp.MustCompile(`\bhelp\b`)

	// ackPattern matches short acknowledgements as whole words so that "ok"
	// does not fire inside words like "book".
	ackPattern = regexp.MustCompile(`\b(?:ok|okay|great|nice)\b`)
)

// genreKeywords maps trigger keywords to genre tags, in extraction order.
// Singular stems are listed so "reader" hits Readers just like "readers".
var genreKeywords = []struct {
	keyword string
	genre   string
}{
	{"textbook", "Textbook"},
	{"reader", "Readers"},
	{"grammar", "Grammar"},
	{"vocabulary", "Vocabulary"},
}

// Skill keyword groups for the "improve <skill>" genre inference, including
// the non-Latin-script equivalents the assistant accepts.
var (
	improveMarkers   = []string{"improv", "提升"}
	vocabularySkills = []string{"vocab", "vocabulary", "词汇"}
	readingSkills    = []string{"reading", "reader", "阅读"}
	grammarSkills    = []string{"grammar", "语法"}
)

// intentRule pairs a trigger phrase set with the intent it produces. Rules
// are evaluated top to bottom; the first hit wins.
type intentRule struct {
	intent  lexicon.Intent
	phrases []string
	pattern *regexp.Regexp
}

// intentCascade is the ordered classification table. The ordering is load
// bearing: cart verbs outrank checkout verbs, payment statements outrank
// payment questions, and the generic "pay" rule funnels into checkout so a
// mid-conversation "pay" keeps the purchase flow moving.
var intentCascade = []intentRule{
	{intent: lexicon.IntentAddToCart, phrases: []string{"add to cart", "add "}},
	{intent: lexicon.IntentRemoveFromCart, phrases: []string{"remove from cart", "remove item"}},
	{intent: lexicon.IntentViewCart, phrases: []string{"show my cart", "view cart", "my cart"}},
	{intent: lexicon.IntentCheckout, phrases: []string{"checkout", "buy now", "place order"}},
	{intent: lexicon.IntentChooseDelivery, phrases: []string{"pickup", "courier", "delivery"}},
	{intent: lexicon.IntentChooseDelivery, phrases: []string{"how to send", "send to me", "shipping", "ship to me", "how to deliver", "delivery method"}},
	{intent: lexicon.IntentProvidePayment, phrases: []string{"pay with", "visa", "mastercard"}},
	{intent: lexicon.IntentPaymentHelp, phrases: []string{"how to pay", "how do i pay", "how can i pay", "payment methods"}},
	{intent: lexicon.IntentCheckout, phrases: []string{"pay", "payment"}},
	{intent: lexicon.IntentProvideAddress, phrases: []string{"ship to", "address"}},
	{intent: lexicon.IntentMoreResults, phrases: []string{"more", "next", "other books", "others", "another", "show more", "other"}},
	{intent: lexicon.IntentHelp, phrases: []string{"what can you do"}, pattern: helpPattern},
	{intent: lexicon.IntentThanks, phrases: []string{"thanks", "thank you", "thx", "thank u", "appreciate it"}},
	{intent: lexicon.IntentThanks, pattern: ackPattern},
	{intent: lexicon.IntentFarewell, phrases: []string{"goodbye", "good bye", "bye", "see you", "good night"}},
}

// searchKeywords trigger the recommendation/search branch after every rule
// in the cascade has failed to match.
var searchKeywords = []string{"find", "recommend", "reader", "textbook", "grammar", "vocabulary", "search"}

// recommendMarkers decide between ask_recommendation and search_books once
// a search keyword matched: a budget phrase or an explicit "recommend" makes
// it a recommendation request.
var recommendMarkers = []string{"under", "below", "recommend"}

// priceOnlyKeywords classify a pure budget utterance with no search keyword.
var priceOnlyKeywords = []string{"below", "under", "cheaper", "less than"}

// =============================================================================
// UNDERSTANDER
// =============================================================================

// Understand maps one utterance to an intent and a set of extracted slot
// values. All matching is done on the lowercased text; extraction runs
// independently per slot with first-match-wins inside each vocabulary
// (vocabulary order is declared in package lexicon).
func Understand(text string) Result {
	lower := strings.ToLower(strings.TrimSpace(text))
	slots := SlotValues{}

	extractLanguage(lower, slots)
	extractLevel(lower, slots)
	extractGenre(lower, slots)
	extractFormat(lower, slots)
	extractPrice(lower, slots)

	intent := classify(lower)

	// Rescue rule: a bare slot-filling answer ("German", "A2") carries no
	// command verb but should still advance the conversation as a search.
	if intent == lexicon.IntentUnknown && len(slots) > 0 {
		intent = lexicon.IntentSearchBooks
	}

	return Result{Intent: intent, Slots: slots}
}

func extractLanguage(lower string, slots SlotValues) {
	for _, lang := range lexicon.Languages {
		if strings.Contains(lower, lang) {
			slots[lexicon.SlotLanguage] = lexicon.CanonicalLanguage(lang)
			return
		}
	}
}

func extractLevel(lower string, slots SlotValues) {
	if m := levelPattern.FindStringSubmatch(lower); m != nil {
		slots[lexicon.SlotLevel] = strings.ToUpper(m[1])
	}
	// A level phrased as a need/target overrides the generic hit, so
	// "I'm B1 but want B2" resolves to B2.
	if m := needLevelPattern.FindStringSubmatch(lower); m != nil {
		slots[lexicon.SlotLevel] = strings.ToUpper(m[1])
	}
}

func extractGenre(lower string, slots SlotValues) {
	for _, kw := range genreKeywords {
		if strings.Contains(lower, kw.keyword) {
			slots[lexicon.SlotGenre] = kw.genre
			return
		}
	}
	if !containsAny(lower, improveMarkers) {
		return
	}
	switch {
	case containsAny(lower, vocabularySkills):
		slots[lexicon.SlotGenre] = "Vocabulary"
	case containsAny(lower, readingSkills):
		slots[lexicon.SlotGenre] = "Readers"
	case containsAny(lower, grammarSkills):
		slots[lexicon.SlotGenre] = "Grammar"
	}
}

func extractFormat(lower string, slots SlotValues) {
	for _, f := range lexicon.Formats {
		if strings.Contains(lower, strings.ToLower(f)) {
			slots[lexicon.SlotFormat] = f
			return
		}
	}
}

// extractPrice applies the three bound patterns in order. Numbers that fail
// to parse abandon that pattern silently; the range pattern runs last and
// overwrites any single bound it overlaps.
func extractPrice(lower string, slots SlotValues) {
	if m := priceMaxPattern.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			slots[lexicon.SlotPriceMax] = v
		}
	}
	if m := priceMinPattern.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			slots[lexicon.SlotPriceMin] = v
		}
	}
	if m := priceRangePattern.FindStringSubmatch(lower); m != nil {
		lo, errLo := strconv.ParseFloat(m[1], 64)
		hi, errHi := strconv.ParseFloat(m[2], 64)
		if errLo == nil && errHi == nil {
			if lo > hi {
				lo, hi = hi, lo
			}
			slots[lexicon.SlotPriceMin] = lo
			slots[lexicon.SlotPriceMax] = hi
		}
	}
}

func classify(lower string) lexicon.Intent {
	for _, rule := range intentCascade {
		if containsAny(lower, rule.phrases) {
			return rule.intent
		}
		if rule.pattern != nil && rule.pattern.MatchString(lower) {
			return rule.intent
		}
	}
	if containsAny(lower, searchKeywords) {
		if containsAny(lower, recommendMarkers) {
			return lexicon.IntentAskRec
		}
		return lexicon.IntentSearchBooks
	}
	if containsAny(lower, priceOnlyKeywords) {
		return lexicon.IntentFilterByPrice
	}
	return lexicon.IntentUnknown
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
