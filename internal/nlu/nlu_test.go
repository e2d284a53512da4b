package nlu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"linguacart/internal/lexicon"
)

func TestUnderstand_FullRequest(t *testing.T) {
	got := Understand("Recommend an Italian A2 reader under €20 (paperback).")

	require.Equal(t, lexicon.IntentAskRec, got.Intent)
	require.Equal(t, "Italian", got.Slots[lexicon.SlotLanguage])
	require.Equal(t, "A2", got.Slots[lexicon.SlotLevel])
	require.Equal(t, "Readers", got.Slots[lexicon.SlotGenre])
	require.Equal(t, "Paperback", got.Slots[lexicon.SlotFormat])
	require.Equal(t, 20.0, got.Slots[lexicon.SlotPriceMax])
}

func TestUnderstand_IntentCascade(t *testing.T) {
	tests := []struct {
		name string
		text string
		want lexicon.Intent
	}{
		{"add", "Add 2 to cart", lexicon.IntentAddToCart},
		{"add_outranks_checkout", "add it and checkout", lexicon.IntentAddToCart},
		{"remove", "remove item 1", lexicon.IntentRemoveFromCart},
		{"view_cart", "show my cart", lexicon.IntentViewCart},
		{"checkout", "checkout please", lexicon.IntentCheckout},
		{"delivery_pickup", "pickup works for me", lexicon.IntentChooseDelivery},
		{"delivery_question", "how to send it?", lexicon.IntentChooseDelivery},
		{"pay_with", "I'll pay with Visa", lexicon.IntentProvidePayment},
		{"bare_card", "mastercard", lexicon.IntentProvidePayment},
		{"payment_question", "how do I pay?", lexicon.IntentPaymentHelp},
		{"bare_pay_is_checkout", "pay", lexicon.IntentCheckout},
		{"address", "ship to 221B Baker Street", lexicon.IntentProvideAddress},
		{"more", "show more", lexicon.IntentMoreResults},
		{"help", "help", lexicon.IntentHelp},
		{"thanks", "thanks a lot", lexicon.IntentThanks},
		{"ack", "ok", lexicon.IntentThanks},
		{"farewell", "goodbye", lexicon.IntentFarewell},
		{"search", "find me something in French", lexicon.IntentSearchBooks},
		{"recommendation", "recommend a textbook", lexicon.IntentAskRec},
		{"price_only", "something below €20", lexicon.IntentFilterByPrice},
		{"unknown", "what's the weather like", lexicon.IntentUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Understand(tt.text).Intent)
		})
	}
}

// "ok" must match as a whole word only, otherwise "book" and "textbook"
// misclassify as acknowledgements.
func TestUnderstand_AckNeedsWordBoundary(t *testing.T) {
	got := Understand("I want a textbook")
	require.Equal(t, lexicon.IntentSearchBooks, got.Intent)
	require.Equal(t, "Textbook", got.Slots[lexicon.SlotGenre])
}

// A bare slot value with no verb still moves the conversation forward.
func TestUnderstand_RescueRule(t *testing.T) {
	tests := []struct {
		text string
		slot lexicon.Slot
		want any
	}{
		{"German", lexicon.SlotLanguage, "German"},
		{"b2", lexicon.SlotLevel, "B2"},
		{"audiobook", lexicon.SlotFormat, "Audiobook"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := Understand(tt.text)
			require.Equal(t, lexicon.IntentSearchBooks, got.Intent)
			require.Equal(t, tt.want, got.Slots[tt.slot])
		})
	}
}

func TestUnderstand_NoSlotsStaysUnknown(t *testing.T) {
	got := Understand("hmm let me think")
	require.Equal(t, lexicon.IntentUnknown, got.Intent)
	require.Empty(t, got.Slots)
}

func TestExtractLevel_TargetOverridesCurrent(t *testing.T) {
	got := Understand("I'm b1 but want b2")
	require.Equal(t, "B2", got.Slots[lexicon.SlotLevel])
}

func TestExtractGenre(t *testing.T) {
	tests := []struct {
		name string
		text string
		want any
	}{
		{"singular_reader", "an italian reader", "Readers"},
		{"plural_readers", "german readers", "Readers"},
		{"grammar", "a grammar workbook", "Grammar"},
		{"improve_vocabulary", "I want to improve my vocabulary", "Vocabulary"},
		{"improve_reading", "improve my reading skills", "Readers"},
		{"improve_grammar_cn", "我想提升语法", "Grammar"},
		{"keyword_beats_inference", "improve reading with a textbook", "Textbook"},
		{"no_genre", "something in spanish", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Understand(tt.text)
			require.Equal(t, tt.want, got.Slots[lexicon.SlotGenre])
		})
	}
}

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantMin any
		wantMax any
	}{
		{"max_under", "under 20 euro", nil, 20.0},
		{"max_symbol", "below €15.50", nil, 15.5},
		{"min_over", "over 10", 10.0, nil},
		{"min_more_than", "more than €12", 12.0, nil},
		{"range_dash", "10-30 euro", 10.0, 30.0},
		{"range_to", "€10 to €30", 10.0, 30.0},
		{"range_swapped", "30-10", 10.0, 30.0},
		{"none", "no budget at all", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Understand(tt.text)
			require.Equal(t, tt.wantMin, got.Slots[lexicon.SlotPriceMin])
			require.Equal(t, tt.wantMax, got.Slots[lexicon.SlotPriceMax])
		})
	}
}

func TestExtractLanguage_FirstMatchWins(t *testing.T) {
	got := Understand("english or german?")
	require.Equal(t, "English", got.Slots[lexicon.SlotLanguage])
}
