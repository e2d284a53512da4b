// Package render shapes the assistant's replies: slot prompts, the
// templated recommendation lines, cart summaries, and the fixed texts of
// the checkout flow. Everything here is pure string formatting; styling is
// applied by the terminal UI on top.
package render

import (
	"fmt"
	"strings"

	"linguacart/internal/catalog"
	"linguacart/internal/lexicon"
)

// Fixed reply texts. Kept as constants so handlers and tests refer to the
// same strings.
const (
	Greeting = "Hi! I can recommend language-learning books by language and CEFR level. What are you studying?"

	AskDelivery       = "Delivery by pickup or courier?"
	AskAddress        = "Please provide the delivery address."
	AskPickupLocation = "Please choose a pickup location (e.g., DISI Helpdesk, Povo)."
	AskPayment        = "Please provide your payment method (e.g., Visa/Mastercard)."
	AckPickupNoted    = "Noted pickup. Choose a pickup location (e.g., DISI Helpdesk, Povo)."
	AckAddressNoted   = "Address received. Please provide your payment method (e.g., Visa/Mastercard)."
	AckLocationNoted  = "Pickup location noted. Please provide your payment method (e.g., Visa/Mastercard)."

	Help = "You can ask for books by language and level (e.g., 'Italian A2 reader under €20'), view cart, add to cart, or checkout."

	PaymentHelp = "You can pay during checkout using Visa or Mastercard. Say 'checkout' or 'pay' to start; " +
		"after delivery choice and (if courier) address, provide the card brand like 'Visa'."

	PoliteAck          = "You're welcome! If you'd like to exit, type 'quit' or 'bye'."
	PoliteAckConfirmed = "You're welcome! Order confirmed. If you'd like to exit, type 'quit' or 'bye'."
	Farewell           = "Bye! Have a great day!"
	Fallback           = "Sorry, I didn't catch that. You can ask for recommendations, filter by format/price, manage cart, or checkout."

	EmptyCart         = "Your cart is empty."
	CartAlreadyEmpty  = "Your cart is already empty."
	CartEmptyCheckout = "Your cart is empty. Would you like recommendations first?"
	RemovedOneItem    = "Removed one item from your cart."
	NothingToAdd      = "I couldn't find a referenced item to add."

	NoResults         = "I couldn't find matching books. Try relaxing filters (level/format/price)."
	NoPreviousResults = "There are no previous results. Tell me what language/level/genre you need."
	NoMoreResults     = "No more results. Try changing filters (e.g., price or format)."

	AddHint = "Say 'Add 1' to add the first item to cart."
)

// slotPrompts maps a missing slot to the question that fills it.
var slotPrompts = map[lexicon.Slot]string{
	lexicon.SlotLanguage: "Which language are you studying? (e.g., Italian, German)",
	lexicon.SlotLevel:    "Which CEFR level? (A1–C2)",
	lexicon.SlotGenre:    "What type of book? (Textbook, Readers, Grammar, Vocabulary)",
	lexicon.SlotFormat:   "Preferred format? (Paperback, Ebook, Audiobook)",
	lexicon.SlotPriceMax: "Any budget cap? For example, under €20.",
}

// SlotPrompt returns the question for a missing slot, with a generic
// fallback for anything unmapped.
func SlotPrompt(slot lexicon.Slot) string {
	if p, ok := slotPrompts[slot]; ok {
		return p
	}
	return "Could you provide more details?"
}

// ItemLine renders one catalog item at a 1-based list position:
//
//	2. Nuovo Espresso 2 — Italian A2 · Textbook · Paperback, Ebook · €24.90 (⭐4.6)
func ItemLine(idx int, it catalog.Item) string {
	return fmt.Sprintf("%d. %s — %s %s · %s · %s · €%.2f (⭐%.1f)",
		idx, it.Title, it.Language, it.Level, it.Genre,
		strings.Join(it.Formats, ", "), it.Price, it.Rating)
}

// Recommendations renders a fresh result list with continuous numbering
// starting at 1, or the no-results text.
func Recommendations(items []catalog.Item) string {
	if len(items) == 0 {
		return NoResults
	}
	lines := []string{"Here are all matching options:"}
	for i, it := range items {
		lines = append(lines, ItemLine(i+1, it))
	}
	lines = append(lines, AddHint)
	return strings.Join(lines, "\n")
}

// MoreResults renders a page continuation, numbering from start+1 so list
// positions stay consistent with the original listing.
func MoreResults(items []catalog.Item, start int) string {
	lines := []string{"Here are some more options:"}
	for i, it := range items {
		lines = append(lines, ItemLine(start+i+1, it))
	}
	lines = append(lines, AddHint)
	return strings.Join(lines, "\n")
}

// CartLine is one resolved cart entry ready for display.
type CartLine struct {
	Title     string
	Quantity  int
	LineTotal float64
}

// CartSummary renders resolved cart lines and the running total.
func CartSummary(lines []CartLine) string {
	if len(lines) == 0 {
		return EmptyCart
	}
	var b strings.Builder
	var total float64
	for _, l := range lines {
		fmt.Fprintf(&b, "%s x%d — €%.2f\n", l.Title, l.Quantity, l.LineTotal)
		total += l.LineTotal
	}
	fmt.Fprintf(&b, "Total: €%.2f", total)
	return b.String()
}

// Added confirms an add-to-cart.
func Added(title string, qty int) string {
	return fmt.Sprintf("Added “%s” (x%d) to your cart.", title, qty)
}

// InvalidIndex explains an out-of-range list reference.
func InvalidIndex(n, have int) string {
	if have == 0 {
		return NothingToAdd
	}
	return fmt.Sprintf("There is no item %d — the last list has %d items.", n, have)
}

// OrderConfirmed reports a completed checkout.
func OrderConfirmed(orderID string) string {
	return fmt.Sprintf("Payment noted. Your order is confirmed. Order ID: %s", orderID)
}
