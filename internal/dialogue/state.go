package dialogue

import (
	"linguacart/internal/catalog"
	"linguacart/internal/lexicon"
	"linguacart/internal/nlu"
)

// DeliveryMethod is the chosen fulfilment channel, empty until the user
// picks one.
type DeliveryMethod string

const (
	DeliveryUnset   DeliveryMethod = ""
	DeliveryPickup  DeliveryMethod = "pickup"
	DeliveryCourier DeliveryMethod = "courier"
)

// State is the dialogue state for one session, owned exclusively by that
// session's turn loop. It lives for the process lifetime and is never
// persisted.
type State struct {
	// Slots accumulates extracted slot values across turns. Keys are only
	// ever added or overwritten, never removed mid-session.
	Slots nlu.SlotValues

	// Cart maps ISBN to quantity (always >= 1). cartOrder preserves
	// insertion order so "remove" and summaries are deterministic.
	Cart      map[string]int
	cartOrder []string

	// LastRecommendations is the combined result list of the most recent
	// retrieval, replaced wholesale on each new recommendation.
	// ResultsOffset is the paging cursor into it.
	LastRecommendations []catalog.Item
	ResultsOffset       int

	// Checkout sub-state. Delivery, destination and payment stay unset
	// until provided and then hold for the rest of the session.
	Delivery          DeliveryMethod
	PickupLocation    string
	Address           string
	Payment           string
	ExpectingDelivery bool
	OrderConfirmed    bool

	// LastUnderstanding is the understander output of the current turn.
	LastUnderstanding nlu.Result
}

// NewState returns an empty session state.
func NewState() *State {
	return &State{
		Slots: nlu.SlotValues{},
		Cart:  map[string]int{},
	}
}

// MergeSlots folds newly extracted slot values into the persistent slots,
// last write wins per key. Absent keys are untouched, so previously set
// slots never disappear.
func (s *State) MergeSlots(extracted nlu.SlotValues) {
	for k, v := range extracted {
		if v != nil {
			s.Slots[k] = v
		}
	}
}

// StringSlot returns the string value of a persistent slot, or "" when the
// slot is unset.
func (s *State) StringSlot(slot lexicon.Slot) string {
	if v, ok := s.Slots[slot].(string); ok {
		return v
	}
	return ""
}

// FloatSlot returns a pointer to the numeric value of a persistent slot,
// or nil when the slot is unset.
func (s *State) FloatSlot(slot lexicon.Slot) *float64 {
	if v, ok := s.Slots[slot].(float64); ok {
		return &v
	}
	return nil
}

// AddToCart increments the quantity for isbn, registering it at the end of
// the cart order on first insert.
func (s *State) AddToCart(isbn string, qty int) {
	if _, ok := s.Cart[isbn]; !ok {
		s.cartOrder = append(s.cartOrder, isbn)
	}
	s.Cart[isbn] += qty
}

// RemoveFirstFromCart drops the oldest cart entry entirely. Returns false
// on an empty cart.
func (s *State) RemoveFirstFromCart() bool {
	if len(s.cartOrder) == 0 {
		return false
	}
	isbn := s.cartOrder[0]
	s.cartOrder = s.cartOrder[1:]
	delete(s.Cart, isbn)
	return true
}

// CartISBNs returns the cart keys in insertion order.
func (s *State) CartISBNs() []string {
	out := make([]string, len(s.cartOrder))
	copy(out, s.cartOrder)
	return out
}
