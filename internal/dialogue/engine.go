// Package dialogue is the conversational brain: the session state, the
// policy that picks the next action, and the turn engine whose handlers
// carry out that action and mutate state. One utterance is processed to
// completion before the next is accepted; the engine is single-session and
// not safe for concurrent use.
package dialogue

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"linguacart/internal/catalog"
	"linguacart/internal/lexicon"
	"linguacart/internal/nlu"
	"linguacart/internal/orders"
	"linguacart/internal/render"
	"linguacart/internal/retrieval"
)

var (
	// qtyPattern reads an explicit quantity token ("x3", "3 copies").
	qtyPattern = regexp.MustCompile(`x\s*(\d+)|\b(\d+)\s*(?:copies|qty)\b`)
	// addIndexPattern reads a 1-based list index after "add".
	addIndexPattern = regexp.MustCompile(`\badd\s+(\d+)\b`)

	courierKeywords = []string{"courier", "delivery", "ship"}
)

// Engine drives one conversation session: understand, decide, act.
type Engine struct {
	src       *catalog.Source
	retriever *retrieval.Engine
	orders    *orders.Store // nil disables the order ledger
	logger    *zap.Logger
	state     *State
}

// NewEngine wires a session engine over a loaded catalog. ordersStore may
// be nil, in which case confirmed orders are not recorded.
func NewEngine(src *catalog.Source, retriever *retrieval.Engine, ordersStore *orders.Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		src:       src,
		retriever: retriever,
		orders:    ordersStore,
		logger:    logger,
		state:     NewState(),
	}
}

// State exposes the session state, mainly for tests and the UI status line.
func (e *Engine) State() *State {
	return e.state
}

// Greeting is the opening line before the first turn.
func (e *Engine) Greeting() string {
	return render.Greeting
}

// HandleTurn processes one utterance end to end and returns the reply
// text. Understanding, policy and handlers all run synchronously within
// the call.
func (e *Engine) HandleTurn(utterance string) string {
	u := nlu.Understand(utterance)
	e.state.LastUnderstanding = u
	e.state.MergeSlots(u.Slots)

	action := NextAction(e.state, u)
	e.logger.Debug("turn",
		zap.String("intent", string(u.Intent)),
		zap.Int("extracted_slots", len(u.Slots)),
		zap.String("action", string(action.Type)))

	switch action.Type {
	case ActionRequestInfo:
		return render.SlotPrompt(action.Slot)
	case ActionRecommendBooks:
		return e.recommend()
	case ActionShowMoreResults:
		return e.showMore()
	case ActionAddToCart:
		return e.addToCart(utterance)
	case ActionRemoveFromCart:
		return e.removeFromCart()
	case ActionShowCart:
		return e.cartSummary()
	case ActionProceedToCheckout:
		return e.proceedToCheckout()
	case ActionAskDelivery:
		return e.askDelivery(utterance)
	case ActionAckAddress:
		e.state.Address = strings.TrimSpace(utterance)
		return render.AckAddressNoted
	case ActionAskPickup:
		return render.AskPickupLocation
	case ActionAckPickup:
		e.state.PickupLocation = strings.TrimSpace(utterance)
		return render.AckLocationNoted
	case ActionAckPayment:
		e.state.Payment = strings.TrimSpace(utterance)
		return render.OrderConfirmed(e.confirmOrder())
	case ActionAskPayment:
		return render.AskPayment
	case ActionHelp:
		return render.Help
	case ActionPaymentHelp:
		return render.PaymentHelp
	case ActionPoliteAck:
		if e.state.OrderConfirmed {
			return render.PoliteAckConfirmed
		}
		return render.PoliteAck
	case ActionFarewell:
		return render.Farewell
	default:
		return render.Fallback
	}
}

// recommend queries the retrieval engine with the accumulated slots and
// replaces the stored recommendation list wholesale.
func (e *Engine) recommend() string {
	c := retrieval.Constraints{
		Language: e.state.StringSlot(lexicon.SlotLanguage),
		Level:    e.state.StringSlot(lexicon.SlotLevel),
		Genre:    e.state.StringSlot(lexicon.SlotGenre),
		Format:   e.state.StringSlot(lexicon.SlotFormat),
		PriceMin: e.state.FloatSlot(lexicon.SlotPriceMin),
		PriceMax: e.state.FloatSlot(lexicon.SlotPriceMax),
	}
	rs := e.retriever.Retrieve(c)
	e.state.LastRecommendations = rs.Items
	e.state.ResultsOffset = 0
	return render.Recommendations(rs.Items)
}

// showMore advances the paging cursor by one page and renders the slice of
// the stored list past it. It never re-queries.
func (e *Engine) showMore() string {
	if len(e.state.LastRecommendations) == 0 {
		return render.NoPreviousResults
	}
	e.state.ResultsOffset += retrieval.PageSize
	if e.state.ResultsOffset >= len(e.state.LastRecommendations) {
		return render.NoMoreResults
	}
	remaining := e.state.LastRecommendations[e.state.ResultsOffset:]
	return render.MoreResults(remaining, e.state.ResultsOffset)
}

// addToCart resolves "add N" against the last recommendation list. The
// default quantity is 1; "x3" or "3 copies" override it. An explicit index
// past the end of the list is a no-op with an explanation, and without an
// index the first listed item is taken.
func (e *Engine) addToCart(utterance string) string {
	lower := strings.ToLower(utterance)

	qty := 1
	if m := qtyPattern.FindStringSubmatch(lower); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			qty = n
		}
	}

	results := e.state.LastRecommendations
	if m := addIndexPattern.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n < 1 || n > len(results) {
			return render.InvalidIndex(n, len(results))
		}
		return e.addItem(results[n-1], qty)
	}
	if len(results) > 0 {
		return e.addItem(results[0], qty)
	}
	return render.NothingToAdd
}

func (e *Engine) addItem(it catalog.Item, qty int) string {
	e.state.AddToCart(it.ISBN, qty)
	e.logger.Debug("cart add", zap.String("isbn", it.ISBN), zap.Int("qty", qty))
	return render.Added(it.Title, qty) + "\n" + e.cartSummary()
}

func (e *Engine) removeFromCart() string {
	if !e.state.RemoveFirstFromCart() {
		return render.CartAlreadyEmpty
	}
	return render.RemovedOneItem
}

// cartSummary resolves cart lines against the primary catalog plus the
// last recommendations, so synthetic tabular ISBNs still price correctly.
func (e *Engine) cartSummary() string {
	var lines []render.CartLine
	for _, isbn := range e.state.CartISBNs() {
		it, ok := e.src.ItemByISBN(isbn, e.state.LastRecommendations)
		if !ok {
			continue
		}
		qty := e.state.Cart[isbn]
		lines = append(lines, render.CartLine{
			Title:     it.Title,
			Quantity:  qty,
			LineTotal: it.Price * float64(qty),
		})
	}
	return render.CartSummary(lines)
}

// proceedToCheckout advances the checkout by prompting for the first
// missing piece, or confirms the order when everything is in place.
func (e *Engine) proceedToCheckout() string {
	st := e.state
	switch {
	case len(st.Cart) == 0:
		return render.CartEmptyCheckout
	case st.Delivery == DeliveryUnset:
		st.ExpectingDelivery = true
		return render.AskDelivery
	case st.Delivery == DeliveryCourier && st.Address == "":
		return render.AskAddress
	case st.Payment == "":
		return render.AskPayment
	default:
		return render.OrderConfirmed(e.confirmOrder())
	}
}

// askDelivery reads the delivery method out of the current utterance, or
// re-prompts when neither channel is named.
func (e *Engine) askDelivery(utterance string) string {
	lower := strings.ToLower(utterance)
	st := e.state
	st.ExpectingDelivery = true
	switch {
	case strings.Contains(lower, "pickup"):
		st.Delivery = DeliveryPickup
		return render.AckPickupNoted
	case containsAny(lower, courierKeywords):
		st.Delivery = DeliveryCourier
		return render.AskAddress
	default:
		return render.AskDelivery
	}
}

// confirmOrder finalizes the checkout: generates the order ID, records the
// order when a ledger is configured, and flips the session into its
// confirmed state. The cart is kept so the user can still review it.
func (e *Engine) confirmOrder() string {
	st := e.state
	id := orders.NewOrderID()

	if e.orders != nil {
		rec := orders.Record{
			ID:             id,
			PlacedAt:       time.Now(),
			DeliveryMethod: string(st.Delivery),
			Destination:    st.Address,
			Payment:        st.Payment,
		}
		if st.Delivery == DeliveryPickup {
			rec.Destination = st.PickupLocation
		}
		for _, isbn := range st.CartISBNs() {
			it, ok := e.src.ItemByISBN(isbn, st.LastRecommendations)
			if !ok {
				continue
			}
			qty := st.Cart[isbn]
			rec.Lines = append(rec.Lines, orders.Line{
				ISBN:      isbn,
				Title:     it.Title,
				Quantity:  qty,
				UnitPrice: it.Price,
			})
			rec.Total += it.Price * float64(qty)
		}
		if err := e.orders.Save(rec); err != nil {
			e.logger.Warn("order not recorded", zap.String("order_id", id), zap.Error(err))
		}
	}

	st.ExpectingDelivery = false
	st.OrderConfirmed = true
	e.logger.Info("order confirmed", zap.String("order_id", id))
	return id
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
