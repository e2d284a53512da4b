package dialogue

import (
	"linguacart/internal/lexicon"
	"linguacart/internal/nlu"
)

// slotFillOrder is the priority in which missing search slots get asked
// for: identify the target language first, then the learning goal, then
// proficiency.
var slotFillOrder = []lexicon.Slot{
	lexicon.SlotLanguage,
	lexicon.SlotGenre,
	lexicon.SlotLevel,
}

// checkoutIntents pull a non-empty cart into the checkout sub-machine even
// when ExpectingDelivery is not yet set.
var checkoutIntents = map[lexicon.Intent]bool{
	lexicon.IntentCheckout:       true,
	lexicon.IntentChooseDelivery: true,
	lexicon.IntentProvideAddress: true,
	lexicon.IntentProvidePayment: true,
}

// searchIntents engage the slot-filling branch. IntentUnknown is included
// so a bare answer to a slot prompt keeps the search moving.
var searchIntents = map[lexicon.Intent]bool{
	lexicon.IntentAskRec:        true,
	lexicon.IntentSearchBooks:   true,
	lexicon.IntentFilterByPrice: true,
	lexicon.IntentUnknown:       true,
}

// neutralIntents are the intents a mid-checkout turn may carry while still
// being read as an answer to the current checkout question (an address or a
// pickup location parses as none of the command intents).
var neutralIntents = map[lexicon.Intent]bool{
	lexicon.IntentUnknown:       true,
	lexicon.IntentSearchBooks:   true,
	lexicon.IntentAskRec:        true,
	lexicon.IntentFilterByPrice: true,
}

// directActions maps intents 1:1 onto actions once the stateful rules have
// passed.
var directActions = map[lexicon.Intent]ActionType{
	lexicon.IntentAddToCart:      ActionAddToCart,
	lexicon.IntentRemoveFromCart: ActionRemoveFromCart,
	lexicon.IntentViewCart:       ActionShowCart,
	lexicon.IntentCheckout:       ActionProceedToCheckout,
	lexicon.IntentChooseDelivery: ActionAskDelivery,
	lexicon.IntentProvideAddress: ActionAckAddress,
	lexicon.IntentProvidePayment: ActionAckPayment,
	lexicon.IntentMoreResults:    ActionShowMoreResults,
	lexicon.IntentHelp:           ActionHelp,
	lexicon.IntentThanks:         ActionPoliteAck,
	lexicon.IntentFarewell:       ActionFarewell,
	lexicon.IntentPaymentHelp:    ActionPaymentHelp,
}

// NextAction decides the next assistant action from the accumulated state
// and the latest understanding result. Pure function; all mutation happens
// in the engine's handlers. The rule order is the contract:
//
//  1. checkout-flow override (non-empty cart mid-purchase),
//  2. slot filling for search intents,
//  3. direct intent-to-action mapping, falling back to help.
func NextAction(st *State, u nlu.Result) Action {
	if len(st.Cart) > 0 && (st.ExpectingDelivery || checkoutIntents[u.Intent]) {
		if act, ok := checkoutAction(st, u.Intent); ok {
			return act
		}
	}

	if searchIntents[u.Intent] {
		for _, slot := range slotFillOrder {
			if _, ok := st.Slots[slot]; !ok {
				return Action{Type: ActionRequestInfo, Slot: slot}
			}
		}
		return Action{Type: ActionRecommendBooks}
	}

	if t, ok := directActions[u.Intent]; ok {
		return Action{Type: t}
	}
	return Action{Type: ActionFallback}
}

// checkoutAction walks the checkout fields in strict order and returns the
// prompt or acknowledgement for the first unset one. Once delivery,
// destination and payment are all set it declines, letting the turn fall
// through to normal intent handling.
func checkoutAction(st *State, intent lexicon.Intent) (Action, bool) {
	if st.Delivery == DeliveryUnset {
		return Action{Type: ActionAskDelivery}, true
	}
	if st.Delivery == DeliveryCourier && st.Address == "" {
		if intent == lexicon.IntentProvideAddress || neutralIntents[intent] {
			return Action{Type: ActionAckAddress}, true
		}
		return Action{Type: ActionAskDelivery}, true
	}
	if st.Delivery == DeliveryPickup && st.PickupLocation == "" {
		if neutralIntents[intent] {
			return Action{Type: ActionAckPickup}, true
		}
		return Action{Type: ActionAskPickup}, true
	}
	if st.Payment == "" {
		if intent == lexicon.IntentProvidePayment {
			return Action{Type: ActionAckPayment}, true
		}
		return Action{Type: ActionAskPayment}, true
	}
	return Action{}, false
}
