package dialogue

import "linguacart/internal/lexicon"

// ActionType tags the next thing the assistant does. The set is closed; the
// engine's handler switch covers every tag.
type ActionType string

const (
	ActionRequestInfo       ActionType = "request_info"
	ActionRecommendBooks    ActionType = "recommend_books"
	ActionShowMoreResults   ActionType = "show_more_results"
	ActionAddToCart         ActionType = "add_to_cart"
	ActionRemoveFromCart    ActionType = "remove_from_cart"
	ActionShowCart          ActionType = "show_cart"
	ActionProceedToCheckout ActionType = "proceed_to_checkout"
	ActionAskDelivery       ActionType = "ask_delivery_details"
	ActionAckAddress        ActionType = "ack_address"
	ActionAskPickup         ActionType = "ask_pickup_location"
	ActionAckPickup         ActionType = "ack_pickup_location"
	ActionAckPayment        ActionType = "ack_payment"
	ActionAskPayment        ActionType = "ask_payment"
	ActionHelp              ActionType = "help"
	ActionPaymentHelp       ActionType = "payment_help"
	ActionPoliteAck         ActionType = "polite_ack"
	ActionFarewell          ActionType = "farewell"
	ActionFallback          ActionType = "fallback"
)

// Action is the policy's sole output: a tag plus, for RequestInfo, the slot
// to prompt for.
type Action struct {
	Type ActionType
	Slot lexicon.Slot // set only for ActionRequestInfo
}
