package events

// Event types understood by storefront clients.
const (
	ProductsUpdated = "products_updated"
	StockUpdated    = "stock_updated"
	CartUpdated     = "cart_updated"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Publisher is injected into the services that mutate catalog or cart
// state so unrelated views can refresh without shared globals.
type Publisher interface {
	Publish(e Event)
}

// Nop discards events. Useful in tests and batch tooling.
type Nop struct{}

func (Nop) Publish(Event) {}
