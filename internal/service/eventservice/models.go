package eventservice

import "time"

type BaseEvent struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	OccurredAt    time.Time         `json:"occurred_at"`
	Version       string            `json:"version"`
	CorrelationID string            `json:"correlation_id,omitempty"`
	Source        string            `json:"source,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
}

// SaleRegisteredEvent notifies downstream reporting of a new sale.
// Prices travel as strings to keep the decimal exact on the wire.
type SaleRegisteredEvent struct {
	BaseEvent
	SaleID     uint      `json:"sale_id"`
	ClientID   uint      `json:"client_id"`
	ProductID  uint      `json:"product_id"`
	Quantity   int       `json:"quantity"`
	UnitPrice  string    `json:"unit_price"`
	TotalPrice string    `json:"total_price"`
	SaleDate   time.Time `json:"sale_date"`
}
