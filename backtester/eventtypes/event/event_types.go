package event

import (
	"time"

	"github.com/gofrs/uuid"
)

// Base holds the fields shared by every event type. It is embedded by value so
// copies of an event never alias one another.
type Base struct {
	ID     uuid.UUID `json:"id"`
	Time   time.Time `json:"time"`
	Symbol string    `json:"symbol"`
	Reason string    `json:"reason,omitempty"`
}
