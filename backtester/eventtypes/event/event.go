package event

import (
	"time"

	"github.com/gofrs/uuid"
)

// NewBase returns a Base with a freshly generated identifier
func NewBase(t time.Time, symbol, reason string) Base {
	return Base{
		ID:     uuid.Must(uuid.NewV4()),
		Time:   t,
		Symbol: symbol,
		Reason: reason,
	}
}

// GetTime returns the time of the event
func (b Base) GetTime() time.Time {
	return b.Time
}

// GetSymbol returns the instrument the event concerns
func (b Base) GetSymbol() string {
	return b.Symbol
}

// GetID returns the unique identifier of the event
func (b Base) GetID() uuid.UUID {
	return b.ID
}

// GetReason returns why the event was raised
func (b Base) GetReason() string {
	return b.Reason
}
