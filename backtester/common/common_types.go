package common

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"github.com/thrasher-corp/eventbacktester/log"
)

// EventKind identifies which of the four event variants an event is
type EventKind uint8

// Event kinds in pipeline order
const (
	MarketUpdate EventKind = iota + 1
	Signal
	Order
	Fill
)

// Direction is the intent expressed by a strategy signal
type Direction string

// Signal directions
const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
	Exit  Direction = "EXIT"
)

// Side is the side of an order or fill
type Side string

// Order sides
const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// OrderType is how an order wants to be executed
type OrderType string

// Order types
const (
	MarketOrder OrderType = "MARKET"
	LimitOrder  OrderType = "LIMIT"
)

// Sub-logger names used throughout the backtester
const (
	Setup      = "SETUP"
	Backtester = "BACKTESTER"
	Config     = "CONFIG"
	Data       = "DATA"
	Strategy   = "STRATEGY"
	Portfolio  = "PORTFOLIO"
	Exchange   = "EXCHANGE"
	Statistics = "STATISTICS"
	Report     = "REPORT"
	Database   = "DATABASE"
)

var (
	// ErrNilArguments is a common error response to highlight that nils were passed in
	// when they should not have been
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilEvent is a common error for whenever a nil event occurs when it shouldn't have
	ErrNilEvent = errors.New("nil event received")
	// ErrInvalidDirection is returned when a direction string is not LONG, SHORT or EXIT
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrInvalidSide is returned when a side string is not BUY or SELL
	ErrInvalidSide = errors.New("invalid side")
	// ErrInvalidOrderType is returned when an order type is not MARKET or LIMIT
	ErrInvalidOrderType = errors.New("invalid order type")

	// SubLoggers holds every registered backtester sub-logger by name
	SubLoggers = map[string]*log.SubLogger{}

	subLoggerNames = []string{
		Setup,
		Backtester,
		Config,
		Data,
		Strategy,
		Portfolio,
		Exchange,
		Statistics,
		Report,
		Database,
	}
)

// Event is the read-only view every queued event offers the dispatcher and
// collaborators. Implementations are values, so a consumer can never mutate
// an event that someone else still holds.
type Event interface {
	GetKind() EventKind
	GetTime() time.Time
	GetSymbol() string
	GetID() uuid.UUID
	GetReason() string
}
