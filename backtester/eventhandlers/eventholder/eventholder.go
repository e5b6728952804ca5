package eventholder

import "github.com/thrasher-corp/eventbacktester/backtester/common"

// New returns an empty event queue
func New() *Holder {
	return &Holder{}
}

// Reset returns struct to defaults
func (h *Holder) Reset() {
	h.Queue = nil
}

// AppendEvent adds an event to the tail of the queue
func (h *Holder) AppendEvent(e common.Event) {
	h.Queue = append(h.Queue, e)
}

// NextEvent removes and returns the event at the head of the queue. The bool
// is false when the queue is empty
func (h *Holder) NextEvent() (common.Event, bool) {
	if len(h.Queue) == 0 {
		return nil, false
	}
	e := h.Queue[0]
	h.Queue[0] = nil
	h.Queue = h.Queue[1:]
	if len(h.Queue) == 0 {
		// let the backing array go once drained
		h.Queue = nil
	}
	return e, true
}

// Len returns the number of queued events
func (h *Holder) Len() int {
	return len(h.Queue)
}
