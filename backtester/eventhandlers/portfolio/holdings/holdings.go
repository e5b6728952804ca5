package holdings

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/eventbacktester/backtester/common"
	"github.com/thrasher-corp/eventbacktester/backtester/eventtypes/fill"
)

// Create takes a fill event and creates a new holding for its symbol
func Create(f fill.Fill) (Holding, error) {
	h := Holding{Symbol: f.Symbol}
	if err := h.Update(f); err != nil {
		return Holding{}, err
	}
	return h, nil
}

// Update applies a fill to the holding
func (h *Holding) Update(f fill.Fill) error {
	if h.Symbol == "" {
		h.Symbol = f.Symbol
	}
	if f.Symbol != h.Symbol {
		return fmt.Errorf("%w: holding %v fill %v", errSymbolMismatch, h.Symbol, f.Symbol)
	}
	h.Timestamp = f.Time
	qty := f.GetQuantity()
	value := f.GetValue()
	switch f.GetSide() {
	case common.Buy:
		h.PositionsSize = h.PositionsSize.Add(qty)
		h.BoughtAmount = h.BoughtAmount.Add(qty)
		h.BoughtValue = h.BoughtValue.Add(value)
	case common.Sell:
		h.PositionsSize = h.PositionsSize.Sub(qty)
		h.SoldAmount = h.SoldAmount.Add(qty)
		h.SoldValue = h.SoldValue.Add(value)
	default:
		return fmt.Errorf("%w '%v'", common.ErrInvalidSide, f.GetSide())
	}
	h.TotalFees = h.TotalFees.Add(f.GetCommission())
	h.UpdateValue(f.Time, f.GetPrice())
	return nil
}

// UpdateValue marks the position to the given price
func (h *Holding) UpdateValue(t time.Time, price decimal.Decimal) {
	h.Timestamp = t
	h.LatestPrice = price
	orig := h.PositionsValue
	h.PositionsValue = h.PositionsSize.Mul(price)
	h.PositionsValueDifference = h.PositionsValue.Sub(orig)
}

// IsFlat reports whether the holding has no open position
func (h *Holding) IsFlat() bool {
	return h.PositionsSize.IsZero()
}

// AddSnapshot records a snapshot. A snapshot for the latest timestamp replaces
// it, so several updates within one bar leave a single point on the curve
func (m *Manager) AddSnapshot(snap Snapshot) error {
	if n := len(m.Snapshots); n > 0 {
		latest := m.Snapshots[n-1].Time
		if snap.Time.Equal(latest) {
			m.Snapshots[n-1] = snap
			return nil
		}
		if snap.Time.Before(latest) {
			return fmt.Errorf("%w: %v before %v", errSnapshotOutOfOrder, snap.Time, latest)
		}
	}
	m.Snapshots = append(m.Snapshots, snap)
	return nil
}

// GetSnapshotAtTime returns the snapshot taken at t
func (m *Manager) GetSnapshotAtTime(t time.Time) (Snapshot, error) {
	for i := len(m.Snapshots) - 1; i >= 0; i-- {
		if t.Equal(m.Snapshots[i].Time) {
			return m.Snapshots[i], nil
		}
	}
	return Snapshot{}, fmt.Errorf("%w at %v", errSnapshotNotFound, t)
}

// GetLatestSnapshot returns the most recent snapshot, or false when none exist
func (m *Manager) GetLatestSnapshot() (Snapshot, bool) {
	if len(m.Snapshots) == 0 {
		return Snapshot{}, false
	}
	return m.Snapshots[len(m.Snapshots)-1], true
}

// GetSnapshots returns a copy of every snapshot
func (m *Manager) GetSnapshots() []Snapshot {
	return append([]Snapshot(nil), m.Snapshots...)
}
