// Package broker defines the external adapter the engine submits orders to
// and queries balance from, plus PaperBroker: an in-memory, dry-run
// implementation used by tests and cmd/papertrader. PaperBroker keeps
// mutex-protected in-memory state — an order book and a running balance —
// adapted to order-submission bookkeeping and balance tracking for the
// engine's notional-sized orders.
package broker

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/evdnx/btcperp/metrics"
	"github.com/evdnx/btcperp/position"
)

// ErrClosed is returned by every method once Close has been called.
var ErrClosed = errors.New("broker: closed")

// Broker is the adapter the engine expects. A real implementation talks
// to an exchange; PaperBroker below fakes it in-memory. The engine never
// relies on FillNotification as a push callback — it infers fills from price
// itself — so the interface only needs submit/cancel/balance.
type Broker interface {
	SubmitOrder(ctx context.Context, order position.Order) (orderID string, err error)
	CancelOrder(ctx context.Context, orderID string) error
	Balance(ctx context.Context) (usd float64, err error)
}

// PaperBroker is a dry-run Broker: it records every submitted order,
// honors cancellation, and reports a balance that the caller updates
// directly as positions close (the engine is the only thing that knows
// realized PnL, so it is responsible for crediting/debiting the balance via
// AdjustBalance after each position close).
type PaperBroker struct {
	mu      sync.RWMutex
	balance float64
	orders  map[string]position.Order
	closed  bool
}

// NewPaperBroker returns a PaperBroker seeded with startBalance.
func NewPaperBroker(startBalance float64) *PaperBroker {
	metrics.EquityGauge.Set(startBalance)
	return &PaperBroker{
		balance: startBalance,
		orders:  make(map[string]position.Order),
	}
}

// SubmitOrder records order under a freshly minted uuid and returns it as
// the order ID; a real adapter would hand this to the exchange and return
// its own ID.
func (b *PaperBroker) SubmitOrder(ctx context.Context, order position.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return "", ErrClosed
	}
	id := uuid.NewString()
	b.orders[id] = order
	return id, nil
}

// CancelOrder removes a previously submitted order from the broker's book.
// Cancelling an unknown or already-cancelled order is a no-op, matching the
// adapter's required idempotency.
func (b *PaperBroker) CancelOrder(ctx context.Context, orderID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	delete(b.orders, orderID)
	return nil
}

// Balance returns the current paper balance, queried by strategies at setup
// time for risk sizing.
func (b *PaperBroker) Balance(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return 0, ErrClosed
	}
	return b.balance, nil
}

// AdjustBalance credits (positive) or debits (negative) realized PnL into
// the paper balance. The engine calls this right after Position.Close, since only
// it knows when a trade realizes its PnL; PaperBroker never infers PnL
// itself.
func (b *PaperBroker) AdjustBalance(delta float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balance += delta
	metrics.EquityGauge.Set(b.balance)
}

// Orders returns a snapshot of every order currently on the book, keyed by
// the ID SubmitOrder returned. Useful for test assertions and the example
// binary's status output.
func (b *PaperBroker) Orders() map[string]position.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]position.Order, len(b.orders))
	for k, v := range b.orders {
		out[k] = v
	}
	return out
}

// Close marks the broker closed; every method returns ErrClosed afterward.
func (b *PaperBroker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
