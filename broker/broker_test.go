package broker

import (
	"context"
	"errors"
	"testing"

	"github.com/evdnx/btcperp/market"
	"github.com/evdnx/btcperp/position"
)

func TestPaperBrokerSubmitOrderAssignsID(t *testing.T) {
	b := NewPaperBroker(10_000)
	o := position.NewOrder(market.Long, 100, 1000, 110, 90, position.Entry)

	id, err := b.SubmitOrder(context.Background(), o)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty order ID")
	}

	orders := b.Orders()
	if len(orders) != 1 {
		t.Fatalf("expected 1 booked order, got %d", len(orders))
	}
	if got := orders[id]; got.EntryPrice != 100 {
		t.Fatalf("expected booked order entry 100, got %v", got.EntryPrice)
	}
}

func TestPaperBrokerCancelOrderIsIdempotent(t *testing.T) {
	b := NewPaperBroker(10_000)
	o := position.NewOrder(market.Long, 100, 1000, 110, 90, position.Entry)
	id, err := b.SubmitOrder(context.Background(), o)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := b.CancelOrder(context.Background(), id); err != nil {
		t.Fatalf("unexpected error cancelling: %v", err)
	}
	if len(b.Orders()) != 0 {
		t.Fatal("expected the order book to be empty after cancel")
	}
	// Cancelling again, and cancelling an unknown ID, must both be no-ops.
	if err := b.CancelOrder(context.Background(), id); err != nil {
		t.Fatalf("expected idempotent cancel, got %v", err)
	}
	if err := b.CancelOrder(context.Background(), "nonexistent"); err != nil {
		t.Fatalf("expected cancelling an unknown order to be a no-op, got %v", err)
	}
}

func TestPaperBrokerBalanceAndAdjustBalance(t *testing.T) {
	b := NewPaperBroker(10_000)
	bal, err := b.Balance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bal != 10_000 {
		t.Fatalf("expected starting balance 10000, got %v", bal)
	}

	b.AdjustBalance(250.5)
	bal, err = b.Balance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bal != 10_250.5 {
		t.Fatalf("expected balance 10250.5 after credit, got %v", bal)
	}

	b.AdjustBalance(-500)
	bal, _ = b.Balance(context.Background())
	if bal != 9_750.5 {
		t.Fatalf("expected balance 9750.5 after debit, got %v", bal)
	}
}

func TestPaperBrokerClosedRejectsEveryCall(t *testing.T) {
	b := NewPaperBroker(10_000)
	o := position.NewOrder(market.Long, 100, 1000, 110, 90, position.Entry)
	id, err := b.SubmitOrder(context.Background(), o)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.Close()

	if _, err := b.SubmitOrder(context.Background(), o); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed on SubmitOrder, got %v", err)
	}
	if err := b.CancelOrder(context.Background(), id); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed on CancelOrder, got %v", err)
	}
	if _, err := b.Balance(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed on Balance, got %v", err)
	}
}

func TestPaperBrokerRespectsCancelledContext(t *testing.T) {
	b := NewPaperBroker(10_000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := position.NewOrder(market.Long, 100, 1000, 110, 90, position.Entry)
	if _, err := b.SubmitOrder(ctx, o); err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}
