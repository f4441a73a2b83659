// Command papertrader wires a deterministic synthetic candle feed through
// the engine against an in-memory paper broker and prints every emitted
// event to stdout. It is a demonstration harness only: no live exchange
// connectivity is in scope (see the broker/candle package docs).
package main

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evdnx/btcperp/broker"
	"github.com/evdnx/btcperp/candle"
	"github.com/evdnx/btcperp/config"
	"github.com/evdnx/btcperp/engine"
	"github.com/evdnx/btcperp/events"
	"github.com/evdnx/btcperp/logger"
)

func main() {
	log, err := logger.NewZapLogger()
	if err != nil {
		fmt.Println("papertrader: failed to build logger:", err)
		return
	}

	cfg := config.LoadEngineConfig()
	log.Info("papertrader: starting dry run", logger.String("symbol", cfg.Symbol), logger.Float64("start_balance", cfg.StartBalance))

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":9090", nil); err != nil {
			log.Warn("papertrader: metrics server stopped", logger.Err(err))
		}
	}()

	br := broker.NewPaperBroker(cfg.StartBalance)
	printer := &eventPrinter{log: log}
	e := engine.New(config.DefaultTCLConfig(), config.DefaultSMOGConfig(), br, log, printer)

	src := candle.NewReplaySource(syntheticSession())
	if err := e.Run(context.Background(), src); err != nil {
		log.Error("papertrader: run halted", logger.Err(err))
		return
	}

	balance, err := br.Balance(context.Background())
	if err != nil {
		log.Error("papertrader: final balance query failed", logger.Err(err))
		return
	}
	log.Info("papertrader: dry run complete", logger.Float64("final_balance", balance))
}

// syntheticSession builds a deterministic session: a long, steady uptrend
// (long enough for TCL's 200-bar EMA to settle and the trend to confirm)
// followed by a choppy range (the kind of market SMOG looks for a reversal
// in). Real candle ingestion belongs to a network adapter outside this
// module's scope; this keeps the binary runnable standalone.
func syntheticSession() []candle.Bar {
	var bars []candle.Bar
	ts := int64(0)
	price := 60_000.0

	for i := 0; i < 260; i++ {
		ts += 60_000
		open := price
		price *= 1.0012
		bars = append(bars, candle.Bar{
			Open:      open,
			High:      price * 1.0008,
			Low:       price * 0.9992,
			Close:     price,
			Volume:    50 + float64(i%7),
			Timestamp: ts,
		})
	}

	for i := 0; i < 80; i++ {
		ts += 60_000
		open := price
		osc := math.Sin(float64(i)/4) * price * 0.01
		price = open + osc
		bars = append(bars, candle.Bar{
			Open:      open,
			High:      price + price*0.0015,
			Low:       price - price*0.0015,
			Close:     price,
			Volume:    50 + float64(i%5),
			Timestamp: ts,
		})
	}

	return bars
}

// eventPrinter is an events.Observer that logs each event through the
// engine's own structured logger, so a single `go run` gives visibility into
// every setup/fill/exit without a separate event-processing pipeline.
type eventPrinter struct {
	log logger.Logger
}

func (p *eventPrinter) OnSetupDetected(e events.SetupDetected) {
	p.log.Info("setup detected", logger.String("strategy", string(e.Strategy)), logger.String("direction", string(e.Direction)))
}

func (p *eventPrinter) OnOrderSubmitted(e events.OrderSubmitted) {
	p.log.Info("order submitted", logger.String("position_id", e.PositionID), logger.String("order_type", string(e.Order.OrderType)), logger.Float64("entry_price", e.Order.EntryPrice))
}

func (p *eventPrinter) OnOrderFilled(e events.OrderFilled) {
	p.log.Info("order filled", logger.String("position_id", e.PositionID), logger.Float64("price", e.Price), logger.Float64("avg_entry", e.NewAvgEntry), logger.Float64("total_size", e.NewTotalSize))
}

func (p *eventPrinter) OnSLMoved(e events.SLMoved) {
	p.log.Info("stop-loss moved", logger.String("position_id", e.PositionID), logger.String("reason", string(e.Reason)), logger.Float64("old_sl", e.OldSL), logger.Float64("new_sl", e.NewSL))
}

func (p *eventPrinter) OnScaleInCancelled(e events.ScaleInCancelled) {
	p.log.Info("scale-in cancelled", logger.String("position_id", e.PositionID), logger.Int("count", e.CancelledCount), logger.Float64("current_r", e.CurrentR))
}

func (p *eventPrinter) OnPositionClosed(e events.PositionClosed) {
	p.log.Info("position closed", logger.String("position_id", e.PositionID), logger.String("reason", string(e.Reason)), logger.Float64("pnl", e.RealizedPnL), logger.Float64("r_multiple", e.RMultiple))
}
