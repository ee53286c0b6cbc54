// Package monitor wires the OmniMarket core together: configuration,
// stores, upstream providers, the aggregation poller, the tick archive, and
// the warrants stream.
package monitor

import (
	"context"
	"fmt"
	"time"

	"omnimarket/config"
	"omnimarket/internal/chart/drawing"
	"omnimarket/internal/market"
	"omnimarket/internal/market/aggregator"
	"omnimarket/internal/state"
	"omnimarket/internal/warrants"
	"omnimarket/internal/watchlist"
	"omnimarket/pkg/omniapi"
	"omnimarket/pkg/providers"
	"omnimarket/pkg/storage/localstore"
	"omnimarket/pkg/storage/postgres"

	"go.uber.org/zap"
)

// StartMonitor initializes the data pipeline: it loads the watchlist from
// the backend, polls the per-asset-class providers for normalized ticks,
// keeps the shared stores current, archives observations to Postgres, and
// listens to the warrants monitoring stream.
func StartMonitor(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// Tick history archive
	postgresClient, err := postgres.InitializeAndMigrateTickRecord(cfg.Postgres, cfg.Log.Environment, true)
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}

	// Durable local storage backing drawings and persisted store slices
	local, err := localstore.Open(cfg.LocalStore.Path)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}

	// Shared state
	marketStore := state.NewMarketStore()
	alertStore := state.NewAlertStore(local, logger)
	uiStore := state.NewUIStore(local, logger)
	fanout := state.NewFanout()

	// Chart drawing engine; reloads any persisted annotations
	engine := drawing.NewEngine(local, logger)
	logger.Info("loaded chart drawings",
		zap.Int("count", len(engine.Drawings())),
		zap.String("theme", string(uiStore.Theme())))

	// Per-asset-class providers; a disabled provider leaves its bucket on
	// synthetic data
	var crypto, stock, forex aggregator.Provider
	if p := cfg.Providers.Crypto; p.Enabled {
		crypto = providers.NewCryptoClient(p.Name, p.BaseURL, p.Timeout)
	}
	if p := cfg.Providers.Stock; p.Enabled {
		stock = providers.NewStockClient(p.Name, p.BaseURL, p.APIKey, p.Timeout, logger)
	}
	if p := cfg.Providers.Forex; p.Enabled {
		forex = providers.NewForexClient(p.Name, p.BaseURL, "USD", p.Timeout)
	}
	agg := aggregator.New(crypto, stock, forex, logger)

	// Load the monitored symbol universe and keep it fresh
	apiClient := omniapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	loader := &watchlist.Loader{API: apiClient, Timeout: cfg.API.Timeout, Logger: logger}
	refresher := &watchlist.DailyRefresher{Load: watchlist.DefaultLoadFn(loader)}
	refresher.Start(func(ch <-chan string) {
		for symbol := range ch {
			marketStore.Subscribe(symbol)
		}
	})

	// Configured symbols take precedence; otherwise each poll cycle reads
	// the current subscribed set, so the daily watchlist refresh reaches
	// the poller without a restart.
	symbols := func() []string {
		if len(cfg.Poll.Symbols) > 0 {
			return cfg.Poll.Symbols
		}
		return marketStore.Subscribed()
	}

	// Poll the providers and fan results into the stores and the archive
	agg.StartUpdates(ctx, func(ticks []market.Tick) {
		marketStore.SetTicks(ticks)
		checkAlerts(alertStore, ticks, logger)

		for _, tick := range ticks {
			dbCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			err := postgresClient.InsertTick(dbCtx, postgres.ToTickRecord(tick))
			cancel()
			if err != nil {
				logger.Debug("failed to archive tick",
					zap.String("symbol", tick.Symbol), zap.Error(err))
			}
		}
	}, symbols, cfg.Poll.Interval)

	// Periodically log cache size for visibility
	go func() {
		for {
			logger.Info("current cached ticks", zap.Int("count", len(agg.AllCached())))
			time.Sleep(30 * time.Second)
		}
	}()

	// Warrants monitoring stream
	wsClient := warrants.NewClient(cfg.Warrants.URL,
		cfg.Warrants.BackoffBase, cfg.Warrants.BackoffCap, cfg.Warrants.MaxAttempts,
		fanout, logger)
	if err := wsClient.Connect(); err != nil {
		return err
	}
	go wsClient.Listen(ctx)

	return nil
}

// checkAlerts records a trigger event for every enabled alert whose
// condition the new tick satisfies. Evaluation is local; the authoritative
// alerts engine lives behind the backend API.
func checkAlerts(store *state.AlertStore, ticks []market.Tick, logger *zap.Logger) {
	bySymbol := make(map[string]market.Tick, len(ticks))
	for _, tick := range ticks {
		bySymbol[tick.Symbol] = tick
	}

	for _, alert := range store.Alerts() {
		if !alert.Enabled {
			continue
		}
		tick, ok := bySymbol[alert.Symbol]
		if !ok {
			continue
		}

		crossed := (alert.Condition == "above" && tick.Price >= alert.Threshold) ||
			(alert.Condition == "below" && tick.Price <= alert.Threshold)
		if !crossed {
			continue
		}

		store.RecordTrigger(state.TriggerEvent{
			AlertID: alert.ID,
			Symbol:  alert.Symbol,
			Price:   tick.Price,
			At:      tick.LastUpdate,
		})
		logger.Info("alert triggered",
			zap.String("alert", alert.ID),
			zap.String("symbol", alert.Symbol),
			zap.Float64("price", tick.Price))
	}
}
