package tenancy

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"

// Reloader rebuilds the registry snapshot from its sources out-of-band and
// publishes it to the Store. Requests never wait on it.
type Reloader struct {
	store    *Store
	sources  []Source
	interval time.Duration
	log      *slog.Logger

	trigger chan struct{}
	reloads metric.Int64Counter

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewReloader(store *Store, sources []Source, interval time.Duration, log *slog.Logger) *Reloader {
	if log == nil {
		log = slog.Default()
	}

	meter := otel.Meter(meterName)
	reloads, _ := meter.Int64Counter(
		"tenant_registry_reloads_total",
		metric.WithDescription("Tenant registry reload attempts"),
		metric.WithUnit("{reload}"),
	)
	_, _ = meter.Int64ObservableGauge(
		"tenant_registry_tenants",
		metric.WithDescription("Tenants in the published registry snapshot"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(store.Load().Len()))
			return nil
		}),
	)

	return &Reloader{
		store:    store,
		sources:  sources,
		interval: interval,
		log:      log,
		trigger:  make(chan struct{}, 1),
		reloads:  reloads,
	}
}

// Reload loads every source and swaps in the merged snapshot. If any source
// fails the previous snapshot stays published.
func (r *Reloader) Reload(ctx context.Context) (*Snapshot, error) {
	lists := make([][]Tenant, 0, len(r.sources))
	for _, src := range r.sources {
		tenants, err := src.Load(ctx)
		if err != nil {
			r.record(ctx, "error")
			return nil, fmt.Errorf("load tenants from %s: %w", src.Name(), err)
		}
		lists = append(lists, tenants)
	}

	snap, errs := NewSnapshot(Merge(lists...))
	for _, err := range errs {
		r.log.Warn("skipping tenant registry entry", "error", err)
	}

	prev := r.store.Swap(snap)
	r.record(ctx, "ok")
	r.log.Info("tenant registry reloaded",
		"tenants", snap.Len(),
		"previous", prev.Len(),
		"sources", len(r.sources),
	)
	return snap, nil
}

func (r *Reloader) record(ctx context.Context, result string) {
	if r.reloads != nil {
		r.reloads.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	}
}

// Trigger asks for a reload soon. Calls made while one is pending coalesce.
func (r *Reloader) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Run reloads once, then on every tick and trigger until ctx is done.
func (r *Reloader) Run(ctx context.Context) {
	if _, err := r.Reload(ctx); err != nil {
		r.log.Error("initial tenant registry load failed", "error", err)
	}
	r.loop(ctx)
}

// Start runs the reload loop in the background. The first load happens
// before Start returns so the registry is warm when the server starts.
func (r *Reloader) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return nil
	}

	if _, err := r.Reload(ctx); err != nil {
		r.log.Error("initial tenant registry load failed", "error", err)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel, r.done = cancel, done

	go func() {
		defer close(done)
		r.loop(loopCtx)
	}()

	return nil
}

func (r *Reloader) loop(ctx context.Context) {
	var tick <-chan time.Time
	if r.interval > 0 {
		t := time.NewTicker(r.interval)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
		case <-r.trigger:
		}
		if _, err := r.Reload(ctx); err != nil {
			r.log.Error("tenant registry reload failed", "error", err)
		}
	}
}

// Stop ends the loop started by Start and waits for it to exit.
func (r *Reloader) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
