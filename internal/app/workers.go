package app

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
	redispkg "github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/pkg/redis"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/pkg/tenantfile"
)

// TenantsSubject is the NATS subject announcing registry changes.
const TenantsSubject = "medibridge.tenants.changed"

// WorkerModule wires the reload triggers: file watcher, NATS and Redis
// pub/sub. It also provides the notifiers the reload endpoint broadcasts on.
var WorkerModule = fx.Module("workers",
	fx.Provide(
		fx.Annotate(ProvideNatsNotifier, fx.ResultTags(`group:"tenant_notifiers"`)),
		fx.Annotate(ProvideRedisNotifier, fx.ResultTags(`group:"tenant_notifiers"`)),
	),
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc       fx.Lifecycle
	Cfg      *config.Config
	Reloader *tenancy.Reloader
	NC       *nats.Conn    `optional:"true"`
	Redis    *redis.Client `optional:"true"`
}

func RegisterWorkers(p WorkerParams) {
	ctx, cancel := context.WithCancel(context.Background())

	p.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			startFileWatcher(ctx, p.Cfg.Tenancy.Reload, p.Reloader)
			startNatsWorker(p.NC, p.Reloader)
			startRedisWorker(ctx, p.Cfg, p.Redis, p.Reloader)
			return nil
		},
		OnStop: func(context.Context) error {
			// NATS drain handled by ProvideNatsClient
			cancel()
			return nil
		},
	})
}

// ---------------------------------------------------------------------------
// file_watcher
// ---------------------------------------------------------------------------

func startFileWatcher(ctx context.Context, cfg config.ReloadConfig, r *tenancy.Reloader) {
	if cfg.File == "" {
		return
	}
	debounce := time.Duration(cfg.DebounceMillis) * time.Millisecond
	if err := tenantfile.Watch(ctx, cfg.File, debounce, r.Trigger); err != nil {
		slog.Error("file_watcher: watch failed", "path", cfg.File, "err", err)
		return
	}
	slog.Info("file_watcher: started", "path", cfg.File)
}

// ---------------------------------------------------------------------------
// nats_worker
// ---------------------------------------------------------------------------

func startNatsWorker(nc *nats.Conn, r *tenancy.Reloader) {
	if nc == nil {
		return
	}
	_, err := nc.Subscribe(TenantsSubject, func(msg *nats.Msg) {
		slog.Debug("nats_worker: registry change received", "origin", string(msg.Data))
		r.Trigger()
	})
	if err != nil {
		slog.Error("nats_worker: subscribe failed", "subject", TenantsSubject, "err", err)
		return
	}
	slog.Info("nats_worker: started", "subject", TenantsSubject)
}

// ---------------------------------------------------------------------------
// redis_worker
// ---------------------------------------------------------------------------

func startRedisWorker(ctx context.Context, cfg *config.Config, rdb *redis.Client, r *tenancy.Reloader) {
	if rdb == nil || !cfg.Tenancy.Reload.Redis {
		return
	}
	channel := redispkg.FromCentralConfig(cfg.Redis).TenantsChannel
	if err := redispkg.Subscribe(ctx, rdb, channel, r.Trigger); err != nil {
		slog.Error("redis_worker: subscribe failed", "channel", channel, "err", err)
		return
	}
	slog.Info("redis_worker: started", "channel", channel)
}

// ---------------------------------------------------------------------------
// notifiers
// ---------------------------------------------------------------------------

func instanceName() string {
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}

type natsNotifier struct {
	nc *nats.Conn
}

// ProvideNatsNotifier returns nil when NATS is not configured; the router
// skips nil notifiers.
func ProvideNatsNotifier(nc *nats.Conn) tenancy.Notifier {
	if nc == nil {
		return nil
	}
	return &natsNotifier{nc: nc}
}

func (n *natsNotifier) Name() string { return "nats" }

func (n *natsNotifier) Notify(context.Context) error {
	return n.nc.Publish(TenantsSubject, []byte(instanceName()))
}

type redisNotifier struct {
	rdb     *redis.Client
	channel string
}

func ProvideRedisNotifier(cfg *config.Config, rdb *redis.Client) tenancy.Notifier {
	if rdb == nil || !cfg.Tenancy.Reload.Redis {
		return nil
	}
	return &redisNotifier{rdb: rdb, channel: redispkg.FromCentralConfig(cfg.Redis).TenantsChannel}
}

func (n *redisNotifier) Name() string { return "redis" }

func (n *redisNotifier) Notify(ctx context.Context) error {
	return redispkg.Notify(ctx, n.rdb, n.channel, instanceName())
}
