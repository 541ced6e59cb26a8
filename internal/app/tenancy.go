package app

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/pkg/database"
	redispkg "github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/pkg/redis"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/pkg/tenantfile"
)

// TenancyModule provides the registry store, its reloader and the resolver.
var TenancyModule = fx.Module("tenancy",
	fx.Provide(
		tenancy.NewStore,
		ProvideSources,
		ProvideReloader,
		ProvideResolver,
	),
)

type SourceParams struct {
	fx.In

	Cfg   *config.Config
	DB    *database.DB  `optional:"true"`
	Redis *redis.Client `optional:"true"`
}

// ProvideSources lists the registry sources in override order: the static
// config table first, then the file, Postgres and Redis.
func ProvideSources(p SourceParams) []tenancy.Source {
	return BuildSources(p.Cfg, p.DB, p.Redis)
}

// BuildSources builds the source list from whatever backends are available.
// The CLI calls it with nil db and rdb to resolve against config and file only.
func BuildSources(cfg *config.Config, db *database.DB, rdb *redis.Client) []tenancy.Source {
	t := cfg.Tenancy
	sources := []tenancy.Source{tenancy.NewStaticSource(t.Registry)}

	if t.Reload.File != "" {
		sources = append(sources, tenantfile.NewSource(t.Reload.File))
	}
	if db != nil {
		sources = append(sources, database.NewTenantSource(db))
	}
	if rdb != nil && t.Reload.Redis {
		sources = append(sources, redispkg.NewTenantSource(rdb, redispkg.FromCentralConfig(cfg.Redis).TenantsKey))
	}
	return sources
}

func ProvideReloader(lc fx.Lifecycle, cfg *config.Config, store *tenancy.Store, sources []tenancy.Source) *tenancy.Reloader {
	r := tenancy.NewReloader(store, sources, tenancy.ReloadInterval(cfg.Tenancy), slog.Default())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			names := make([]string, 0, len(sources))
			for _, s := range sources {
				names = append(names, s.Name())
			}
			slog.Info("starting tenant registry reloader", slog.Any("sources", names))
			return r.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			slog.Debug("stopping tenant registry reloader")
			return r.Stop(ctx)
		},
	})
	return r
}

func ProvideResolver(cfg *config.Config, store *tenancy.Store) (*tenancy.Resolver, error) {
	opts, err := tenancy.OptionsFromConfig(cfg.Tenancy)
	if err != nil {
		return nil, err
	}
	return tenancy.NewResolver(opts, store)
}
