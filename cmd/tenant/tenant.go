package tenant

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/app"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/pkg/logs"
)

func NewTenantCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Inspect clinic subdomain routing",
		Long: `Inspect clinic subdomain routing against the registry in the config file
and the optional registry file. Postgres and Redis are not contacted.`,
	}

	cmd.AddCommand(NewResolveCommand())
	cmd.AddCommand(NewListCommand())

	return cmd
}

// loadOffline reads the config and loads the config and file registry
// sources into a fresh store.
func loadOffline(cmd *cobra.Command) (*config.Config, *tenancy.Store, error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.ReadConfig(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config: %w", err)
	}

	store := tenancy.NewStore()
	reloader := tenancy.NewReloader(store, app.BuildSources(cfg, nil, nil), 0, logs.CLI(cmd.ErrOrStderr()))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := reloader.Reload(ctx); err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}
