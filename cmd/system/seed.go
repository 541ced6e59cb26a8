package system

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/pkg/database"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/pkg/tenantfile"
)

func NewSeedCommand() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Copy clinics from the config or a registry file into Postgres",
		Long: `Upsert clinics into the clinic_subdomains table. Entries come from the
tenancy.registry config section, or from a YAML registry file with --from.
Invalid entries are reported and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			var src tenancy.Source = tenancy.NewStaticSource(cfg.Tenancy.Registry)
			if from != "" {
				src = tenantfile.NewSource(from)
			}
			entries, err := src.Load(ctx)
			if err != nil {
				return err
			}

			// validate the same way the server does before writing anything
			snap, errs := tenancy.NewSnapshot(entries)
			for _, e := range errs {
				fmt.Fprintln(cmd.ErrOrStderr(), "skipping:", e)
			}

			db, err := database.NewFromCentral(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			n, err := database.Seed(ctx, db, snap.Tenants())
			if err != nil {
				return fmt.Errorf("failed to seed registry: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d clinics from %s.\n", n, src.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "YAML registry file to import instead of tenancy.registry")

	return cmd
}
