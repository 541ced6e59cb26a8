package tenant

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/tenancy"
)

func NewResolveCommand() *cobra.Command {
	var (
		host   string
		path   string
		policy string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the routing decision for a host and path",
		Example: `  medibridge tenant resolve --host cgh.medibridge24x7.com
  medibridge tenant resolve --host cgh.localhost:3000 --path /appointments --policy force_rewrite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadOffline(cmd)
			if err != nil {
				return err
			}

			if policy != "" {
				cfg.Tenancy.NonRootPolicy = policy
			}
			opts, err := tenancy.OptionsFromConfig(cfg.Tenancy)
			if err != nil {
				return err
			}
			resolver, err := tenancy.NewResolver(opts, store)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(resolver.Resolve(host, path), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Host header value, e.g. cgh.medibridge24x7.com")
	cmd.Flags().StringVar(&path, "path", "/", "URL path")
	cmd.Flags().StringVar(&policy, "policy", "", "Override tenancy.non_root_policy (passthrough or force_rewrite)")
	_ = cmd.MarkFlagRequired("host")

	return cmd
}
