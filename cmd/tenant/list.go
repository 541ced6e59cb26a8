package tenant

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/pkg/tenantfile"
)

func NewListCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the clinics in the offline registry",
		Long: `List the clinics in the offline registry.

With --output yaml the registry is printed in the registry file format,
ready for "system seed --from".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadOffline(cmd)
			if err != nil {
				return err
			}
			tenants := store.Load().Tenants()

			switch output {
			case "yaml":
				return tenantfile.Write(cmd.OutOrStdout(), tenants)
			case "table", "":
			default:
				return fmt.Errorf("unknown output format %q", output)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SUBDOMAIN\tSLUG\tNAME\tHOST")
			for _, t := range tenants {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s.%s\n", t.Subdomain, t.Slug, t.Name, t.Subdomain, cfg.Tenancy.ProductionDomain)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or yaml")

	return cmd
}
