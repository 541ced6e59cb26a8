package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/cmd/http"
	systemcmd "github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/cmd/system"
	tenantcmd "github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/cmd/tenant"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "medibridge",
	Short: "MediBridge clinic routing service.",
	Long: `MediBridge serves every clinic from one deployment. This service maps clinic
subdomains such as cgh.medibridge24x7.com onto the clinic landing route.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
	rootCmd.AddCommand(tenantcmd.NewTenantCommand())
}
