package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
	httpapi "github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/api/http"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/api/http/router"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/internal/app"
	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/pkg/logs"
)

func NewStartCommand() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the HTTP server with tenant routing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return err
			}

			cfg, err := config.ReadConfig(cfgPath)
			if err != nil {
				return err
			}

			// Set up structured logger before fx starts so all logs use it.
			logger, closer := logs.New(cfg)
			defer closer.Close()
			slog.SetDefault(logger)

			fxApp := fx.New(
				fx.Supply(cfg),
				app.InfraModule,
				app.TenancyModule,
				app.WorkerModule,
				router.Module,
				httpapi.Module,
				// forces construction of the fiber app so its OnStart hook runs
				fx.Invoke(func(*fiber.App) {}),
				fx.StopTimeout(shutdownTimeout),
				fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
			)

			fxApp.Run()
			return fxApp.Err()
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "Maximum time to wait for graceful shutdown")

	return cmd
}
