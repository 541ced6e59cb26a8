package logs

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/grafana/loki-client-go/loki"
	promconfig "github.com/prometheus/common/config"
	slogloki "github.com/samber/slog-loki/v3"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
)

type stopFunc func()

func (f stopFunc) Close() error {
	f()
	return nil
}

// newLokiHandler pushes records to the Loki push API, batched by the loki client.
func newLokiHandler(cfg *config.Config, level slog.Level) (slog.Handler, stopFunc, error) {
	lc := cfg.Logging.Output.Loki
	endpoint := strings.TrimSuffix(lc.Endpoint, "/") + "/loki/api/v1/push"

	clientCfg, err := loki.NewDefaultConfig(endpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("loki config: %w", err)
	}
	if lc.Username != "" {
		clientCfg.Client.BasicAuth = &promconfig.BasicAuth{
			Username: lc.Username,
			Password: promconfig.Secret(lc.Password),
		}
	}

	client, err := loki.New(clientCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("loki client: %w", err)
	}

	h := slogloki.Option{Level: level, Client: client}.NewLokiHandler()
	return h, stopFunc(client.Stop), nil
}
