package observability

import (
	"context"
	"testing"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
)

func TestFromCentralConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Environment = "staging"
	cfg.Tenancy.ProductionDomain = "medibridge24x7.com"
	cfg.Tenancy.NonRootPolicy = "force_rewrite"
	cfg.Observability.ServiceVersion = "1.2.3"
	cfg.Observability.Tracing.Enabled = true
	cfg.Observability.Tracing.OTLPEndpoint = "otel:4318"
	cfg.Observability.Tracing.OTLPInsecure = true
	cfg.Observability.Tracing.SamplingRate = 0.25

	got := FromCentralConfig(cfg)
	want := Config{
		ServiceName:      "medibridge",
		ServiceVersion:   "1.2.3",
		Environment:      "staging",
		ProductionDomain: "medibridge24x7.com",
		NonRootPolicy:    "force_rewrite",
		Tracing:          true,
		OTLPEndpoint:     "otel:4318",
		OTLPInsecure:     true,
		SamplingRate:     0.25,
	}
	if got != want {
		t.Errorf("FromCentralConfig() = %+v, want %+v", got, want)
	}
}

func TestInitTelemetrySignals(t *testing.T) {
	tests := []struct {
		name        string
		tracing     bool
		metrics     bool
		wantTracer  bool
		wantMetrics bool
	}{
		{"nothing enabled", false, false, false, false},
		{"tracing only", true, false, true, false},
		{"metrics only", false, true, false, true},
		{"both", true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := InitTelemetry(context.Background(), Config{
				ServiceName: "medibridge-test",
				Tracing:     tt.tracing,
				Metrics:     tt.metrics,
			})
			if err != nil {
				t.Fatalf("InitTelemetry: %v", err)
			}
			if (p.TracerProvider != nil) != tt.wantTracer {
				t.Errorf("TracerProvider set = %v, want %v", p.TracerProvider != nil, tt.wantTracer)
			}
			if (p.MeterProvider != nil) != tt.wantMetrics || (p.PrometheusExporter != nil) != tt.wantMetrics {
				t.Errorf("metrics set = %v, want %v", p.MeterProvider != nil, tt.wantMetrics)
			}
			if err := p.Shutdown(context.Background()); err != nil {
				t.Errorf("Shutdown: %v", err)
			}
		})
	}

	var nilProvider *Provider
	if err := nilProvider.Shutdown(context.Background()); err != nil {
		t.Errorf("nil Shutdown: %v", err)
	}
}
