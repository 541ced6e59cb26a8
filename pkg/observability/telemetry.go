package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
)

const shutdownTimeout = 5 * time.Second

// Config selects which signals the edge exports and how they are labelled.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	// ProductionDomain and NonRootPolicy are stamped on the resource so
	// dashboards can tell apart edges that route differently.
	ProductionDomain string
	NonRootPolicy    string

	Tracing      bool
	OTLPEndpoint string // host:port of an OTLP/HTTP collector; empty keeps spans in-process
	OTLPInsecure bool
	SamplingRate float64 // 0 means sample everything

	Metrics bool
}

// FromCentralConfig maps the observability and tenancy sections onto Config.
func FromCentralConfig(cfg *config.Config) Config {
	o := cfg.Observability
	name := o.ServiceName
	if name == "" {
		name = "medibridge"
	}
	return Config{
		ServiceName:      name,
		ServiceVersion:   o.ServiceVersion,
		Environment:      cfg.Server.Environment,
		ProductionDomain: cfg.Tenancy.ProductionDomain,
		NonRootPolicy:    cfg.Tenancy.NonRootPolicy,
		Tracing:          o.Tracing.Enabled,
		OTLPEndpoint:     o.Tracing.OTLPEndpoint,
		OTLPInsecure:     o.Tracing.OTLPInsecure,
		SamplingRate:     o.Tracing.SamplingRate,
		Metrics:          o.Metrics.Enabled,
	}
}

// Provider owns the SDK providers installed as the otel globals. Either
// field is nil when that signal is disabled.
type Provider struct {
	TracerProvider     *trace.TracerProvider
	MeterProvider      *metric.MeterProvider
	PrometheusExporter *prometheus.Exporter
}

// InitTelemetry builds the enabled providers and installs them globally.
// Instruments created earlier through otel.Meter/otel.Tracer pick them up.
func InitTelemetry(ctx context.Context, cfg Config) (*Provider, error) {
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("medibridge.production_domain", cfg.ProductionDomain),
		attribute.String("medibridge.non_root_policy", cfg.NonRootPolicy),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	p := &Provider{}

	if cfg.Tracing {
		if p.TracerProvider, err = newTracerProvider(ctx, res, cfg); err != nil {
			return nil, err
		}
		otel.SetTracerProvider(p.TracerProvider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	}

	if cfg.Metrics {
		if p.PrometheusExporter, err = prometheus.New(); err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		p.MeterProvider = metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(p.PrometheusExporter),
		)
		otel.SetMeterProvider(p.MeterProvider)
	}

	return p, nil
}

func newTracerProvider(ctx context.Context, res *resource.Resource, cfg Config) (*trace.TracerProvider, error) {
	rate := cfg.SamplingRate
	if rate <= 0 || rate > 1 {
		rate = 1
	}

	opts := []trace.TracerProviderOption{
		trace.WithResource(res),
		// follow the caller's sampling decision when a traceparent arrives
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(rate))),
	}

	if cfg.OTLPEndpoint != "" {
		exOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.OTLPInsecure {
			exOpts = append(exOpts, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptracehttp.New(ctx, exOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		opts = append(opts, trace.WithBatcher(exporter))
	}

	return trace.NewTracerProvider(opts...), nil
}

// Shutdown flushes and stops whatever providers were built.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider: %w", err))
		}
	}
	return errors.Join(errs...)
}
