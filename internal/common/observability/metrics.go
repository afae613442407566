package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider     *metric.MeterProvider
	meter             otelmetric.Meter
	queryCounter      otelmetric.Int64Counter
	fallbackCounter   otelmetric.Int64Counter
	responderDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	queryCounter, _ := meter.Int64Counter(
		"queries.processed",
		otelmetric.WithDescription("Number of queries answered, by intent and status"),
	)

	fallbackCounter, _ := meter.Int64Counter(
		"queries.fallbacks",
		otelmetric.WithDescription("Number of fallback hops taken, by responder pair"),
	)

	responderDuration, _ := meter.Float64Histogram(
		"responder.duration",
		otelmetric.WithDescription("Responder call duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:     provider,
		meter:             meter,
		queryCounter:      queryCounter,
		fallbackCounter:   fallbackCounter,
		responderDuration: responderDuration,
	}
}

func (o *Observability) RecordQuery(ctx context.Context, intent, status string) {
	if o.queryCounter != nil {
		o.queryCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("intent", intent),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordFallback(ctx context.Context, from, to string) {
	if o.fallbackCounter != nil {
		o.fallbackCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("from", from),
			attribute.String("to", to),
		))
	}
}

func (o *Observability) RecordResponderDuration(ctx context.Context, responder string, duration time.Duration, status string) {
	if o.responderDuration != nil {
		o.responderDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("responder", responder),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
