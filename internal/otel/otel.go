// Package otel wires the OpenTelemetry tracer used by the long-running
// entry points: an OTLP/gRPC exporter with X-Ray compatible trace ids and
// propagation.
package otel

import (
	"context"
	"fmt"
	"time"

	"github.com/samsarahq/go/oops"
	"go.opentelemetry.io/contrib/detectors/aws/ecs"
	otelxray "go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// SetupTracer installs the global tracer provider and propagator for
// svcName. It blocks until the OTLP exporter can dial its collector.
func SetupTracer(ctx context.Context, svcName string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithInsecure(), otlptracegrpc.WithDialOption(grpc.WithBlock()))
	if err != nil {
		return oops.Wrapf(err, "create otel trace exporter")
	}

	r := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceNameKey.String(svcName))
	if detected, err := resource.New(ctx, resource.WithDetectors(ecs.NewResourceDetector())); err == nil {
		if merged, err := resource.Merge(detected, r); err == nil {
			r = merged
		}
	}

	idg := otelxray.NewIDGenerator()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(r),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithIDGenerator(idg),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(otelxray.Propagator{})
	return nil
}

// XRayTraceID renders a span's trace id in the 1-xxxxxxxx-... form the
// X-Ray console searches by.
func XRayTraceID(span trace.Span) string {
	id := span.SpanContext().TraceID().String()
	if len(id) < 9 {
		return id
	}

	return fmt.Sprintf("1-%s-%s", id[:8], id[8:])
}
