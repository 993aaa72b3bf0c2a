/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"k8s.io/klog/v2"
)

const (
	// DefaultServiceName is the reported service.name.
	DefaultServiceName = "worthsplit"

	// TracerName is the instrumentation scope of spans started by Tracer.
	TracerName = "sigs.k8s.io/worthsplit"
)

// Config selects where spans are exported. An empty CollectorEndpoint
// leaves tracing disabled.
type Config struct {
	CollectorEndpoint string
	ServiceName       string
	ServiceVersion    string
	// SampleRate is the fraction of root spans kept.
	SampleRate float64
}

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

var provider trace.TracerProvider = noop.NewTracerProvider()

// NewTracerProvider installs a global tracer provider exporting over
// OTLP/gRPC. On failure a no-op provider is installed and the error returned.
func NewTracerProvider(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	logger := klog.FromContext(ctx)
	noopShutdown := func(context.Context) error { return nil }

	if cfg.CollectorEndpoint == "" {
		logger.V(2).Info("Tracing disabled, no collector endpoint configured")
		install(noop.NewTracerProvider())
		return noopShutdown, nil
	}

	client := otlptracegrpc.NewClient(
		otlptracegrpc.WithEndpoint(cfg.CollectorEndpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	)
	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		install(noop.NewTracerProvider())
		return noopShutdown, fmt.Errorf("creating OTLP trace exporter: %w", err)
	}

	name := cfg.ServiceName
	if name == "" {
		name = DefaultServiceName
	}
	resource := sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(name),
		semconv.ServiceVersion(cfg.ServiceVersion),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
	)
	install(tp)
	logger.Info("Tracing enabled", "endpoint", cfg.CollectorEndpoint, "sampleRate", cfg.SampleRate)

	return tp.Shutdown, nil
}

func install(tp trace.TracerProvider) {
	provider = tp
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
}

// Tracer returns the tracer of the installed provider.
func Tracer() trace.Tracer {
	return provider.Tracer(TracerName)
}
