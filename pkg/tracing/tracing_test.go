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
	"testing"
)

func TestNewTracerProviderDisabled(t *testing.T) {
	shutdown, err := NewTracerProvider(context.Background(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer shutdown(context.Background())

	_, span := Tracer().Start(context.Background(), "noop")
	defer span.End()
	if span.SpanContext().IsValid() {
		t.Errorf("disabled tracing should produce invalid span contexts")
	}
}

func TestNewTracerProviderEnabled(t *testing.T) {
	ctx := context.Background()
	// The gRPC client connects lazily, so no collector is needed here.
	shutdown, err := NewTracerProvider(ctx, Config{CollectorEndpoint: "127.0.0.1:4317", SampleRate: 1})
	if err != nil {
		t.Fatal(err)
	}
	_, span := Tracer().Start(ctx, "sampled")
	if !span.SpanContext().IsSampled() {
		t.Errorf("sample rate 1 should sample every span")
	}
	span.End()

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_ = shutdown(cancelled)
}
