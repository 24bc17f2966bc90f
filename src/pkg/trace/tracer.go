package trace

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

var tracer trace.Tracer
var spanRecorder *spanRecorderProcessor
var outputDir string

// PhaseInfo is one recorded pipeline phase
type PhaseInfo struct {
	Name       string  `json:"name"`
	DurationMs float64 `json:"durationMs"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
}

// PerformanceReport summarizes how long each pipeline phase took
type PerformanceReport struct {
	Phases          []PhaseInfo `json:"phases"`
	TotalDurationMs float64     `json:"totalDurationMs"`
	Timestamp       string      `json:"timestamp"`
}

// InitTracer initializes OpenTelemetry tracing. When disabled it returns a
// no-op shutdown. The shutdown function flushes spans and writes the
// performance report into outDir.
func InitTracer(serviceName string, enabled bool, outDir string) (func(), error) {
	if !enabled {
		return func() {}, nil
	}

	spanRecorder = &spanRecorderProcessor{}
	outputDir = outDir

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(spanRecorder),
	)

	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(serviceName)

	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// Silently fail; timing is best effort
		_ = tp.Shutdown(ctx)
		_ = ExportReport()
	}
	return shutdown, nil
}

// StartSpan starts a new span, or returns the incoming span untouched when
// tracing is disabled
func StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name)
}

// spanRecorderProcessor keeps finished spans for the performance report
type spanRecorderProcessor struct {
	phases []PhaseInfo
}

func (p *spanRecorderProcessor) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {}

func (p *spanRecorderProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	p.phases = append(p.phases, PhaseInfo{
		Name:       s.Name(),
		DurationMs: float64(s.EndTime().Sub(s.StartTime()).Microseconds()) / 1000.0,
		Start:      s.StartTime().Format(time.RFC3339Nano),
		End:        s.EndTime().Format(time.RFC3339Nano),
	})
}

func (p *spanRecorderProcessor) Shutdown(ctx context.Context) error   { return nil }
func (p *spanRecorderProcessor) ForceFlush(ctx context.Context) error { return nil }

// ExportReport writes the performance report to a JSON file in the output
// directory
func ExportReport() error {
	if spanRecorder == nil || len(spanRecorder.phases) == 0 || outputDir == "" {
		return nil
	}

	phases := make([]PhaseInfo, len(spanRecorder.phases))
	copy(phases, spanRecorder.phases)
	sort.Slice(phases, func(i, j int) bool {
		return phases[i].Start < phases[j].Start
	})

	total := 0.0
	for _, phase := range phases {
		total += phase.DurationMs
	}

	report := PerformanceReport{
		Phases:          phases,
		TotalDurationMs: total,
		Timestamp:       time.Now().Format(time.RFC3339Nano),
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	reportPath := filepath.Join(outputDir, "performance-report.json")
	if err := os.WriteFile(reportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
