// Package telemetry 初始化 OpenTelemetry 链路追踪：
// 全局 TracerProvider、OTLP gRPC 导出器和 W3C 传播器。
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pawhaven/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const defaultServiceName = "pawhaven-api"

// Provider 已注册为全局的追踪提供者
type Provider struct {
	tp *sdktrace.TracerProvider
}

// Option 追踪初始化选项
type Option func(*setupOptions)

type setupOptions struct {
	exporter sdktrace.SpanExporter
}

// WithExporter 替换默认的 OTLP 导出器
func WithExporter(exporter sdktrace.SpanExporter) Option {
	return func(o *setupOptions) {
		o.exporter = exporter
	}
}

// Setup 创建 TracerProvider 并注册为全局提供者，调用方负责 Shutdown
func Setup(ctx context.Context, cfg config.TelemetryConfig, opts ...Option) (*Provider, error) {
	options := setupOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	exporter := options.exporter
	if exporter == nil {
		var err error
		exporter, err = newOTLPExporter(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", ServiceName(cfg)),
			attribute.String("deployment.environment", strings.TrimSpace(cfg.Environment)),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build telemetry resource failed: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return &Provider{tp: tp}, nil
}

// ServiceName 返回配置的服务名，未配置时使用默认值
func ServiceName(cfg config.TelemetryConfig) string {
	if name := strings.TrimSpace(cfg.ServiceName); name != "" {
		return name
	}
	return defaultServiceName
}

// ForceFlush 立即导出缓冲中的 span
func (p *Provider) ForceFlush(ctx context.Context) error {
	if p == nil || p.tp == nil {
		return nil
	}
	return p.tp.ForceFlush(ctx)
}

// Shutdown 刷出剩余 span 并关闭导出器
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.tp == nil {
		return nil
	}
	if err := p.tp.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown tracer provider failed: %w", err)
	}
	return nil
}

func newOTLPExporter(ctx context.Context, cfg config.TelemetryConfig) (sdktrace.SpanExporter, error) {
	endpoint := stripScheme(strings.TrimSpace(cfg.Endpoint))
	if endpoint == "" {
		endpoint = "localhost:4317"
	}
	clientOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
	if cfg.Insecure {
		clientOpts = append(clientOpts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp trace exporter for %s failed: %w", endpoint, err)
	}
	return exporter, nil
}

// sampler 比例不在 (0,1) 内时全量采样
func sampler(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.TraceIDRatioBased(ratio)
}

func stripScheme(endpoint string) string {
	for _, prefix := range []string{"http://", "https://"} {
		if strings.HasPrefix(endpoint, prefix) {
			return strings.TrimPrefix(endpoint, prefix)
		}
	}
	return endpoint
}
