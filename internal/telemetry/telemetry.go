package telemetry

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/unkn0wn-root/curlparse/internal/curl"
	"github.com/unkn0wn-root/curlparse/internal/errdef"
)

const spanName = "curl.parse"

var (
	tracerName      = "github.com/unkn0wn-root/curlparse/internal/telemetry"
	httpHostKey     = attribute.Key("http.host")
	sourceKey       = attribute.Key("curlparse.source")
	inputBytesKey   = attribute.Key("curlparse.input.bytes")
	bodyKindKey     = attribute.Key("curlparse.body.kind")
	warnCountKey    = attribute.Key("curlparse.warning.count")
	warnCodesKey    = attribute.Key("curlparse.warning.codes")
	warnCodeKey     = attribute.Key("curlparse.warning.code")
	queryCountKey   = attribute.Key("curlparse.query.count")
	headerCountKey  = attribute.Key("curlparse.header.count")
	errorCodeKey    = attribute.Key("curlparse.error.code")
	warningEvent    = "curlparse.warning"
	defaultDialWait = 5 * time.Second
)

type Instrumenter interface {
	Start(ctx context.Context, info ParseStart) (context.Context, ParseSpan)
	Shutdown(ctx context.Context) error
}

// ParseStart describes one parse call. Source names where the input came
// from (arg, file, clipboard, stdin).
type ParseStart struct {
	Source string
	Input  string
}

type ParseSpan interface {
	End(res *curl.Result, err error)
}

type providerOptions struct {
	exporter       sdktrace.SpanExporter
	spanProcessors []sdktrace.SpanProcessor
}

type Option func(*providerOptions)

func WithSpanProcessor(proc sdktrace.SpanProcessor) Option {
	return func(opts *providerOptions) {
		if proc != nil {
			opts.spanProcessors = append(opts.spanProcessors, proc)
		}
	}
}

func WithExporter(exp sdktrace.SpanExporter) Option {
	return func(opts *providerOptions) {
		if exp != nil {
			opts.exporter = exp
		}
	}
}

type manager struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	shutdown sync.Once
}

// New returns an OTLP-backed instrumenter, or Noop when neither an endpoint
// nor an explicit exporter or processor is configured.
func New(cfg Config, opts ...Option) (Instrumenter, error) {
	builder := providerOptions{}
	for _, opt := range opts {
		opt(&builder)
	}

	if !cfg.Enabled() && builder.exporter == nil && len(builder.spanProcessors) == 0 {
		return Noop(), nil
	}

	res, err := resource.New(
		context.Background(),
		resource.WithSchemaURL(semconv.SchemaURL),
		resource.WithAttributes(buildResourceAttributes(cfg)...),
	)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeTelemetry, err, "build resource")
	}

	exporter := builder.exporter
	if exporter == nil && cfg.Enabled() {
		exporter, err = newExporter(cfg)
		if err != nil {
			return nil, err
		}
	}

	var tpOpts []sdktrace.TracerProviderOption
	tpOpts = append(tpOpts, sdktrace.WithResource(res))
	if exporter != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
	}
	for _, proc := range builder.spanProcessors {
		tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(proc))
	}

	tp := sdktrace.NewTracerProvider(tpOpts...)
	return &manager{tracer: tp.Tracer(tracerName), provider: tp}, nil
}

func (m *manager) Start(ctx context.Context, info ParseStart) (context.Context, ParseSpan) {
	attrs := []attribute.KeyValue{
		inputBytesKey.Int(len(info.Input)),
	}
	if src := strings.TrimSpace(info.Source); src != "" {
		attrs = append(attrs, sourceKey.String(src))
	}
	ctx, span := m.tracer.Start(
		ctx,
		spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	return ctx, &parseSpan{span: span}
}

func (m *manager) Shutdown(ctx context.Context) error {
	if m == nil || m.provider == nil {
		return nil
	}
	var shutdownErr error
	m.shutdown.Do(func() {
		shutdownErr = m.provider.Shutdown(ctx)
	})
	return shutdownErr
}

type parseSpan struct {
	span trace.Span
}

func (ps *parseSpan) End(res *curl.Result, err error) {
	if ps == nil || ps.span == nil {
		return
	}

	if err != nil {
		ps.span.RecordError(err)
		ps.span.SetAttributes(errorCodeKey.String(string(errdef.CodeOf(err))))
		ps.span.SetStatus(codes.Error, errdef.Message(err))
		ps.span.End()
		return
	}

	if res != nil {
		ps.span.SetAttributes(buildResultAttributes(res)...)
		for _, w := range res.Warnings {
			ps.span.AddEvent(warningEvent, trace.WithAttributes(
				warnCodeKey.String(string(w.Code)),
				attribute.String("curlparse.warning.message", w.Message),
			))
		}
	}
	ps.span.SetStatus(codes.Ok, "OK")
	ps.span.End()
}

func Noop() Instrumenter {
	return noopInstrumenter{}
}

type noopInstrumenter struct{}

type noopSpan struct{}

func (noopInstrumenter) Start(ctx context.Context, _ ParseStart) (context.Context, ParseSpan) {
	return ctx, noopSpan{}
}

func (noopInstrumenter) Shutdown(context.Context) error { return nil }

func (noopSpan) End(*curl.Result, error) {}

func newExporter(cfg Config) (sdktrace.SpanExporter, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errdef.New(errdef.CodeTelemetry, "telemetry endpoint is required")
	}

	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialWait
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		clientOpts = append(clientOpts, otlptracegrpc.WithInsecure())
	}
	if len(cfg.Headers) > 0 {
		clientOpts = append(clientOpts, otlptracegrpc.WithHeaders(cfg.Headers))
	}

	client := otlptracegrpc.NewClient(clientOpts...)
	exp, err := otlptrace.New(ctx, client)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeTelemetry, err, "start otlp exporter")
	}
	return exp, nil
}

func buildResourceAttributes(cfg Config) []attribute.KeyValue {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = DefaultServiceName
	}
	attrs := []attribute.KeyValue{
		semconv.ServiceName(name),
	}
	if strings.TrimSpace(cfg.Version) != "" {
		attrs = append(attrs, semconv.ServiceVersion(cfg.Version))
	}
	return attrs
}

func buildResultAttributes(res *curl.Result) []attribute.KeyValue {
	warned := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		warned = append(warned, string(w.Code))
	}
	attrs := []attribute.KeyValue{
		warnCountKey.Int(len(res.Warnings)),
		warnCodesKey.StringSlice(warned),
	}

	req := res.Request
	if req == nil {
		return attrs
	}
	attrs = append(attrs,
		semconv.HTTPMethodKey.String(req.Method),
		queryCountKey.Int(len(req.Query)),
		headerCountKey.Int(len(req.Headers)),
	)
	if u, err := url.Parse(req.URL); err == nil {
		if scheme := u.Scheme; scheme != "" {
			attrs = append(attrs, semconv.HTTPSchemeKey.String(scheme))
		}
		if host := u.Host; host != "" {
			attrs = append(attrs, httpHostKey.String(host))
		}
	}
	kind := curl.BodyNone
	if req.Body != nil {
		kind = req.Body.Kind
	}
	attrs = append(attrs, bodyKindKey.String(string(kind)))
	return attrs
}
