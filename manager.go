package apimanager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/apimanager/locale"
	"github.com/kbukum/apimanager/logger"
	"github.com/kbukum/apimanager/observability"
	"github.com/kbukum/apimanager/reachability"
)

var errOffline = errors.New("network unreachable")

// Manager sends endpoint requests. It holds no per-call state and is safe
// for concurrent use.
type Manager struct {
	checker     reachability.Checker
	executor    Executor
	locale      locale.Provider
	servers     map[string]string
	log         *logger.Logger
	metrics     *observability.RequestMetrics
	builderOpts []BuilderOption
	builder     *Builder
}

// Option configures a Manager.
type Option func(*Manager)

// WithChecker sets the connectivity checker consulted before each request.
func WithChecker(c reachability.Checker) Option {
	return func(m *Manager) { m.checker = c }
}

// WithExecutor sets the executor performing round trips.
func WithExecutor(e Executor) Option {
	return func(m *Manager) { m.executor = e }
}

// WithHTTPClient uses client for round trips.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) { m.executor = NewHTTPExecutor(client) }
}

// WithLocale sets the Accept-Language source.
func WithLocale(p locale.Provider) Option {
	return func(m *Manager) { m.locale = p }
}

// WithLogger sets the logger used for debug request dumps.
func WithLogger(l *logger.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithServers registers base URLs by server name. Later calls add to or
// replace earlier entries.
func WithServers(servers map[string]string) Option {
	return func(m *Manager) {
		if m.servers == nil {
			m.servers = make(map[string]string, len(servers))
		}
		maps.Copy(m.servers, servers)
	}
}

// WithMetrics records request metrics.
func WithMetrics(rm *observability.RequestMetrics) Option {
	return func(m *Manager) { m.metrics = rm }
}

// WithBuilderOptions passes options to the request builder.
func WithBuilderOptions(opts ...BuilderOption) Option {
	return func(m *Manager) { m.builderOpts = append(m.builderOpts, opts...) }
}

// New creates a Manager. By default it checks connectivity with a
// reachability.Monitor, sends requests with a fresh HTTPExecutor and reads
// the locale from the environment.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	if m.checker == nil {
		m.checker = reachability.NewMonitor(reachability.Config{})
	}
	if m.executor == nil {
		m.executor = NewHTTPExecutor(nil)
	}
	if m.locale == nil {
		m.locale = locale.Env{}
	}
	if m.log == nil {
		m.log = logger.Nop()
	}
	for name, base := range m.servers {
		u, err := url.Parse(base)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return nil, fmt.Errorf("apimanager: server %q: invalid base url %q", name, base)
		}
	}
	m.builder = NewBuilder(m.locale, m.builderOpts...)
	return m, nil
}

// NewFromConfig creates a Manager from cfg. opts are applied after the
// configured ones and can replace them.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("apimanager: invalid config: %w", err)
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	var loc locale.Provider = locale.Env{}
	if cfg.Locale != "" {
		loc = locale.Static(cfg.Locale)
	}
	checker := reachability.NewMonitor(cfg.Reachability,
		reachability.WithLogger(log.WithComponent("reachability")))

	base := []Option{
		WithLogger(log.WithComponent("apimanager")),
		WithLocale(loc),
		WithServers(cfg.Servers),
		WithChecker(checker),
	}
	return New(append(base, opts...)...)
}

// SendRequest probes connectivity, builds and sends ep, and decodes the
// response into T (see Decode). An unreachable network fails with
// KindNoResponse before anything is sent. file, when non-nil, is uploaded as
// multipart/form-data. debug logs the request and response at debug level.
func SendRequest[T any](ctx context.Context, m *Manager, ep Endpoint, file *UploadData, debug bool) (T, error) {
	var zero T
	ctx, done := m.start(ctx, ep, debug)

	if !m.checker.Probe(ctx) {
		err := newError(KindNoResponse, 0, nil, errOffline)
		done(nil, err)
		return zero, err
	}

	resp, err := m.roundTrip(ctx, ep, file, debug)
	if err != nil {
		done(nil, err)
		return zero, err
	}

	v, err := Decode[T](resp)
	done(resp, err)
	return v, err
}

// Send builds and sends ep without a connectivity check and without
// decoding. Any status code is returned as a Response; errors are
// KindInvalidURL and KindStatusNotOK.
func (m *Manager) Send(ctx context.Context, ep Endpoint) (*Response, error) {
	ctx, done := m.start(ctx, ep, false)
	resp, err := m.roundTrip(ctx, ep, nil, false)
	done(resp, err)
	return resp, err
}

// Watch streams connectivity changes until ctx is cancelled.
func (m *Manager) Watch(ctx context.Context) <-chan bool {
	return m.checker.Watch(ctx)
}

// Close releases idle connections held by the executor.
func (m *Manager) Close(_ context.Context) error {
	if c, ok := m.executor.(interface{ CloseIdleConnections() }); ok {
		c.CloseIdleConnections()
	}
	return nil
}

// ResolveServer fills in the base URL of ep.Server from the registry when it
// is empty. Unknown names are left unresolved.
func (m *Manager) ResolveServer(ep Endpoint) Endpoint {
	if ep.URL != "" || ep.Server.BaseURL != "" || ep.Server.Name == "" {
		return ep
	}
	if base, ok := m.servers[ep.Server.Name]; ok {
		ep.Server.BaseURL = base
	}
	return ep
}

func (m *Manager) roundTrip(ctx context.Context, ep Endpoint, file *UploadData, debug bool) (*Response, error) {
	req, err := m.builder.Build(ctx, m.ResolveServer(ep), file)
	if err != nil {
		return nil, err
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.String(observability.AttrURLHost, req.URL.Host))
	if debug {
		m.dumpRequest(ctx, req)
	}

	resp, err := m.executor.Execute(ctx, req)
	if err != nil {
		var e *Error
		if !errors.As(err, &e) {
			err = newError(KindStatusNotOK, 0, nil, err)
		}
		return nil, err
	}
	if resp == nil {
		return nil, newError(KindNoResponse, 0, nil, nil)
	}
	if debug {
		m.dumpResponse(ctx, req, resp)
	}
	return resp, nil
}

// start opens the send span and returns the callback that closes it and
// records metrics.
func (m *Manager) start(ctx context.Context, ep Endpoint, debug bool) (context.Context, func(*Response, error)) {
	ctx, span := observability.StartSpan(ctx, observability.SpanSend,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(observability.AttrHTTPMethod, string(ep.Method)),
			attribute.String(observability.AttrServerName, ep.Server.Name),
			attribute.Bool(observability.AttrDebug, debug),
		),
	)
	if m.metrics != nil {
		m.metrics.RecordStart(ctx)
	}
	begin := time.Now()

	return ctx, func(resp *Response, err error) {
		defer span.End()
		status := 0
		if resp != nil {
			status = resp.StatusCode
			span.SetAttributes(attribute.Int(observability.AttrStatusCode, status))
		}
		if err != nil {
			kind, _ := KindOf(err)
			span.SetAttributes(attribute.String(observability.AttrErrorKind, kind.String()))
			observability.SetSpanError(ctx, err)
			if m.metrics != nil {
				m.metrics.RecordError(ctx, kind.String(), string(ep.Method))
			}
		}
		if m.metrics != nil {
			host := ""
			if u, ok := m.ResolveServer(ep).ResolveURL(); ok {
				host = u.Host
			}
			m.metrics.RecordEnd(ctx, string(ep.Method), host, status, time.Since(begin))
		}
	}
}

func (m *Manager) dumpRequest(ctx context.Context, req *http.Request) {
	if !m.log.DebugEnabled() {
		return
	}
	log := m.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldURL, req.URL.String(),
	))
	fields := logger.Fields("headers", flattenHeader(req.Header))
	if req.GetBody != nil {
		body, err := readBody(req)
		switch {
		case err != nil:
			fields["body_error"] = err.Error()
		case strings.HasPrefix(req.Header.Get(headerContentType), "multipart/"):
			fields["body_bytes"] = len(body)
		default:
			fields["body"] = displayBody(body)
		}
	}
	log.Debug("sending request", fields)
}

func (m *Manager) dumpResponse(ctx context.Context, req *http.Request, resp *Response) {
	if !m.log.DebugEnabled() {
		return
	}
	m.log.WithContext(ctx).WithFields(logger.Fields(
		logger.FieldMethod, req.Method,
		logger.FieldURL, req.URL.String(),
	)).Debug("received response", logger.Fields(
		logger.FieldStatusCode, resp.StatusCode,
		"body", displayBody(resp.Body),
	))
}

// readBody returns a copy of the request body without consuming it.
func readBody(req *http.Request) ([]byte, error) {
	rc, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

func displayBody(body []byte) string {
	if s, ok := PrettyJSON(body); ok {
		return s
	}
	return string(body)
}

func flattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
