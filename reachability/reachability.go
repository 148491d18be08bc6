package reachability

import (
	"context"
	"net"
	"time"

	"github.com/kbukum/apimanager/logger"
)

const (
	defaultInterval    = 2 * time.Second
	defaultDialTimeout = 3 * time.Second
)

// Status is the reachability of the network path.
type Status int

const (
	StatusUnsatisfied Status = iota
	StatusSatisfied
	// StatusRequiresConnection means interfaces exist but none carries a
	// routable address yet (link up, no lease, captive setup).
	StatusRequiresConnection
)

func (s Status) String() string {
	switch s {
	case StatusSatisfied:
		return "satisfied"
	case StatusRequiresConnection:
		return "requires_connection"
	default:
		return "unsatisfied"
	}
}

// Reachable reports whether requests can be attempted.
func (s Status) Reachable() bool {
	return s == StatusSatisfied
}

// Checker reports network reachability.
type Checker interface {
	// Probe takes one reading. It always returns; a false reading is final.
	Probe(ctx context.Context) bool
	// Watch streams readings until ctx is cancelled, then closes the channel
	// and releases the watcher.
	Watch(ctx context.Context) <-chan bool
}

// PathFunc evaluates the current network path.
type PathFunc func(ctx context.Context) Status

// Config configures a Monitor.
type Config struct {
	// Interval between readings while watching. Defaults to 2s.
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"min=0"`
	// ProbeAddress, when set, is dialed over TCP to confirm a route after the
	// interfaces look usable.
	ProbeAddress string `yaml:"probe_address" mapstructure:"probe_address" validate:"omitempty,hostname_port"`
	// DialTimeout bounds the ProbeAddress dial. Defaults to 3s.
	DialTimeout time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout" validate:"min=0"`
	// Disabled makes every reading reachable.
	Disabled bool `yaml:"disabled" mapstructure:"disabled"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = defaultDialTimeout
	}
}

// Monitor is the default Checker. It reads the OS interface table and
// optionally confirms the route with a TCP dial.
type Monitor struct {
	cfg  Config
	path PathFunc
	dial func(ctx context.Context, network, address string) (net.Conn, error)
	log  *logger.Logger
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithPathFunc replaces the interface scan, e.g. with a platform hook.
func WithPathFunc(fn PathFunc) Option {
	return func(m *Monitor) { m.path = fn }
}

// WithLogger sets the logger used for status change events.
func WithLogger(l *logger.Logger) Option {
	return func(m *Monitor) { m.log = l }
}

// NewMonitor creates a Monitor.
func NewMonitor(cfg Config, opts ...Option) *Monitor {
	cfg.ApplyDefaults()
	m := &Monitor{
		cfg:  cfg,
		path: InterfacePath,
		log:  logger.Nop(),
	}
	d := &net.Dialer{Timeout: cfg.DialTimeout}
	m.dial = d.DialContext
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Status takes one reading of the network path.
func (m *Monitor) Status(ctx context.Context) Status {
	if m.cfg.Disabled {
		return StatusSatisfied
	}
	st := m.path(ctx)
	if st != StatusSatisfied || m.cfg.ProbeAddress == "" {
		return st
	}

	dctx, cancel := context.WithTimeout(ctx, m.cfg.DialTimeout)
	defer cancel()
	conn, err := m.dial(dctx, "tcp", m.cfg.ProbeAddress)
	if err != nil {
		m.log.Debug("probe dial failed", logger.Fields("address", m.cfg.ProbeAddress, logger.FieldError, err.Error()))
		return StatusUnsatisfied
	}
	_ = conn.Close()
	return StatusSatisfied
}

// Probe implements Checker.
func (m *Monitor) Probe(ctx context.Context) bool {
	return m.Status(ctx).Reachable()
}

// Watch implements Checker. The first reading is sent immediately, after
// that only changes are sent.
func (m *Monitor) Watch(ctx context.Context) <-chan bool {
	return poll(ctx, m.cfg.Interval, m.Probe, m.log)
}

func poll(ctx context.Context, interval time.Duration, probe func(context.Context) bool, log *logger.Logger) <-chan bool {
	out := make(chan bool, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var last, sent bool
		for {
			reachable := probe(ctx)
			if !sent || reachable != last {
				log.Debug("reachability changed", logger.Fields(logger.FieldReachable, reachable))
				select {
				case out <- reachable:
				case <-ctx.Done():
					return
				}
				last, sent = reachable, true
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return out
}

// CheckerFunc adapts a probe function to a Checker. Watch polls it at the
// default interval.
type CheckerFunc func(ctx context.Context) bool

// Probe implements Checker.
func (f CheckerFunc) Probe(ctx context.Context) bool { return f(ctx) }

// Watch implements Checker.
func (f CheckerFunc) Watch(ctx context.Context) <-chan bool {
	return poll(ctx, defaultInterval, f, logger.Nop())
}

// Static is a Checker that always reports the same value.
type Static bool

// Probe implements Checker.
func (s Static) Probe(context.Context) bool { return bool(s) }

// Watch implements Checker. It sends the value once and closes the channel
// when ctx is cancelled.
func (s Static) Watch(ctx context.Context) <-chan bool {
	out := make(chan bool, 1)
	out <- bool(s)
	go func() {
		<-ctx.Done()
		close(out)
	}()
	return out
}
