// Package metrics provides optional Prometheus instrumentation for a
// vtclient.Client, following the teacher's middleware/metrics.go shape: a
// Config/Option pair and a Collector an embedder can hand back to
// Unregister. There is no default registry: Register takes the
// prometheus.Registerer to install into.
//
// Unlike middleware/metrics.go's Inc/Add/Observe calls threaded through
// request handling, every metric here is a GaugeFunc reading straight from
// vtclient.Client.Stats() at scrape time. vtclient already keeps its own
// lock-free counters (vtclient/stats.go); this package has nothing to
// increment itself, only to expose, so there is no background poller and
// no staleness between scrapes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fieldkit/isovt/vtclient"
)

// Config configures the metrics registered for a Client.
type Config struct {
	// Namespace is the metrics namespace (default: "isovt").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to every metric.
	ConstLabels prometheus.Labels
}

// Option configures the metrics registered for a Client.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for every metric.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) { c.ConstLabels = labels }
}

func defaultConfig() Config {
	return Config{Namespace: "isovt"}
}

// Collector holds the metrics Register installed for one Client, so a
// caller that tears a Client down can Unregister them rather than leaking
// GaugeFuncs that close over a dead client.
type Collector struct {
	framesSent     prometheus.GaugeFunc
	framesReceived prometheus.GaugeFunc
	bytesUploaded  prometheus.GaugeFunc
	retriesDrained prometheus.GaugeFunc
	state          prometheus.GaugeFunc
}

// Register installs a Collector's worth of GaugeFuncs backed by
// client.Stats() into reg. Registration is opt-in: vtclient imports
// nothing from this package, so an embedder that never calls Register pays
// no Prometheus cost.
func Register(reg prometheus.Registerer, client *vtclient.Client, opts ...Option) *Collector {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	gauge := func(name, help string, value func(vtclient.Stats) float64) prometheus.GaugeFunc {
		gf := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: cfg.ConstLabels,
		}, func() float64 { return value(client.Stats()) })
		reg.MustRegister(gf)
		return gf
	}

	return &Collector{
		framesSent: gauge("frames_sent_total", "Frames submitted to the network manager.",
			func(s vtclient.Stats) float64 { return float64(s.FramesSent) }),
		framesReceived: gauge("frames_received_total", "Frames delivered by the network manager.",
			func(s vtclient.Stats) float64 { return float64(s.FramesReceived) }),
		bytesUploaded: gauge("bytes_uploaded_total", "Object pool bytes successfully uploaded.",
			func(s vtclient.Stats) float64 { return float64(s.BytesUploaded) }),
		retriesDrained: gauge("retries_drained_total", "Deferred retry flags successfully resent.",
			func(s vtclient.Stats) float64 { return float64(s.RetriesDrained) }),
		state: gauge("connection_state", "Current ConnectionState ordinal; see vtclient.ConnectionState.String.",
			func(s vtclient.Stats) float64 { return float64(s.State) }),
	}
}

// Unregister removes every metric c installed from registry. Pass the same
// registerer Register was called with.
func (c *Collector) Unregister(registry prometheus.Registerer) {
	registry.Unregister(c.framesSent)
	registry.Unregister(c.framesReceived)
	registry.Unregister(c.bytesUploaded)
	registry.Unregister(c.retriesDrained)
	registry.Unregister(c.state)
}
