package api

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aemckenna/rig-calc/internal/rig"
	"github.com/aemckenna/rig-calc/internal/session"
)

const metricsNamespace = "rigcalc"

// metrics holds the server's Prometheus registry. Each server gets its own
// registry so tests can build many servers in one process.
type metrics struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	rejections prometheus.Counter
}

func newMetrics(s *Server) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "API requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "placement_rejections_total",
			Help:      "Line placements rejected by validation.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.rejections,
		newRigCollector(s.session, s.hub),
		collectors.NewGoCollector(),
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// rigCollector derives gauges from the live rig at scrape time.
type rigCollector struct {
	session *session.Session
	hub     *Hub

	lines        *prometheus.Desc
	fixtures     *prometheus.Desc
	universeUsed *prometheus.Desc
	universeOver *prometheus.Desc
	circuitWatts *prometheus.Desc
	circuitAmps  *prometheus.Desc
	circuitBand  *prometheus.Desc
	clients      *prometheus.Desc
}

func newRigCollector(s *session.Session, hub *Hub) *rigCollector {
	name := func(sub, n string) string {
		return prometheus.BuildFQName(metricsNamespace, sub, n)
	}
	return &rigCollector{
		session: s,
		hub:     hub,
		lines: prometheus.NewDesc(name("rig", "lines"),
			"Number of lines in the rig.", nil, nil),
		fixtures: prometheus.NewDesc(name("rig", "fixtures"),
			"Number of fixtures across all lines.", nil, nil),
		universeUsed: prometheus.NewDesc(name("universe", "channels_used"),
			"DMX channels patched in a universe, overlaps counted twice.", []string{"universe"}, nil),
		universeOver: prometheus.NewDesc(name("universe", "over_capacity"),
			"1 when a universe has more than 512 channels patched.", []string{"universe"}, nil),
		circuitWatts: prometheus.NewDesc(name("circuit", "watts"),
			"Total wattage on a circuit.", []string{"circuit"}, nil),
		circuitAmps: prometheus.NewDesc(name("circuit", "amps"),
			"Current draw on a circuit at the supply voltage.", []string{"circuit"}, nil),
		circuitBand: prometheus.NewDesc(name("circuit", "load_band"),
			"Circuit load band: 0 normal, 1 warning, 2 over limit.", []string{"circuit"}, nil),
		clients: prometheus.NewDesc(name("websocket", "clients"),
			"Connected WebSocket clients.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *rigCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.lines
	ch <- c.fixtures
	ch <- c.universeUsed
	ch <- c.universeOver
	ch <- c.circuitWatts
	ch <- c.circuitAmps
	ch <- c.circuitBand
	ch <- c.clients
}

// Collect implements prometheus.Collector.
func (c *rigCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.clients, prometheus.GaugeValue, float64(c.hub.ClientCount()))

	summary, err := c.session.Summary()
	if err != nil {
		ch <- prometheus.NewInvalidMetric(c.lines, err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.lines, prometheus.GaugeValue, float64(summary.Lines))
	ch <- prometheus.MustNewConstMetric(c.fixtures, prometheus.GaugeValue, float64(summary.Fixtures))

	for _, u := range summary.Universes {
		label := strconv.Itoa(u.Universe)
		over := 0.0
		if u.Over {
			over = 1
		}
		ch <- prometheus.MustNewConstMetric(c.universeUsed, prometheus.GaugeValue, float64(u.Used), label)
		ch <- prometheus.MustNewConstMetric(c.universeOver, prometheus.GaugeValue, over, label)
	}

	for _, l := range summary.Circuits {
		ch <- prometheus.MustNewConstMetric(c.circuitWatts, prometheus.GaugeValue, l.Watts, l.Circuit)
		ch <- prometheus.MustNewConstMetric(c.circuitAmps, prometheus.GaugeValue, l.Amps, l.Circuit)
		ch <- prometheus.MustNewConstMetric(c.circuitBand, prometheus.GaugeValue, bandLevel(l.Band), l.Circuit)
	}
}

func bandLevel(b rig.Band) float64 {
	switch b {
	case rig.BandWarning:
		return 1
	case rig.BandOver:
		return 2
	default:
		return 0
	}
}
