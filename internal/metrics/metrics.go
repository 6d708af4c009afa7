// README: Prometheus collector on a private registry, exposed on its own
// listener so the API port stays free of scrape traffic.
package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	BookingsConfirmed prometheus.Counter
	BookingsRejected  *prometheus.CounterVec // reason label
	FaresComputed     prometheus.Counter
	TripsPosted       prometheus.Counter

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge

	RequestDuration *prometheus.HistogramVec // route, method labels
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		BookingsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "letsgo_bookings_confirmed_total",
			Help: "Total bookings confirmed.",
		}),
		BookingsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "letsgo_bookings_rejected_total",
			Help: "Total booking requests rejected, by reason.",
		}, []string{"reason"}),
		FaresComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "letsgo_fares_computed_total",
			Help: "Total fare breakdowns computed.",
		}),
		TripsPosted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "letsgo_trips_posted_total",
			Help: "Total trips posted by drivers.",
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "letsgo_nats_published_total",
			Help: "Total NATS messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "letsgo_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "letsgo_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "letsgo_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}, []string{"route", "method"}),
	}

	reg.MustRegister(
		c.BookingsConfirmed, c.BookingsRejected,
		c.FaresComputed, c.TripsPosted,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected,
		c.RequestDuration,
	)

	return c
}

// Booking and trip service hooks.

func (c *Collector) BookingConfirmedInc()            { c.BookingsConfirmed.Inc() }
func (c *Collector) BookingRejectedInc(reason string) { c.BookingsRejected.WithLabelValues(reason).Inc() }
func (c *Collector) FareComputedInc()                { c.FaresComputed.Inc() }
func (c *Collector) TripPostedInc()                  { c.TripsPosted.Inc() }

// Publisher hooks.

func (c *Collector) NATSPublishedInc()  { c.NATSPublished.Inc() }
func (c *Collector) NATSPublishErrInc() { c.NATSPublishErrs.Inc() }
func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
	} else {
		c.NATSConnected.Set(0)
	}
}

func (c *Collector) ObserveRequest(route, method string, d time.Duration) {
	c.RequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
