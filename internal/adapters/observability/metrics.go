package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "frontdesk"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	RoomTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "room_status_transitions_total", Help: "Room status changes."},
		[]string{"from", "to"},
	)
	OccupancyEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "occupancy_events_total", Help: "Guest check-ins and check-outs."},
		[]string{"event"}, // event: check_in|check_out
	)
	PurchasesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "purchases_recorded_total", Help: "Ledger entries recorded."},
	)
	ChargesAccrued = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "charges_accrued_total", Help: "Sum of prices accrued to room balances."},
	)
	FoliosExported = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "folios_exported_total", Help: "Folio exports by outcome."},
		[]string{"outcome"}, // outcome: ok|miss|error
	)
)

// Serve starts a standalone /metrics listener on addr; empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents,
		RoomTransitions, OccupancyEvents, PurchasesRecorded, ChargesAccrued, FoliosExported,
	)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) {
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveRoomTransition(from, to string) {
	RoomTransitions.WithLabelValues(from, to).Inc()
}

func ObserveOccupancy(event string) {
	OccupancyEvents.WithLabelValues(event).Inc()
}

func ObservePurchase(amount float64) {
	PurchasesRecorded.Inc()
	if amount > 0 {
		ChargesAccrued.Add(amount)
	}
}

func ObserveExport(outcome string) {
	FoliosExported.WithLabelValues(outcome).Inc()
}
