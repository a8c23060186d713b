package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/iwvelando/defi-nest/internal/forecast"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics owns a private registry so that several handlers can coexist in
// one process.
type metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	forecastsTotal  *prometheus.CounterVec
	trialsTotal     prometheus.Counter
	meanTokenValue  *prometheus.GaugeVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "defi_nest",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"handler", "method", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "defi_nest",
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of response latency (seconds) for HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"handler", "method"},
		),
		forecastsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "defi_nest",
				Name:      "forecasts_total",
				Help:      "Completed forecasts by scenario and risk level",
			},
			[]string{"scenario", "risk"},
		),
		trialsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "defi_nest",
				Name:      "trials_total",
				Help:      "Total number of simulated trials",
			},
		),
		meanTokenValue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "defi_nest",
				Name:      "last_mean_token_value",
				Help:      "Mean token value of the most recent forecast per scenario",
			},
			[]string{"scenario"},
		),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.forecastsTotal,
		m.trialsTotal,
		m.meanTokenValue,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) instrument(handlerName string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		m.requestsTotal.WithLabelValues(handlerName, r.Method, strconv.Itoa(rw.status)).Inc()
		m.requestDuration.WithLabelValues(handlerName, r.Method).Observe(elapsedSeconds(start))
	})
}

func (m *metrics) observeForecast(result *forecast.Forecast) {
	m.forecastsTotal.WithLabelValues(result.Name, string(result.Report.Risk)).Inc()
	m.trialsTotal.Add(float64(result.Results.Len()))
	m.meanTokenValue.WithLabelValues(result.Name).Set(result.Report.Mean)
}
