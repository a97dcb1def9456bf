package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	pairsTotal    *prometheus.CounterVec
	runRecords    prometheus.Counter
	runHeld       prometheus.Counter
	runSkipped    prometheus.Counter
	runDuration   prometheus.Histogram
	rateFetches   *prometheus.CounterVec
	rateFetchTime prometheus.Histogram
	visiblePrice  *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		pairsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricer_pairs_total",
				Help: "Processed country/SKU pairs by outcome",
			},
			[]string{"result"},
		),
		runRecords: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "pricer_run_records_total",
				Help: "Price records produced across runs",
			},
		),
		runHeld: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "pricer_run_held_total",
				Help: "Pairs where the previous visible price was kept",
			},
		),
		runSkipped: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "pricer_run_skipped_total",
				Help: "Pairs skipped across runs",
			},
		),
		runDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pricer_run_duration_seconds",
				Help:    "Duration of a full conversion run",
				Buckets: prometheus.DefBuckets,
			},
		),
		rateFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricer_rate_fetches_total",
				Help: "Exchange-rate snapshot fetches by outcome",
			},
			[]string{"result"},
		),
		rateFetchTime: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pricer_rate_fetch_duration_seconds",
				Help:    "Duration of exchange-rate fetches",
				Buckets: prometheus.DefBuckets,
			},
		),
		visiblePrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pricer_visible_price",
				Help: "Last published visible price per country and SKU",
			},
			[]string{"country", "sku"},
		),
	}
}

// RecordPair records a processed pair outcome (adopted, held, skipped).
func (r *Recorder) RecordPair(result string) {
	r.pairsTotal.WithLabelValues(result).Inc()
}

// RecordRun records the totals of one conversion run.
func (r *Recorder) RecordRun(records, held, skipped int, seconds float64) {
	r.runRecords.Add(float64(records))
	r.runHeld.Add(float64(held))
	r.runSkipped.Add(float64(skipped))
	r.runDuration.Observe(seconds)
}

// RecordRateFetch records one snapshot fetch.
func (r *Recorder) RecordRateFetch(seconds float64, failed bool) {
	result := "ok"
	if failed {
		result = "failed"
	}
	r.rateFetches.WithLabelValues(result).Inc()
	r.rateFetchTime.Observe(seconds)
}

// RecordVisiblePrice records the published price for a pair.
func (r *Recorder) RecordVisiblePrice(country, sku string, price float64) {
	r.visiblePrice.WithLabelValues(country, sku).Set(price)
}
