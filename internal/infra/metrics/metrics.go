// Package metrics provides Prometheus metrics for the hbnb console.
// Counters cover dispatched commands, reported errors and storage flushes;
// the set is written to a node-exporter textfile when the session closes.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Commands ───────────────────────────────────────────────────────────────

// CommandsTotal counts dispatched command lines by verb ("unknown" for
// lines that match no verb).
var CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hbnb",
	Name:      "commands_total",
	Help:      "Total command lines dispatched.",
}, []string{"verb"})

// CommandErrors counts commands that ended in an error, by verb and reason.
var CommandErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hbnb",
	Name:      "command_errors_total",
	Help:      "Total commands that reported an error.",
}, []string{"verb", "reason"})

// ─── Storage ────────────────────────────────────────────────────────────────

// StorageFlushes counts writes to durable storage. Scope is "all" for a
// full flush and "instance" for a single instance's save hook.
var StorageFlushes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "hbnb",
	Name:      "storage_flushes_total",
	Help:      "Total writes to durable storage.",
}, []string{"backend", "scope"})

// StorageFlushLatency tracks flush duration in seconds.
var StorageFlushLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "hbnb",
	Name:      "storage_flush_seconds",
	Help:      "Duration of writes to durable storage.",
	Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
}, []string{"backend"})

// Instances tracks the number of live instances after the last flush or reload.
var Instances = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "hbnb",
	Name:      "instances",
	Help:      "Number of instances held by storage.",
})

// WriteTextfile writes every registered metric to path in the text
// exposition format.
func WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
