// Package metrics defines package-level Prometheus metric variables for
// countedlist. Call Register() once at startup to expose them on the default
// registry, or RegisterWith() to use an isolated registry in tests.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// InsertAttempts counts attempted single-element insertions, by variant.
	InsertAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countedlist_insert_attempts_total",
		Help: "Attempted single-element insertions, by variant.",
	}, []string{"variant"})

	// InsertsAbsorbed counts insertions that changed the list, by variant.
	InsertsAbsorbed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countedlist_inserts_absorbed_total",
		Help: "Insertions that changed the list contents, by variant.",
	}, []string{"variant"})

	// Removals counts elements removed from the list, by variant.
	Removals = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countedlist_removals_total",
		Help: "Elements removed from the list, by variant.",
	}, []string{"variant"})

	// OpsApplied counts applied operations, labelled by op kind.
	OpsApplied = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countedlist_ops_applied_total",
		Help: "Operations applied, by kind.",
	}, []string{"op"})

	// OpErrors counts operations that returned an error, labelled by op kind.
	OpErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "countedlist_op_errors_total",
		Help: "Operations that returned an error, by kind.",
	}, []string{"op"})

	// ListSize is the current number of elements, by variant.
	ListSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "countedlist_size",
		Help: "Current number of elements in the list, by variant.",
	}, []string{"variant"})
)

// Register registers all metrics with prometheus.DefaultRegisterer.
// Call once at process startup.
func Register() {
	RegisterWith(prometheus.DefaultRegisterer)
}

// RegisterWith registers all metrics with the given registerer.
// Use an isolated prometheus.NewRegistry() in tests to avoid conflicts.
func RegisterWith(reg prometheus.Registerer) {
	reg.MustRegister(
		InsertAttempts,
		InsertsAbsorbed,
		Removals,
		OpsApplied,
		OpErrors,
		ListSize,
	)
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format, for pickup by a textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
