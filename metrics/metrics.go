// Package metrics defines the Prometheus counters of a conversion run.
// A run is a batch job, so instead of being scraped the counters are
// written once, at the end, in the node-exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Structure outcomes.
const (
	Written  = "written"
	NoEdges  = "no_edges"
	Excluded = "excluded"
)

// Set holds the collectors of one run, registered on their own registry.
// All the methods can be called on a nil *Set, in which case they do nothing.
type Set struct {
	reg         *prometheus.Registry
	Materials   prometheus.Counter
	Structures  *prometheus.CounterVec
	Diagnostics *prometheus.CounterVec
	Atoms       prometheus.Counter
}

// New creates and registers the collectors.
func New() *Set {
	S := &Set{
		reg: prometheus.NewRegistry(),
		Materials: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ffdata_materials_total",
				Help: "Materials processed.",
			},
		),
		Structures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ffdata_structures_total",
				Help: "Structures processed, by outcome (written, no_edges, excluded).",
			},
			[]string{"outcome"},
		),
		Diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ffdata_diagnostics_total",
				Help: "Diagnostic records emitted, by reason.",
			},
			[]string{"reason"},
		),
		Atoms: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ffdata_atoms_written_total",
				Help: "Atoms written to any output stream.",
			},
		),
	}
	S.reg.MustRegister(S.Materials, S.Structures, S.Diagnostics, S.Atoms)
	return S
}

// Registry returns the registry where the collectors live.
func (S *Set) Registry() *prometheus.Registry {
	if S == nil {
		return nil
	}
	return S.reg
}

// Material counts one processed material.
func (S *Set) Material() {
	if S != nil {
		S.Materials.Inc()
	}
}

// Structure counts one structure with the given outcome, and, if it
// was written, its atoms.
func (S *Set) Structure(outcome string, atoms int) {
	if S == nil {
		return
	}
	S.Structures.WithLabelValues(outcome).Inc()
	if outcome != Excluded {
		S.Atoms.Add(float64(atoms))
	}
}

// Diagnostic counts one diagnostic record.
func (S *Set) Diagnostic(reason string) {
	if S != nil {
		S.Diagnostics.WithLabelValues(reason).Inc()
	}
}

// WriteTextfile writes the current value of all the collectors to the file
// name, atomically.
func (S *Set) WriteTextfile(name string) error {
	if S == nil {
		return nil
	}
	return prometheus.WriteToTextfile(name, S.reg)
}
