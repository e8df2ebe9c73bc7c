package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rmera/ffdata/archive"
	"github.com/rmera/ffdata/config"
	"github.com/rmera/ffdata/stats"
)

// stdout receives the count report.
var stdout io.Writer = os.Stdout

type countResult struct {
	Count   stats.Count      `json:"count"`
	Atoms   *stats.Summary   `json:"atoms,omitempty"`
	Histo   *stats.Histogram `json:"histogram,omitempty"`
	Sources []string         `json:"sources"`
}

func runCount(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("count", flag.ExitOnError)
	frames := fs.Bool("frames", false, "the files are extended-XYZ files, not archives")
	asJSON := fs.Bool("json", false, "print the results as JSON")
	fs.StringVar(&cfg.Stats.HistogramPlot, "plot", cfg.Stats.HistogramPlot, "save a plot of the atoms-per-structure histogram to this file (archives only)")
	fs.BoolVar(&cfg.Stats.Normalize, "normalize", cfg.Stats.Normalize, "report the atoms-per-structure histogram as fractions of the structures")
	fs.Parse(args)
	res := countResult{Sources: archives(fs, cfg)}

	if *frames {
		for _, name := range res.Sources {
			f, err := os.Open(name)
			if err != nil {
				return err
			}
			c, err := stats.CountFrames(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			res.Count.Structures += c.Structures
			res.Count.Atoms += c.Atoms
		}
	} else {
		A, err := archive.LoadAll(ctx, res.Sources)
		if err != nil {
			return err
		}
		res.Count = stats.CountArchive(A)
		s := stats.Summarize(stats.AtomCounts(A))
		res.Atoms = &s
		res.Histo = stats.AtomHistogram(A)
		if cfg.Stats.Normalize {
			res.Histo.Normalize()
		}
		if p := cfg.Stats.HistogramPlot; p != "" {
			if err := res.Histo.Plot("Atoms per structure", "Atoms", p); err != nil {
				return err
			}
			slog.Info("histogram plot saved", "file", p, "structures", res.Histo.Total())
		}
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if !*frames {
		fmt.Fprintf(stdout, "Total number of materials: %d\n", res.Count.Materials)
	}
	fmt.Fprintf(stdout, "Total number of structures: %d\n", res.Count.Structures)
	fmt.Fprintf(stdout, "Total number of atoms: %d\n", res.Count.Atoms)
	if res.Atoms != nil && res.Atoms.N > 0 {
		fmt.Fprintf(stdout, "Atoms per structure: mean %.2f, std %.2f, min %.0f, max %.0f\n", res.Atoms.Mean, res.Atoms.StdDev, res.Atoms.Min, res.Atoms.Max)
	}
	if res.Histo != nil {
		fmt.Fprintf(stdout, "Atoms per structure histogram:\n%s\n", res.Histo)
	}
	return nil
}
