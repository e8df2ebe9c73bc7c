package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/rmera/ffdata/archive"
	"github.com/rmera/ffdata/config"
	"github.com/rmera/ffdata/convert"
	"github.com/rmera/ffdata/logger"
	"github.com/rmera/ffdata/metrics"
)

func runConvert(ctx context.Context, cfg *config.Config, args []string) (retErr error) {
	c := &cfg.Convert
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	fs.StringVar(&c.Output, "o", c.Output, "extended-XYZ output file")
	fs.StringVar(&c.NoEdgesOutput, "no-edges", c.NoEdgesOutput, "output file for structures without neighbor edges (with -edge-filter)")
	fs.StringVar(&c.DiagnosticLog, "diag", c.DiagnosticLog, "diagnostic log file, empty to disable")
	fs.Float64Var(&c.StressScale, "stress-scale", c.StressScale, "factor applied to the stress components (1 keeps the archive values)")
	fs.BoolVar(&c.SpeciesFilter, "species-filter", c.SpeciesFilter, "write only atoms of allowed species")
	fs.BoolVar(&c.EdgeFilter, "edge-filter", c.EdgeFilter, "route structures without neighbor edges to the no-edges output")
	fs.Float64Var(&c.Cutoff, "cutoff", c.Cutoff, "neighbor cutoff radius, in Angstrom")
	fs.BoolVar(&c.StrictSelfInteraction, "strict-self-interaction", c.StrictSelfInteraction, "compute same-cell self-interaction edges")
	fs.BoolVar(&c.SelfInteraction, "self-interaction", c.SelfInteraction, "keep same-cell self-interaction edges")
	fs.StringVar(&cfg.Metrics.Textfile, "metrics", cfg.Metrics.Textfile, "write run counters to this Prometheus textfile")
	fs.Parse(args)
	if err := cfg.Validate(); err != nil {
		return err
	}

	//every archive is loaded before any output is created.
	A, err := archive.LoadAll(ctx, archives(fs, cfg))
	if err != nil {
		return err
	}

	diag, diagFile, err := logger.Diagnostics(c.DiagnosticLog)
	if err != nil {
		return err
	}
	if diagFile != nil {
		defer closeInto(diagFile, &retErr)
	}
	primary, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	defer closeInto(primary, &retErr)
	var noEdges io.Writer
	if c.EdgeFilter {
		f, err := os.Create(c.NoEdgesOutput)
		if err != nil {
			return err
		}
		defer closeInto(f, &retErr)
		noEdges = f
	}

	C, err := convert.New(c.Options(), primary, noEdges, diag)
	if err != nil {
		return err
	}
	var M *metrics.Set
	if cfg.Metrics.Textfile != "" {
		M = metrics.New()
		C.SetMetrics(M)
	}
	slog.Info("conversion started", "materials", A.Len(), "structures", A.NStructures(), "output", c.Output)
	rep, err := C.Convert(ctx, A)
	if err != nil {
		return err
	}
	diag.Info("summary", "report", rep)
	slog.Info("conversion finished", "report", rep)
	if err := M.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		return err
	}
	return nil
}

func closeInto(c io.Closer, err *error) {
	*err = errors.Join(*err, c.Close())
}
