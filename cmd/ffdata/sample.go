package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/rmera/ffdata"
	"github.com/rmera/ffdata/archive"
	"github.com/rmera/ffdata/config"
	"github.com/rmera/ffdata/sample"
)

func runSample(ctx context.Context, cfg *config.Config, args []string) error {
	s := &cfg.Sample
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	fs.StringVar(&s.Mode, "mode", s.Mode, "prefix: the first materials of each archive, random: a uniform draw from the merged archives")
	fs.IntVar(&s.Count, "n", s.Count, "materials per archive (prefix) or per draw (random)")
	fs.IntVar(&s.Repeats, "repeats", s.Repeats, "independent random draws")
	fs.Uint64Var(&s.Seed, "seed", s.Seed, "random seed")
	fs.StringVar(&s.Output, "o", s.Output, "output archive; with several draws, a pattern with a %d verb")
	fs.Parse(args)
	if err := cfg.Validate(); err != nil {
		return err
	}
	names := archives(fs, cfg)

	var out []*ffdata.Archive
	switch s.Mode {
	case "prefix":
		each, err := archive.LoadEach(ctx, names)
		if err != nil {
			return err
		}
		out = append(out, sample.Prefix(each, s.Count))
	case "random":
		A, err := archive.LoadAll(ctx, names)
		if err != nil {
			return err
		}
		out = sample.RandomN(A, s.Count, s.Repeats, s.Seed)
	}
	for i, A := range out {
		name := s.Output
		if s.Repeats > 1 {
			name = fmt.Sprintf(s.Output, i)
		}
		if err := archive.Save(name, A); err != nil {
			return err
		}
		slog.Info("sampled archive saved", "file", name, "materials", A.Len(), "structures", A.NStructures())
	}
	return nil
}
