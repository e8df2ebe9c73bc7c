// Command ffdata builds force-field training sets out of structure archives.
//
// Usage:
//
//	ffdata [-config ffdata.yaml] convert [flags] [archives...]
//	ffdata [-config ffdata.yaml] count [flags] [archives or extxyz files...]
//	ffdata [-config ffdata.yaml] sample [flags] [archives...]
//
// convert writes the structures of the merged archives as extended-XYZ
// frames, count reports the number of materials, structures and atoms,
// and sample writes smaller archives with a subset of the materials.
// Archives not given on the command line are taken from the configuration.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rmera/ffdata"
	"github.com/rmera/ffdata/config"
	"github.com/rmera/ffdata/logger"
)

type command func(ctx context.Context, cfg *config.Config, args []string) error

var commands = map[string]command{
	"convert": runConvert,
	"count":   runCount,
	"sample":  runSample,
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file] convert|count|sample [flags] [files...]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	run, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format, "run", uuid.New().String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, flag.Args()[1:]); err != nil {
		logFailure(slog.Default(), flag.Arg(0), err)
		stop()
		os.Exit(1)
	}
}

// logFailure logs err, with the chain of functions it went through when
// it carries one.
func logFailure(log *slog.Logger, command string, err error) {
	attrs := []any{"command", command, "error", err}
	var fe ffdata.Error
	if errors.As(err, &fe) {
		if trace := fe.Decorate(""); len(trace) > 0 {
			attrs = append(attrs, "trace", trace)
		}
	}
	log.Error("command failed", attrs...)
}

// archives returns the files given as arguments or, if there are none,
// the archives in the configuration.
func archives(fs *flag.FlagSet, cfg *config.Config) []string {
	if fs.NArg() > 0 {
		return fs.Args()
	}
	return cfg.Archives
}
