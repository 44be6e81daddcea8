// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// hfbench inserts a key set into a cuckoo hash table with a chosen hash
// function and reports the time, the CPU time, the final stash size and the
// hardware counters, one line per trial:
//
//	hfbench [flags] [seed method [n]]
//
// Without n the keys are the hypercube [32]^4 minus 0.
// Press ^T (kill -USR1 on Linux) for progress.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/urfave/cli/v2"

	"leb.io/cuckoohf/dstest"
	"leb.io/cuckoohf/internal/config"
	ilog "leb.io/cuckoohf/internal/log"
	"leb.io/cuckoohf/internal/results"
	"leb.io/cuckoohf/internal/siginfo"
)

var flags = []cli.Flag{
	&cli.StringFlag{Name: "config", Usage: "config file (yaml, json or toml)"},
	&cli.Int64Flag{Name: "seed", Usage: "seed of the first trial"},
	&cli.IntFlag{Name: "method", Aliases: []string{"m"}, Usage: "hash function, see the methods command"},
	&cli.IntFlag{Name: "n", Usage: "insert 1..n, 0 for the hypercube"},
	&cli.IntFlag{Name: "cube", Usage: "hypercube side"},
	&cli.IntFlag{Name: "trials", Aliases: []string{"t"}, Usage: "number of trials, the seed goes up by one per trial"},
	&cli.Float64Flag{Name: "load", Usage: "table size m = load * n"},
	&cli.BoolFlag{Name: "prime", Usage: "round m up to a prime"},
	&cli.BoolFlag{Name: "verify", Usage: "look up and delete every key after the fill"},
	&cli.BoolFlag{Name: "murmur-reproducible", Usage: "seed Murmur3 from the run seed instead of the clock"},
	&cli.BoolFlag{Name: "counters", Usage: "read hardware counters"},
	&cli.StringFlag{Name: "keys", Usage: "load the key set from this file"},
	&cli.StringFlag{Name: "save-keys", Usage: "write the first trial's keys to this file"},
	&cli.StringFlag{Name: "db", Usage: "append results to this sqlite database"},
	&cli.BoolFlag{Name: "json", Usage: "print results as JSON"},
	&cli.IntFlag{Name: "verbosity", Aliases: []string{"v"}, Usage: "0 info, 1 debug, 2 trace"},
	&cli.StringFlag{Name: "cpuprofile", Usage: "write cpu profile to file"},
	&cli.StringFlag{Name: "memprofile", Usage: "write memory profile to this file"},
}

// overrides collects the flags set on the command line, keyed by config name.
// Positional seed, method and n win over their flags.
func overrides(c *cli.Context) (map[string]any, error) {
	o := make(map[string]any)
	for _, f := range flags {
		name := f.Names()[0]
		if name == "config" || !c.IsSet(name) {
			continue
		}
		o[strings.ReplaceAll(name, "-", "_")] = c.Value(name)
	}
	args := c.Args().Slice()
	if len(args) == 1 || len(args) > 3 {
		return nil, fmt.Errorf("usage: %s [flags] [seed method [n]]", c.App.Name)
	}
	for i, key := range []string{"seed", "method", "n"} {
		if i >= len(args) {
			break
		}
		v, err := strconv.ParseInt(args[i], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if key == "seed" {
			o[key] = v
		} else {
			o[key] = int(v)
		}
	}
	return o, nil
}

func run(c *cli.Context) error {
	o, err := overrides(c)
	if err != nil {
		return err
	}
	cfg, err := config.Load(c.String("config"), o)
	if err != nil {
		return err
	}
	log := ilog.New(cfg.Verbosity)
	log.V(1).Info("config", "cfg", fmt.Sprintf("%+v", *cfg))
	ctx := logr.NewContext(c.Context, log)

	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	var store *results.Store
	if cfg.DB != "" {
		if store, err = results.Open(cfg.DB); err != nil {
			return err
		}
		defer store.Close()
	}

	var current atomic.Int64
	stop := siginfo.SetHandler(func() {
		log.Info("progress", "trial", current.Load(), "of", cfg.Trials, "keys", dstest.Progress())
	})
	defer stop()

	seed := cfg.Seed
	for trial := 0; trial < cfg.Trials; trial++ {
		current.Store(int64(trial))
		r, err := runTrial(cfg, trial, seed, log)
		if r != nil {
			if perr := report(ctx, r, cfg.JSON, store); perr != nil {
				return perr
			}
		}
		if err != nil {
			return fmt.Errorf("trial %d seed %d: %w", trial, seed, err)
		}
		seed++
	}

	if cfg.MemProfile != "" {
		f, err := os.Create(cfg.MemProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return err
		}
	}
	return nil
}

func report(ctx context.Context, r *results.Run, asJSON bool, store *results.Store) error {
	if asJSON {
		b, err := r.JSON()
		if err != nil {
			return err
		}
		fmt.Println(string(b))
	} else {
		fmt.Println(r.String())
	}
	if store != nil {
		if err := store.Append(r); err != nil {
			ilog.FromContext(ctx, "report").Error(err, "db append", "seed", r.Seed)
		}
	}
	return nil
}

func listMethods(c *cli.Context) error {
	for i, m := range methods {
		fmt.Fprintf(c.App.Writer, "\t%2d - %s\n", i, m.desc)
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "hfbench",
		Usage:     "compare hash functions by how cuckoo hashing behaves with them",
		ArgsUsage: "[seed method [n]]",
		Flags:     flags,
		Action:    run,
		Commands: []*cli.Command{
			{
				Name:   "methods",
				Usage:  "list the hash functions by method number",
				Action: listMethods,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "hfbench:", err)
		os.Exit(1)
	}
}
