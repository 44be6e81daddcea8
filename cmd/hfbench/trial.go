// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-logr/logr"
	"github.com/templexxx/tsc"

	cuckoo "leb.io/cuckoohf"
	"leb.io/cuckoohf/dstest"
	"leb.io/cuckoohf/hashfn"
	"leb.io/cuckoohf/internal/config"
	"leb.io/cuckoohf/internal/perf"
	"leb.io/cuckoohf/internal/results"
	"leb.io/cuckoohf/keys"
	"leb.io/cuckoohf/rng"
	"leb.io/hrff"
)

// keySet returns the keys for a trial and whether they still need a shuffle.
// A loaded key set is used in file order.
func keySet(cfg *config.Config) ([]uint32, bool, error) {
	if cfg.Keys != "" {
		f, err := os.Open(cfg.Keys)
		if err != nil {
			return nil, false, err
		}
		defer f.Close()
		ks, err := keys.Load(f)
		return ks, false, err
	}
	if cfg.N > 0 {
		return keys.Sequential(cfg.N), true, nil
	}
	return keys.Hypercube(cfg.Cube), true, nil
}

func saveKeys(path string, ks []uint32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := keys.Save(f, ks); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// cpuTime reads the process CPU clock.
var cpuTime = perf.CPUTime

// measure fills c with ks and returns wall and CPU time and the hardware counts.
// The goroutine stays on one thread so the counters see every insert.
func measure(c *cuckoo.Cuckoo, ks []uint32, counters bool, log logr.Logger) (*dstest.FillStats, time.Duration, time.Duration, []results.Counter) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var pc *perf.Counters
	if counters {
		var err error
		pc, err = perf.Open(perf.Events...)
		if err != nil {
			log.V(1).Info("hardware counters off", "err", err.Error())
			pc = nil
		} else {
			defer pc.Close()
		}
	}

	cpu0, cerr0 := cpuTime()
	if pc != nil {
		if err := pc.Start(); err != nil {
			log.Error(err, "start counters")
			pc = nil
		}
	}
	t0 := tsc.UnixNano()
	fs := dstest.Fill(c, ks, false, false)
	t1 := tsc.UnixNano()
	var vals []uint64
	if pc != nil {
		if err := pc.Stop(); err != nil {
			log.Error(err, "stop counters")
		} else if vals, err = pc.Read(); err != nil {
			log.Error(err, "read counters")
		}
	}
	cpu1, cerr1 := cpuTime()

	var cpu time.Duration
	switch {
	case cerr0 != nil:
		log.V(1).Info("cpu time off", "err", cerr0.Error())
	case cerr1 != nil:
		log.V(1).Info("cpu time off", "err", cerr1.Error())
	default:
		cpu = cpu1 - cpu0
	}
	var hw []results.Counter
	for i, v := range vals {
		hw = append(hw, results.Counter{Name: pc.Events()[i].String(), Value: v})
	}
	return fs, time.Duration(t1 - t0), cpu, hw
}

// runTrial seeds the source, builds and shuffles the keys, constructs the
// hash function, then inserts every key. This order fixes the random values
// each step sees.
func runTrial(cfg *config.Config, trial int, seed int64, log logr.Logger) (*results.Run, error) {
	r := rng.New(seed)
	ks, shuffle, err := keySet(cfg)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	if shuffle {
		keys.Shuffle(ks, r)
	}
	if trial == 0 && cfg.SaveKeys != "" {
		if err := saveKeys(cfg.SaveKeys, ks); err != nil {
			return nil, fmt.Errorf("save keys: %w", err)
		}
	}
	n := len(ks)
	hcfg, err := methodConfig(cfg.Method, n, cfg.Reproducible)
	if err != nil {
		return nil, err
	}
	hf, err := hashfn.New(hcfg, r)
	if err != nil {
		return nil, err
	}
	m := tableSize(n, cfg.Load, cfg.Prime)
	c := cuckoo.New(m, hf)
	c.SetLogger(log.WithName("cuckoo"))
	if trial == 0 {
		sz := hrff.Int64{V: int64(c.Capacity) * 4, U: "B"}
		log.V(1).Info("table", "m", m, "n", n, "hash", hcfg.String(), "size", fmt.Sprintf("%h", sz))
	}

	fs, wall, cpu, hw := measure(c, ks, cfg.Counters, log)
	run := &results.Run{
		M:         m,
		N:         n,
		Seed:      seed,
		Method:    cfg.Method,
		Name:      hf.Description(),
		Time:      wall,
		CPUTime:   cpu,
		StashSize: c.StashSize(),
		Counters:  hw,
	}
	for _, name := range cuckoo.CounterNames {
		run.Stats = append(run.Stats, results.Counter{Name: name, Value: uint64(c.GetCounter(name))})
	}
	if wall > 0 {
		rate := hrff.Float64{float64(n) * float64(time.Second) / float64(wall), "inserts/sec"}
		log.V(1).Info("fill", "trial", trial, "rate", fmt.Sprintf("%h", rate), "load", fs.Load, "bumps", fs.Bumps, "stashed", fs.Stashed)
	}

	if hcfg.Kind == hashfn.KindFullyRandom {
		// h1 and h2 change on every call, nothing below means anything
		return run, nil
	}
	cs := dstest.Coverage(hf, ks, uint32(m))
	run.Coverage1, run.Coverage2, run.Ideal = cs.H1, cs.H2, cs.Ideal
	if cfg.Verify {
		if k, ok := dstest.Verify(c, ks); !ok {
			return run, fmt.Errorf("verify: key %#x not found", k)
		}
		if err := dstest.Delete(c, ks); err != nil {
			return run, err
		}
	}
	return run, nil
}
