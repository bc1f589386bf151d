// Command cdcl solves a single DIMACS CNF instance, generalizing the
// teacher's stdlib-flag main.go to cobra (spec.md §6, SPEC_FULL.md §3).
package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"

	"github.com/gocdcl/cdcl/internal/dimacs"
	"github.com/gocdcl/cdcl/internal/logx"
	"github.com/gocdcl/cdcl/internal/sat"
)

type flags struct {
	heuristic      string
	seed           int64
	restart        bool
	clauseDeletion bool
	maxConflicts   int64
	timeout        time.Duration
	gzipped        bool
	cpuProfile     string
	memProfile     string
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "cdcl <instance.cnf>",
		Short: "Solve a DIMACS CNF instance with a CDCL SAT solver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], f)
		},
	}

	flagSet := cmd.Flags()
	flagSet.StringVar(&f.heuristic, "heuristic", "VSIDS", "branching heuristic: Ordered, Random, DLIS, RDLIS, DLCS, RDLCS, Two-Clause, MOM, JW, VSIDS")
	flagSet.Int64Var(&f.seed, "seed", 1, "seed for randomized heuristics")
	flagSet.BoolVar(&f.restart, "restart", true, "enable geometric restarts")
	flagSet.BoolVar(&f.clauseDeletion, "clause-deletion", false, "enable opt-in learnt-clause deletion (ReduceDB)")
	flagSet.Int64Var(&f.maxConflicts, "max-conflicts", -1, "stop after this many conflicts (-1: unbounded)")
	flagSet.DurationVar(&f.timeout, "timeout", -1, "stop after this duration (-1: unbounded)")
	flagSet.BoolVar(&f.gzipped, "gzip", false, "the instance file is gzip-compressed")
	flagSet.StringVar(&f.cpuProfile, "cpuprofile", "", "write a pprof CPU profile to this file")
	flagSet.StringVar(&f.memProfile, "memprofile", "", "write a pprof heap profile to this file")

	return cmd
}

func run(instanceFile string, f *flags) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*sat.InternalError); ok {
				err = ie
				return
			}
			panic(r)
		}
	}()

	log := logx.Setup()

	kind, ok := sat.ParseHeuristicKind(f.heuristic)
	if !ok {
		return fmt.Errorf("unknown heuristic %q", f.heuristic)
	}

	opts := sat.DefaultOptions
	opts.Heuristic = kind
	opts.Seed = f.seed
	opts.RestartEnabled = f.restart
	opts.ClauseDeletion = f.clauseDeletion
	opts.MaxConflicts = f.maxConflicts
	opts.Timeout = f.timeout
	opts.Logger = log

	if f.cpuProfile != "" {
		file, err := os.Create(f.cpuProfile)
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(file); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	s := sat.NewSolver(opts)
	if err := dimacs.Load(instanceFile, f.gzipped, s); err != nil {
		return fmt.Errorf("could not parse instance: %w", err)
	}

	fmt.Printf("c variables:  %d\n", s.NumVariables())
	fmt.Printf("c clauses:    %d\n", s.NumOriginals())

	start := time.Now()
	status := s.Solve()
	elapsed := time.Since(start)

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", s.Stats.Conflicts, float64(s.Stats.Conflicts)/elapsed.Seconds())
	fmt.Printf("c decisions:  %d\n", s.NumBranchingInvocations())
	fmt.Printf("s %s\n", status.String())

	if status == sat.True {
		model := s.Model()
		for i, b := range model {
			if b {
				fmt.Printf("v %d ", i+1)
			} else {
				fmt.Printf("v %d ", -(i + 1))
			}
		}
		fmt.Println("0")
	}

	if f.memProfile != "" {
		file, err := os.Create(f.memProfile)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := pprof.WriteHeapProfile(file); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
