// Command cdclbench runs the solver over a directory tree of DIMACS
// instance families, the Go counterpart of the original Benchmark.py
// driver (spec.md §6, SPEC_FULL.md §3).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gocdcl/cdcl/internal/bench"
	"github.com/gocdcl/cdcl/internal/logx"
	"github.com/gocdcl/cdcl/internal/sat"
)

func newRootCmd() *cobra.Command {
	var heuristic string
	var seed int64

	cmd := &cobra.Command{
		Use:   "cdclbench <root-dir>",
		Short: "Benchmark the solver over uf*/uuf* instance families",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer func() {
				if r := recover(); r != nil {
					if ie, ok := r.(*sat.InternalError); ok {
						err = ie
						return
					}
					panic(r)
				}
			}()

			kind, ok := sat.ParseHeuristicKind(heuristic)
			if !ok {
				return fmt.Errorf("unknown heuristic %q", heuristic)
			}

			log := logx.Setup()
			newSolver := func() *sat.Solver {
				opts := sat.DefaultOptions
				opts.Heuristic = kind
				opts.Seed = seed
				opts.Logger = log
				return sat.NewSolver(opts)
			}

			results, err := bench.RunAll(args[0], newSolver)
			for _, r := range results {
				fmt.Printf(
					"%s (want %s): %d instances, total %s, avg %s, total branching %d, avg branching %.1f\n",
					r.Directory, r.Want, r.NumInstances, r.TotalTime, r.AverageTime(), r.TotalBranching, r.AverageBranching(),
				)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&heuristic, "heuristic", "DLIS", "branching heuristic")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for randomized heuristics")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
