// Command einstein solves the Einstein (zebra) logic puzzle and prints the
// resolved house assignments, the Go counterpart of einstein.py.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gocdcl/cdcl/internal/dimacs"
	"github.com/gocdcl/cdcl/internal/puzzle"
	"github.com/gocdcl/cdcl/internal/sat"
)

func newRootCmd() *cobra.Command {
	var writeCNF string

	cmd := &cobra.Command{
		Use:   "einstein",
		Short: "Solve the Einstein logic puzzle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clauses, nVars := puzzle.Encode()

			if writeCNF != "" {
				f, err := os.Create(writeCNF)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := dimacs.WriteCNF(f, nVars, clauses); err != nil {
					return err
				}
			}

			s := sat.NewDefaultSolver()
			if err := dimacs.LoadInts(s, nVars, clauses); err != nil {
				return err
			}

			status := s.Solve()
			if status != sat.True {
				return fmt.Errorf("puzzle has no solution (verdict %s)", status)
			}

			houses, err := puzzle.DecodeModel(s.Model())
			if err != nil {
				return err
			}

			fmt.Printf("%-6s %-10s %-12s %-8s %-12s %s\n", "house", "colour", "nationality", "drink", "cigar", "pet")
			for _, h := range houses {
				fmt.Printf("%-6d %-10s %-12s %-8s %-12s %s\n", h.Number, h.Colour, h.Nationality, h.Beverage, h.Cigar, h.Pet)
			}
			fmt.Printf("c decisions: %d\n", s.NumBranchingInvocations())
			return nil
		},
	}

	cmd.Flags().StringVar(&writeCNF, "write-cnf", "", "also write the puzzle's CNF encoding to this file")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
