package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/bigm"
	"github.com/askiada/bigm/internal/problemfile"
	"github.com/askiada/bigm/internal/render"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		bigM             float64
		maxIter          int
		rule             string
		checkFeasibility bool
		output           string
	)

	cmd := &cobra.Command{
		Use:   "solve <problem-file>",
		Short: "Solve the problem stored in a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("big-m") {
				a.conf.Solver.BigM = bigM
			}
			if flags.Changed("max-iter") {
				a.conf.Solver.MaxIterations = maxIter
			}
			if flags.Changed("rule") {
				a.conf.Solver.PivotRule = rule
			}
			if flags.Changed("check-feasibility") {
				a.conf.Solver.CheckFeasibility = checkFeasibility
			}
			format, err := render.ParseFormat(output)
			if err != nil {
				return err
			}

			opts, err := a.conf.SolverOptions()
			if err != nil {
				return err
			}
			s, err := bigm.NewSolver(append(opts, bigm.WithLogger(a.logger))...)
			if err != nil {
				return err
			}

			p, err := problemfile.Load(args[0])
			if err != nil {
				return err
			}
			res, err := s.Solve(cmd.Context(), p)
			if err != nil {
				return errors.WithMessage(err, args[0])
			}
			return render.Write(cmd.OutOrStdout(), res, format)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&bigM, "big-m", bigm.DefaultBigM, "Penalty of artificial variables")
	f.IntVar(&maxIter, "max-iter", bigm.DefaultMaxIterations, "Maximum number of pivots")
	f.StringVar(&rule, "rule", bigm.Dantzig.String(), "Pivot rule: dantzig or bland")
	f.BoolVar(&checkFeasibility, "check-feasibility", false, "Fail when an artificial variable stays basic at a positive level")
	f.StringVarP(&output, "output", "o", string(render.Text), "Output format: text, json or yaml")
	return cmd
}
