package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/olivier-w/frictionlab/internal/friction"
	"github.com/olivier-w/frictionlab/internal/lab"
	"github.com/olivier-w/frictionlab/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type simulateFlags struct {
	surface string
	weights int
	trials  int
	speed   float64
	hold    time.Duration
	output  string
	seed    int64
}

func newSimulateCmd(a *app) *cobra.Command {
	f := simulateFlags{}
	sc := lab.DefaultScript()
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run scripted pulls on a virtual clock and print the recorded rows.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.simulate(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.surface, "surface", "s", "", "surface preset (default is default_surface)")
	cmd.Flags().IntVarP(&f.weights, "weights", "w", 0, "extra weights on the block")
	cmd.Flags().IntVarP(&f.trials, "trials", "n", 3, "number of pulls")
	cmd.Flags().Float64Var(&f.speed, "speed", sc.Step, "pointer travel per frame, in pixels")
	cmd.Flags().DurationVar(&f.hold, "hold", sc.Hold, "how long to keep pulling before recording")
	cmd.Flags().StringVarP(&f.output, "output", "o", "text", "output format: text or yaml")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (0 picks one from the clock)")
	return cmd
}

func (a *app) simulate(cmd *cobra.Command, f simulateFlags) error {
	if f.output != "text" && f.output != "yaml" {
		return fmt.Errorf("unknown output format %q (want text or yaml)", f.output)
	}

	observability.InitializeLogger(a.cfg.Logger)
	defer observability.Sync()
	log := observability.GetLogger()

	name := f.surface
	if name == "" {
		name = a.cfg.DefaultSurface
	}
	trial, err := a.cfg.Trial(name)
	if err != nil {
		return err
	}
	params, err := a.cfg.Params()
	if err != nil {
		return err
	}

	sc := lab.DefaultScript()
	sc.Step = f.speed
	sc.Hold = f.hold

	var opts []friction.Option
	if f.seed != 0 {
		opts = append(opts, friction.WithRand(rand.New(rand.NewSource(f.seed))))
	}

	exp := lab.Experiment{
		Params:  params,
		Trial:   trial,
		Weights: f.weights,
		Trials:  f.trials,
		Script:  sc,
	}
	report, err := exp.Run(log.Named("lab"), opts...)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	log.Debug("simulation finished",
		zap.Int("rows", len(report.Rows)),
		zap.Int("wobble_ticks", report.Wobbles),
		zap.Duration("virtual_elapsed", report.Elapsed))

	out := cmd.OutOrStdout()
	if f.output == "yaml" {
		b, err := report.YAML()
		if err != nil {
			return err
		}
		_, err = out.Write(b)
		return err
	}
	_, err = fmt.Fprint(out, report.Text())
	return err
}
