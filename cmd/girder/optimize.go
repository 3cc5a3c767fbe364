package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"Girder/internal/calc/deflection"
	"Girder/internal/calc/premium/autodesign"
	"Girder/internal/calc/report"
	"Girder/internal/config"

	"github.com/spf13/cobra"
)

func newOptimizeCmd(cfg config.Config) *cobra.Command {
	var (
		design      designFlags
		profile     string
		objective   string
		constraints autodesign.Constraints
		gaCfg       = autodesign.DefaultConfig()
		timeout     time.Duration
		fromDesign  bool
		pdfPath     string
		asJSON      bool
	)
	gaCfg.Workers = cfg.OptimizerWorkers
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Search for a beam design with the genetic optimizer",
		Example: `  girder optimize --profile loads.xlsx --objective combined_safety --min-sf 1.67 --seed 7
  girder optimize --profile loads.csv --from-design --section rectangular --dim width=100 --dim height=120`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readProfile(profile)
			if err != nil {
				return err
			}
			obj, err := autodesign.ParseObjective(objective)
			if err != nil {
				return err
			}
			in := autodesign.OptimizeInput{
				Profile:     p,
				Support:     deflection.Support(design.support),
				Objective:   obj,
				Constraints: constraints,
				Config:      gaCfg,
			}
			if fromDesign {
				spec, err := design.spec()
				if err != nil {
					return err
				}
				in.Original = &autodesign.OriginalDesign{Material: design.material, Section: spec}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			out, err := autodesign.Run(ctx, in, gaCfg.Workers)
			if err != nil {
				return err
			}
			if out.Optimized.Termination == autodesign.Cancelled {
				fmt.Fprintln(cmd.ErrOrStderr(), "optimization stopped early, reporting best design so far")
			}
			if pdfPath != "" {
				doc := report.Document{Title: "Beam Optimization Report", Analysis: out.Original, Optimization: &out}
				if err := writePDF(pdfPath, doc); err != nil {
					return err
				}
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return printOptimization(cmd.OutOrStdout(), out)
		},
	}
	design.register(cmd, "A36 Steel")
	f := cmd.Flags()
	f.StringVar(&profile, "profile", "", "Load profile CSV or XLSX [required]")
	f.StringVar(&objective, "objective", string(autodesign.CombinedSafety), "cost, weight, deflection, safety_factor, combined_safety or fatigue_life")
	f.Float64Var(&constraints.MinSafetyFactor, "min-sf", 1.5, "Minimum combined safety factor")
	f.Float64Var(&constraints.MaxDeflectionMM, "max-deflection", 10, "Maximum deflection (mm)")
	f.Float64Var(&constraints.MinFatigueCycles, "min-fatigue-life", 1e6, "Minimum fatigue life (cycles)")
	f.IntVar(&gaCfg.PopulationSize, "population", gaCfg.PopulationSize, "Population size")
	f.IntVar(&gaCfg.MaxGenerations, "generations", gaCfg.MaxGenerations, "Maximum generations")
	f.IntVar(&gaCfg.StagnationLimit, "stagnation", gaCfg.StagnationLimit, "Stop after this many generations without improvement")
	f.Float64Var(&gaCfg.MutationProbability, "mutation", gaCfg.MutationProbability, "Per-gene mutation probability")
	f.Uint64Var(&gaCfg.Seed, "seed", 0, "Random seed (0 picks one)")
	f.IntVar(&gaCfg.Workers, "workers", gaCfg.Workers, "Parallel fitness evaluations")
	f.DurationVar(&timeout, "timeout", cfg.OptimizerTimeout, "Overall time limit")
	f.BoolVar(&fromDesign, "from-design", false, "Seed the search with --material/--section/--dim and compare against it")
	f.StringVar(&pdfPath, "pdf", "", "Write a PDF report to this path")
	f.BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	cmd.MarkFlagRequired("profile")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if timeout <= 0 {
			return errors.New("--timeout must be positive")
		}
		return nil
	}
	return cmd
}

func printOptimization(w io.Writer, c autodesign.Comparison) error {
	o := c.Optimized
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Best design\t%s, %s %v\n", o.Best.Material, o.Best.Section.Kind, o.Best.Section.Dimensions)
	fmt.Fprintf(tw, "Fitness\t%.6g (constraints met: %t)\n", o.BestFitness, o.Feasible)
	fmt.Fprintf(tw, "Combined SF\t%.3f (%s), status %s\n", o.Analysis.Safety.CombinedSF, o.Analysis.Safety.Governing, o.Analysis.Safety.Status)
	fmt.Fprintf(tw, "Max deflection\t%.3f mm\n", o.Analysis.Deflection.MaxDeflectionM*1e3)
	fmt.Fprintf(tw, "Generations\t%d (%s), %d evaluations, seed %d\n", o.Generations, o.Termination, o.Evaluations, o.Seed)
	if c.Original != nil {
		fmt.Fprintf(tw, "Original\t%s, combined SF %.3f, status %s\n", c.Original.Material.Name, c.Original.Safety.CombinedSF, c.Original.Safety.Status)
		fmt.Fprintf(tw, "Safety gain\tx%.2f, mass ratio %.3f\n", c.SafetyGain, c.MassRatio)
	}
	return tw.Flush()
}
