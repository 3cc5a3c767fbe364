package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"Girder/internal/calc/material"
	"Girder/internal/calc/section"

	"github.com/spf13/cobra"
)

func newMaterialsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "List the material catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tE (GPa)\tYIELD (MPa)\tULTIMATE (MPa)\tDENSITY\tCOST/KG\tREQUIRED SF")
			for i, m := range material.All() {
				fmt.Fprintf(tw, "%d\t%s\t%.1f\t%.0f\t%.0f\t%.0f\t%.2f\t%.2f\n",
					i, m.Name, m.E/1e9, m.Yield/1e6, m.Ultimate/1e6, m.Density, m.CostPerKg, m.RequiredSafetyFactor())
			}
			return tw.Flush()
		},
	}
}

func newSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List section types and their dimensions (mm)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tDIMENSIONS (default mm)")
			for _, k := range section.Kinds() {
				dims := make([]string, 0, 4)
				for _, d := range k.Dimensions() {
					dims = append(dims, fmt.Sprintf("%s=%g", d.Name, d.DefaultMM))
				}
				fmt.Fprintf(tw, "%s\t%s\n", k, strings.Join(dims, " "))
			}
			return tw.Flush()
		},
	}
}
