package main

import (
	"fmt"
	"os"

	"Girder/internal/config"

	"github.com/spf13/cobra"
)

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "girder",
		Short: "Beam structural analysis and design optimization",
		Long: `girder analyses beam cross-sections under a sampled shear/moment profile
(bending, shear, von Mises, deflection, fatigue) and searches for better
designs with a genetic optimizer.

Load profiles are CSV or XLSX tables with position (m), shear (kN) and
moment (kN m) columns.`,
		SilenceUsage: true,
	}
	root.AddCommand(newMaterialsCmd(), newSectionsCmd(), newAnalyzeCmd(), newOptimizeCmd(cfg))
	return root
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
