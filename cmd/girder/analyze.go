package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"Girder/internal/calc/beam"
	"Girder/internal/calc/deflection"
	"Girder/internal/calc/loads"
	"Girder/internal/calc/premium/importer"
	"Girder/internal/calc/report"
	"Girder/internal/calc/safety"
	"Girder/internal/calc/section"

	"github.com/spf13/cobra"
)

type designFlags struct {
	material string
	section  string
	dims     map[string]string
	support  string
}

func (f *designFlags) register(cmd *cobra.Command, material string) {
	cmd.Flags().StringVar(&f.material, "material", material, "Material name from the catalog")
	cmd.Flags().StringVar(&f.section, "section", "rectangular", "Section type")
	cmd.Flags().StringToStringVar(&f.dims, "dim", nil, "Section dimension in mm, e.g. --dim width=100 (repeatable)")
	cmd.Flags().StringVar(&f.support, "support", "simply_supported", "Support: simply_supported, cantilever, fixed_fixed, continuous")
}

// spec builds the section from --section and --dim; unspecified dimensions
// take the section defaults.
func (f *designFlags) spec() (section.Spec, error) {
	kind, err := section.ParseKind(f.section)
	if err != nil {
		return section.Spec{}, err
	}
	dims := kind.Defaults()
	for k, v := range f.dims {
		if _, ok := dims[k]; !ok {
			return section.Spec{}, fmt.Errorf("%w: %s has no dimension %q", section.ErrInvalidDimension, kind, k)
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return section.Spec{}, fmt.Errorf("%w: %s=%q", section.ErrInvalidDimension, k, v)
		}
		dims[k] = x
	}
	return section.Spec{Kind: kind, Dimensions: dims}, nil
}

func readProfile(path string) (loads.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return loads.Profile{}, err
	}
	defer f.Close()
	p, _, err := importer.Parse(f, path)
	return p, err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePDF(path string, doc report.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newAnalyzeCmd() *cobra.Command {
	var (
		design     designFlags
		profile    string
		requiredSF float64
		pdfPath    string
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one beam design against a load profile",
		Example: `  girder analyze --profile loads.csv --material "A36 Steel" --section rectangular --dim width=100 --dim height=150
  girder analyze --profile loads.xlsx --section i_beam --support cantilever --pdf report.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readProfile(profile)
			if err != nil {
				return err
			}
			spec, err := design.spec()
			if err != nil {
				return err
			}
			res, err := beam.Calculate(beam.Input{
				Material: design.material,
				Section:  spec,
				Support:  deflection.Support(design.support),
				Profile:  p,
				Limits:   safety.Limits{RequiredSafetyFactor: requiredSF},
			})
			if err != nil {
				return err
			}
			if pdfPath != "" {
				if err := writePDF(pdfPath, report.Document{Title: "Beam Analysis Report", Analysis: &res}); err != nil {
					return err
				}
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			return printAnalysis(cmd.OutOrStdout(), res)
		},
	}
	design.register(cmd, "A36 Steel")
	cmd.Flags().StringVar(&profile, "profile", "", "Load profile CSV or XLSX [required]")
	cmd.Flags().Float64Var(&requiredSF, "required-sf", 0, "Required safety factor (0 uses the material value)")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Write a PDF report to this path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	cmd.MarkFlagRequired("profile")
	return cmd
}

func printAnalysis(w io.Writer, r beam.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Material\t%s\n", r.Material.Name)
	fmt.Fprintf(tw, "Section\t%s %v\n", r.Section.Kind, r.Section.Dimensions)
	fmt.Fprintf(tw, "Support\t%s, span %.3f m\n", r.Deflection.Support, r.Deflection.SpanM)
	fmt.Fprintf(tw, "Max bending stress\t%.2f MPa\n", r.Stress.MaxBending/1e6)
	fmt.Fprintf(tw, "Max shear stress\t%.2f MPa\n", r.Stress.MaxShear/1e6)
	fmt.Fprintf(tw, "Max von Mises\t%.2f MPa\n", r.Stress.MaxVonMises/1e6)
	fmt.Fprintf(tw, "Max deflection\t%.3f mm at %.3f m (allowed %.3f mm)\n",
		r.Deflection.MaxDeflectionM*1e3, r.Deflection.MaxDeflectionAtM, r.Safety.AllowableDefl*1e3)
	fmt.Fprintf(tw, "Fatigue life\t%.3g cycles\n", r.Fatigue.CyclesToFailure)
	fmt.Fprintf(tw, "Safety factors\tbending %.3f, shear %.3f, von Mises %.3f, fatigue %.3f\n",
		r.Safety.BendingSF, r.Safety.ShearSF, r.Safety.VonMisesSF, r.Safety.FatigueSF)
	fmt.Fprintf(tw, "Combined\t%.3f (%s), required %.2f\n", r.Safety.CombinedSF, r.Safety.Governing, r.Safety.RequiredSF)
	fmt.Fprintf(tw, "Status\t%s\n", r.Safety.Status)
	if r.OptimizationSuggested {
		fmt.Fprintf(tw, "\tdesign is unsafe, try: girder optimize\n")
	}
	return tw.Flush()
}
