// Package material holds the process-wide, read-only material catalog.
package material

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrUnknownMaterial = errors.New("unknown material")

// Record is an immutable set of material constants in SI units.
type Record struct {
	Name                 string  `json:"name"`
	E                    float64 `json:"e_pa"`
	G                    float64 `json:"g_pa"`
	Yield                float64 `json:"yield_pa"`
	Ultimate             float64 `json:"ultimate_pa"`
	Poisson              float64 `json:"poisson"`
	Density              float64 `json:"density_kg_m3"`
	FatigueLimitFraction float64 `json:"fatigue_limit_fraction"`
	CostPerKg            float64 `json:"cost_per_kg"`
	SafetyFactorBending  float64 `json:"safety_factor_bending"`
	SafetyFactorShear    float64 `json:"safety_factor_shear"`
}

// FatigueLimit is the endurance strength in Pa.
func (r Record) FatigueLimit() float64 {
	return r.Ultimate * r.FatigueLimitFraction
}

// RequiredSafetyFactor is the governing code-prescribed factor.
func (r Record) RequiredSafetyFactor() float64 {
	return math.Max(r.SafetyFactorBending, r.SafetyFactorShear)
}

// Ultimate strengths sit within the ASTM/EN ranges for each grade; fatigue
// fractions follow Se' = 0.5 Sut for steel and titanium, 0.4 for wrought
// aluminium and 0.3 for plain concrete.
var catalog = [...]Record{
	{
		Name: "A36 Steel", E: 200e9, G: 79.3e9, Yield: 250e6, Ultimate: 450e6, Poisson: 0.26,
		Density: 7850, FatigueLimitFraction: 0.5, CostPerKg: 0.5,
		SafetyFactorBending: 1.67, SafetyFactorShear: 1.5,
	},
	{
		Name: "Aluminum 6061-T6", E: 68.9e9, G: 25.8e9, Yield: 276e6, Ultimate: 310e6, Poisson: 0.33,
		Density: 2700, FatigueLimitFraction: 0.4, CostPerKg: 2.0,
		SafetyFactorBending: 1.95, SafetyFactorShear: 1.8,
	},
	{
		Name: "Concrete C30", E: 30e9, G: 12.5e9, Yield: 30e6, Ultimate: 37.5e6, Poisson: 0.2,
		Density: 2400, FatigueLimitFraction: 0.3, CostPerKg: 0.1,
		SafetyFactorBending: 2.0, SafetyFactorShear: 2.5,
	},
	{
		Name: "Titanium Grade 5", E: 113.8e9, G: 42.8e9, Yield: 880e6, Ultimate: 950e6, Poisson: 0.33,
		Density: 4430, FatigueLimitFraction: 0.5, CostPerKg: 15.0,
		SafetyFactorBending: 1.7, SafetyFactorShear: 1.6,
	},
}

func Len() int { return len(catalog) }

func ByIndex(i int) (Record, error) {
	if i < 0 || i >= len(catalog) {
		return Record{}, fmt.Errorf("%w: index %d out of range [0,%d)", ErrUnknownMaterial, i, len(catalog))
	}
	return catalog[i], nil
}

// ByName matches case-insensitively and returns the catalog index too.
func ByName(name string) (Record, int, error) {
	n := strings.TrimSpace(name)
	for i, r := range catalog {
		if strings.EqualFold(r.Name, n) {
			return r, i, nil
		}
	}
	return Record{}, -1, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
}

// All returns a copy of the catalog.
func All() []Record {
	out := make([]Record, len(catalog))
	copy(out, catalog[:])
	return out
}

func Names() []string {
	out := make([]string, len(catalog))
	for i, r := range catalog {
		out[i] = r.Name
	}
	return out
}
