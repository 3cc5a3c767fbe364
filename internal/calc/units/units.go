package units

import "math"

const (
	NewtonsPerKilonewton = 1000.0
	MetresPerMillimetre  = 1e-3
	PascalsPerMegapascal = 1e6

	// Unbounded stands in for an infinite safety factor or life so results stay
	// JSON-encodable.
	Unbounded = 1e9

	// Epsilon is the magnitude below which a stress or denominator counts as zero.
	Epsilon = 1e-9
)

func KNToN(kn float64) float64   { return kn * NewtonsPerKilonewton }
func MMToM(mm float64) float64   { return mm * MetresPerMillimetre }
func PaToMPa(pa float64) float64 { return pa / PascalsPerMegapascal }

// Ratio divides num by den, returning Unbounded when den is effectively zero.
func Ratio(num, den float64) float64 {
	if math.Abs(den) < Epsilon {
		return Unbounded
	}
	r := num / den
	if r > Unbounded {
		return Unbounded
	}
	return r
}
