package performance

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultMinutesPerAW is the billing granularity: 1 AW = 5 minutes.
const DefaultMinutesPerAW = 5.0

// Converter converts between AW units, minutes and decimal hours.
// Results are never rounded here; see Round2.
type Converter struct {
	MinutesPerAW float64
}

var defaultConverter = Converter{MinutesPerAW: DefaultMinutesPerAW}

func NewConverter(minutesPerAW float64) Converter {
	return Converter{MinutesPerAW: minutesPerAW}
}

func (c Converter) AWToMinutes(aw float64) float64 {
	return aw * c.MinutesPerAW
}

func (c Converter) MinutesToAW(minutes float64) float64 {
	return minutes / c.MinutesPerAW
}

func (c Converter) AWToHours(aw float64) float64 {
	return MinutesToHours(c.AWToMinutes(aw))
}

func AWToMinutes(aw float64) float64 { return defaultConverter.AWToMinutes(aw) }

func AWToHours(aw float64) float64 { return defaultConverter.AWToHours(aw) }

func MinutesToHours(minutes float64) float64 {
	return minutes / 60
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// RoundInt rounds half away from zero to a whole number.
func RoundInt(v float64) int {
	return int(decimal.NewFromFloat(v).Round(0).IntPart())
}
