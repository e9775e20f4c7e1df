package pptxscene

import "math"

// EMU (English Metric Units) conversion helpers.
// 1 inch = 914400 EMU, 1 point = 12700 EMU, 1 cm = 360000 EMU.

const (
	emuPerInch       = 914400
	emuPerPoint      = 12700
	emuPerCentimeter = 360000
	// maxEMU is the maximum safe EMU value to prevent overflow.
	maxEMU = math.MaxInt64 / 2
	// angleUnit is the number of OOXML angle units per degree.
	angleUnit = 60000
	// percentUnit is the OOXML fixed-point scale for percentages (100000 = 100%).
	percentUnit = 100000
)

// Inch converts inches to EMU. Clamps to safe range.
func Inch(n float64) int64 {
	return clampEMU(n * emuPerInch)
}

// Point converts points to EMU.
func Point(n float64) int64 {
	return clampEMU(n * emuPerPoint)
}

// Centimeter converts centimeters to EMU.
func Centimeter(n float64) int64 {
	return clampEMU(n * emuPerCentimeter)
}

// EMUToPoint converts EMU to points.
func EMUToPoint(emu int64) float64 {
	return float64(emu) / emuPerPoint
}

// clampEMU converts a float64 to int64, clamping to prevent overflow.
func clampEMU(v float64) int64 {
	if v > float64(maxEMU) {
		return maxEMU
	}
	if v < -float64(maxEMU) {
		return -maxEMU
	}
	return int64(v)
}

// round2 rounds to two decimals, the precision of every emitted length.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// toPixels scales an EMU length by factor and rounds it.
func toPixels(emu int64, factor float64) float64 {
	return round2(float64(emu) * factor)
}

// angleToDegrees converts 60000ths of a degree to whole degrees.
func angleToDegrees(angle int64) float64 {
	if angle == 0 {
		return 0
	}
	return math.Round(float64(angle) / angleUnit)
}
