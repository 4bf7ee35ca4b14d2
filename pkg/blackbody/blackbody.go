// Package blackbody maps a temperature-like scalar to an RGB color using
// Tanner Helland's piecewise blackbody radiation approximation. The fit was
// originally calibrated in Kelvin/100 for the visible light spectrum; here it
// is reused directly on a Celsius-like scale two orders of magnitude smaller.
package blackbody

import "math"

// minTemp is substituted for non-positive inputs before any channel formula
// runs, so the logarithmic terms stay inside their domain. Very cold reads as
// near pure dark red instead of NaN.
const minTemp = 0.1

// Convert returns the clamped RGB triple for a temperature. It is total:
// any finite input produces a valid color.
func Convert(temp float64) (r, g, b uint8) {
	return Red(temp), Green(temp), Blue(temp)
}

// Red computes the red channel value for a temperature.
func Red(temp float64) uint8 {
	if temp <= 0.0 {
		temp = minTemp
	}
	if temp <= 66.0 {
		return 255
	}
	return c8bit(329.698727446 * math.Pow(temp-60.0, -0.1332047592))
}

// Green computes the green channel value for a temperature.
func Green(temp float64) uint8 {
	if temp <= 0.0 {
		temp = minTemp
	}
	if temp <= 66.0 {
		return c8bit(99.4708025861*math.Log(temp) - 161.1195681661)
	}
	return c8bit(288.1221695283 * math.Pow(temp-60.0, -0.0755148492))
}

// Blue computes the blue channel value for a temperature.
func Blue(temp float64) uint8 {
	if temp <= 0.0 {
		temp = minTemp
	}
	if temp >= 66.0 {
		return 255
	}
	if temp <= 19.0 {
		return 0
	}
	return c8bit(138.5177312231*math.Log(temp-10.0) - 305.0447927307)
}

// c8bit constrains a channel value to [0, 255]. Negative values become 0,
// values above 255 become 255, everything else truncates toward zero.
func c8bit(num float64) uint8 {
	if num < 0 {
		return 0
	}
	if num > 255 {
		return 255
	}
	return uint8(num)
}
