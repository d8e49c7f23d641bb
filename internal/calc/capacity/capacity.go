package capacity

import (
	"math"

	"Pipewrap/internal/calc/defect"
)

// Barlow computes the residual pressure capacity of the corroded substrate
// in MPa using the thin-wall formula on the remaining ligament. The credit
// is zeroed whenever the steel cannot be trusted to share load: breached
// mechanisms, internal defects, excessive wall loss, or missing yield data.
// Defensive zeros, never an error: a zero credit just means the composite
// carries everything.
func Barlow(odMM, remainingWallMM, yieldMPa, designFactor float64, mech defect.Mechanism, loc defect.Location, wallLoss float64) float64 {
	if defect.ThroughWall(mech) || loc == defect.Internal || wallLoss > defect.SeverityThreshold {
		return 0
	}
	if odMM <= 0 || remainingWallMM <= 0 || yieldMPa <= 0 || designFactor <= 0 {
		return 0
	}
	allowable := yieldMPa * designFactor
	return 2 * allowable * remainingWallMM / odMM
}

// Modified B31G constants: additive flow-stress margin and the assumed
// defect shape factor.
const (
	flowStressMarginMPa = 69.0
	shapeFactor         = 0.85
)

// Folias returns the bulging factor M for the dimensionless length
// parameter z = L^2/(D*t).
func Folias(z float64) float64 {
	if z <= 50 {
		return math.Sqrt(1 + 0.6275*z - 0.003375*z*z)
	}
	return 0.032*z + 3.3
}

// SafePressureB31G estimates the safe operating pressure in MPa of an
// axial metal-loss defect per the modified B31G method. Through-wall
// defects and degenerate denominators yield 0.
func SafePressureB31G(odMM, wallMM, smysMPa, depthMM, lengthMM float64, throughWall bool) float64 {
	if throughWall || odMM <= 0 || wallMM <= 0 || smysMPa <= 0 {
		return 0
	}
	if depthMM >= wallMM {
		return 0
	}
	flow := smysMPa + flowStressMarginMPa
	z := lengthMM * lengthMM / (odMM * wallMM)
	m := Folias(z)

	dt := depthMM / wallMM
	den := 1 - shapeFactor*dt/m
	if den <= 0 {
		return 0
	}
	rsf := (1 - shapeFactor*dt) / den
	if rsf <= 0 {
		return 0
	}
	return (2 * flow * wallMM / odMM) * rsf
}
