package strain

import (
	"fmt"
	"math"

	"Pipewrap/internal/catalog"
)

// Model selects the strain derating policy. The two policies come from the
// two derating approaches in circulation: a stepped short-term factor on the
// certified failure strain, and a temperature-ratio factor on the long-term
// allowance with a thermal mismatch correction.
type Model string

const (
	ModelStep  Model = "step"
	ModelRatio Model = "ratio"
)

type Input struct {
	Model        Model   `json:"model"`
	DesignTempC  float64 `json:"design_temp_c"`
	InstallTempC float64 `json:"install_temp_c"`
	DesignFactor float64 `json:"design_factor"`
}

// LimitCheck verifies the design temperature against the material limit the
// given model derates from. Callers validate with it before sizing.
func LimitCheck(m catalog.MaterialProperties, model Model, designTempC float64) error {
	switch model {
	case "", ModelStep:
		if designTempC > m.MaxServiceTempC {
			return fmt.Errorf("design temperature %.1f C exceeds %s limit %.1f C",
				designTempC, m.Name, m.MaxServiceTempC)
		}
	case ModelRatio:
		if designTempC >= m.TgC {
			return fmt.Errorf("design temperature %.1f C at or above %s glass transition %.1f C",
				designTempC, m.Name, m.TgC)
		}
	default:
		return fmt.Errorf("unknown derating model %q", model)
	}
	return nil
}

// Derate computes the allowable design strain for the given wrap system.
// An error means the service temperature disqualifies the system; the
// caller aborts before any sizing.
func Derate(m catalog.MaterialProperties, in Input) (float64, error) {
	if in.DesignFactor <= 0 || in.DesignFactor > 1 {
		return 0, fmt.Errorf("design factor %.3f outside (0, 1]", in.DesignFactor)
	}
	if err := LimitCheck(m, in.Model, in.DesignTempC); err != nil {
		return 0, err
	}
	switch in.Model {
	case "", ModelStep:
		return derateStep(m, in)
	case ModelRatio:
		return derateRatio(m, in)
	}
	return 0, fmt.Errorf("unknown derating model %q", in.Model)
}

// derateStep: certified failure strain, a single 0.95 step above 40 C,
// divided by the safety factor (reciprocal of the design factor).
func derateStep(m catalog.MaterialProperties, in Input) (float64, error) {
	tempFactor := 1.0
	if in.DesignTempC > 40 {
		tempFactor = 0.95
	}
	safetyFactor := 1.0 / in.DesignFactor
	return m.StrainAtFailure * tempFactor / safetyFactor, nil
}

// derateRatio: long-term strain allowance scaled by
// f_T = (Tg - T_design)/(Tg - 20), clamped to [0, 1], less the thermal
// expansion mismatch between steel and laminate over the excursion from
// installation temperature.
func derateRatio(m catalog.MaterialProperties, in Input) (float64, error) {
	fT := (m.TgC - in.DesignTempC) / (m.TgC - 20)
	fT = math.Min(1, math.Max(0, fT))

	deltaT := math.Abs(in.DesignTempC - in.InstallTempC)
	thermal := deltaT * (m.SteelCTE - m.CompositeCTE)

	// The long-term allowance is already a design value, so the design
	// factor is not applied again here.
	eps := m.LongTermStrain*fT - thermal
	if eps <= 0 {
		return 0, fmt.Errorf("thermal mismatch consumes the %s strain allowance", m.Name)
	}
	return eps, nil
}
