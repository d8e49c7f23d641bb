package capacity

import "fmt"

// Standalone defect-severity assessment: given geometry and a metal-loss
// defect, report the B31G safe pressure against the design pressure.

type AssessInput struct {
	ODMM           float64 `json:"od_mm"`
	WallMM         float64 `json:"wall_mm"`
	SMYSMPa        float64 `json:"smys_mpa"`
	DefectDepthMM  float64 `json:"defect_depth_mm"`
	DefectLengthMM float64 `json:"defect_length_mm"`
	PressureBar    float64 `json:"pressure_bar"`
	ThroughWall    bool    `json:"through_wall"`
}

type AssessResult struct {
	ZParameter      float64 `json:"z_parameter"`
	FoliasM         float64 `json:"folias_m"`
	FlowStressMPa   float64 `json:"flow_stress_mpa"`
	SafePressureMPa float64 `json:"safe_pressure_mpa"`
	SafePressureBar float64 `json:"safe_pressure_bar"`
	Acceptable      bool    `json:"acceptable"`
	Notes           string  `json:"notes"`
}

func Assess(in AssessInput) (AssessResult, error) {
	if in.ODMM <= 0 || in.WallMM <= 0 || in.SMYSMPa <= 0 {
		return AssessResult{}, fmt.Errorf("invalid pipe geometry")
	}
	if in.DefectDepthMM < 0 || in.DefectLengthMM < 0 {
		return AssessResult{}, fmt.Errorf("invalid defect geometry")
	}

	z := in.DefectLengthMM * in.DefectLengthMM / (in.ODMM * in.WallMM)
	safe := SafePressureB31G(in.ODMM, in.WallMM, in.SMYSMPa, in.DefectDepthMM, in.DefectLengthMM, in.ThroughWall)

	designMPa := in.PressureBar * 0.1
	return AssessResult{
		ZParameter:      z,
		FoliasM:         Folias(z),
		FlowStressMPa:   in.SMYSMPa + flowStressMarginMPa,
		SafePressureMPa: safe,
		SafePressureBar: safe * 10,
		Acceptable:      safe > 0 && safe >= designMPa,
		Notes:           "Modified B31G level-1 assessment with 0.85 shape factor.",
	}, nil
}
