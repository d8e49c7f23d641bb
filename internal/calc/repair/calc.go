package repair

import (
	"fmt"
	"math"
	"strings"

	"Pipewrap/internal/calc/capacity"
	"Pipewrap/internal/calc/defect"
	"Pipewrap/internal/calc/materials"
	"Pipewrap/internal/calc/strain"
	"Pipewrap/internal/catalog"
)

const (
	// Minimum bonded overlap either side of the defect.
	MinOverlapMM = 50.0
	// Taper multiplier for geometry-controlled overlap.
	taperMultiplier = 3.0
	// Ply floors: general, and the sealing-assurance floor for leaks.
	minPliesGeneral = 2
	minPliesLeak    = 4
)

type Input struct {
	System string `json:"system"`

	// Pipe
	ODMM    float64 `json:"od_mm"`
	WallMM  float64 `json:"wall_mm"`
	SMYSMPa float64 `json:"smys_mpa"`

	// Defect
	Mechanism       string  `json:"mechanism"`
	Location        string  `json:"location"`
	DefectLengthMM  float64 `json:"defect_length_mm"`
	DefectWidthMM   float64 `json:"defect_width_mm"`
	RemainingWallMM float64 `json:"remaining_wall_mm"`

	// Service
	PressureBar   float64 `json:"pressure_bar"`
	DesignTempC   float64 `json:"design_temp_c"`
	InstallTempC  float64 `json:"install_temp_c"`
	LifetimeYears float64 `json:"lifetime_years"`
	DesignFactor  float64 `json:"design_factor"`

	// Policy selection
	StrainModel  strain.Model   `json:"strain_model"`
	EstimateMode materials.Mode `json:"estimate_mode"`

	// Operator-forced ply floor; zero means no override. A forced floor
	// reruns thickness, overlap and the material estimate from scratch.
	MinPlies int `json:"min_plies"`
}

type Result struct {
	System         string  `json:"system"`
	ThicknessClass string  `json:"thickness_class"`
	OverlapClass   string  `json:"overlap_class"`
	WallLossRatio  float64 `json:"wall_loss_ratio"`
	DesignStrain   float64 `json:"design_strain"`

	SteelCapacityMPa     float64 `json:"steel_capacity_mpa"`
	CompositePressureMPa float64 `json:"composite_pressure_mpa"`

	RequiredThicknessMM float64 `json:"required_thickness_mm"`
	PlyCount            int     `json:"ply_count"`
	FinalThicknessMM    float64 `json:"final_thickness_mm"`

	OverlapMM     float64 `json:"overlap_mm"`
	TotalLengthMM float64 `json:"total_length_mm"`

	BandCount           int     `json:"band_count"`
	ProcurementLengthMM float64 `json:"procurement_length_mm"`
	FabricAreaM2        float64 `json:"fabric_area_m2"`
	ResinLiters         float64 `json:"resin_liters"`
	EpoxyKg             float64 `json:"epoxy_kg"`

	Checklist []string `json:"checklist"`
	Notes     string   `json:"notes"`
}

// Calculate runs the full sizing pipeline for one repair case against the
// given catalog. Pure function of its inputs: identical cases produce
// identical results.
func Calculate(in Input, cat *catalog.Catalog) (Result, error) {
	if in.System == "" {
		in.System = catalog.ProwrapCarbon().Name
	}
	m, err := cat.Get(in.System)
	if err != nil {
		return Result{}, err
	}
	if in.InstallTempC == 0 {
		in.InstallTempC = 25
	}

	mech, mechErr := defect.ParseMechanism(in.Mechanism)
	loc, locErr := defect.ParseLocation(in.Location)

	// Every precondition is checked and reported together, not
	// short-circuited on the first failure.
	var problems []string
	if mechErr != nil {
		problems = append(problems, mechErr.Error())
	}
	if locErr != nil {
		problems = append(problems, locErr.Error())
	}
	if in.ODMM <= 0 || in.WallMM <= 0 {
		problems = append(problems, "pipe OD and wall thickness must be positive")
	}
	if in.PressureBar < 0 {
		problems = append(problems, "design pressure is negative")
	}
	if in.DefectLengthMM <= 0 {
		problems = append(problems, "defect axial length must be positive")
	}
	if in.RemainingWallMM < 0 {
		problems = append(problems, "remaining wall thickness is negative")
	}
	if in.RemainingWallMM > in.WallMM {
		problems = append(problems, "remaining wall thickness exceeds nominal wall")
	}
	if in.DesignFactor <= 0 || in.DesignFactor > 1 {
		problems = append(problems, "design factor must be in (0, 1]")
	}

	if err := strain.LimitCheck(m, in.StrainModel, in.DesignTempC); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return Result{}, fmt.Errorf("invalid repair case: %s", strings.Join(problems, "; "))
	}

	eps, err := strain.Derate(m, strain.Input{
		Model:        in.StrainModel,
		DesignTempC:  in.DesignTempC,
		InstallTempC: in.InstallTempC,
		DesignFactor: in.DesignFactor,
	})
	if err != nil {
		return Result{}, fmt.Errorf("invalid repair case: %s", err)
	}

	wallLoss := (in.WallMM - in.RemainingWallMM) / in.WallMM
	cls := defect.Classify(mech, loc, wallLoss)

	// Substrate credit. With SMYS unknown the credit is zero and the
	// composite is sized for the full pressure, matching the conservative
	// single-material assessment.
	steelCap := capacity.Barlow(in.ODMM, in.RemainingWallMM, in.SMYSMPa, in.DesignFactor, mech, loc, wallLoss)

	pressureMPa := in.PressureBar * 0.1
	compositeMPa := pressureMPa
	if cls.Thickness == defect.TypeA && steelCap > 0 {
		compositeMPa = math.Max(0, pressureMPa-steelCap)
	}

	requiredMM := 0.0
	if compositeMPa > 0 {
		requiredMM = compositeMPa * in.ODMM / (2 * m.ECircMPa * eps)
	}

	plies := int(math.Ceil(requiredMM / m.PlyThicknessMM))
	floor := minPliesGeneral
	if mech == defect.Leak {
		floor = minPliesLeak
	}
	if in.MinPlies > floor {
		floor = in.MinPlies
	}
	if plies < floor {
		plies = floor
	}
	finalMM := float64(plies) * m.PlyThicknessMM

	overlapMM := sizeOverlap(cls.Overlap, mech, m, in, eps, finalMM)
	totalMM := in.DefectLengthMM + 2*overlapMM

	est, err := materials.Estimate(materials.Input{
		Mode:           in.EstimateMode,
		System:         in.System,
		ODMM:           in.ODMM,
		RepairLengthMM: totalMM,
		PlyCount:       plies,
	}, m)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		System:               m.Name,
		ThicknessClass:       string(cls.Thickness),
		OverlapClass:         string(cls.Overlap),
		WallLossRatio:        wallLoss,
		DesignStrain:         eps,
		SteelCapacityMPa:     steelCap,
		CompositePressureMPa: compositeMPa,
		RequiredThicknessMM:  requiredMM,
		PlyCount:             plies,
		FinalThicknessMM:     finalMM,
		OverlapMM:            overlapMM,
		TotalLengthMM:        totalMM,
		BandCount:            est.BandCount,
		ProcurementLengthMM:  est.ProcurementLengthMM,
		FabricAreaM2:         est.FabricAreaM2,
		ResinLiters:          est.ResinLiters,
		EpoxyKg:              est.EpoxyKg,
		Notes:                fmt.Sprintf("ISO 24817 / ASME PCC-2 Type %s repair.", cls.Thickness),
	}
	res.Checklist = checklist(m, res)
	return res, nil
}

// WithMinimumPlies reruns the whole pipeline with an operator-forced ply
// floor. The prior result is never touched; the override is just a stricter
// input to a fresh computation.
func WithMinimumPlies(in Input, plies int, cat *catalog.Catalog) (Result, error) {
	in.MinPlies = plies
	return Calculate(in, cat)
}

func sizeOverlap(class defect.RepairClass, mech defect.Mechanism, m catalog.MaterialProperties, in Input, eps, finalMM float64) float64 {
	if class == defect.TypeA {
		return math.Max(MinOverlapMM, taperMultiplier*finalMM)
	}

	// Shear-lag transfer of the full hoop load through the bond line.
	hoopLoad := finalMM * m.ECircMPa * eps
	allowableShear := m.LapShearMPa * in.DesignFactor
	overlap := MinOverlapMM
	if allowableShear > 0 {
		overlap = math.Max(hoopLoad/allowableShear, MinOverlapMM)
	}

	// Through-wall defects also satisfy the fracture-style bound; the
	// larger constraint governs.
	if defect.ThroughWall(mech) {
		overlap = math.Max(overlap, 2*math.Sqrt(in.ODMM*in.WallMM))
	}
	return overlap
}

func checklist(m catalog.MaterialProperties, r Result) []string {
	return []string{
		"Surface preparation: abrasive blast to Sa 2.5 (power tool St 3 minimum), anchor profile 60-100 um.",
		fmt.Sprintf("Apply %d plies of %s at %.2f mm per ply, %.2f mm total.",
			r.PlyCount, m.Name, m.PlyThicknessMM, r.FinalThicknessMM),
		fmt.Sprintf("Extend wrap %.0f mm beyond the defect on each side; total wrapped length %.0f mm.",
			r.OverlapMM, r.TotalLengthMM),
		fmt.Sprintf("Cure 24 h before return to service; do not exceed %.1f C during cure.", m.MaxServiceTempC),
		fmt.Sprintf("Accept cure at Shore D hardness %.1f or higher.", m.MinShoreD),
	}
}
