package materials

import (
	"fmt"
	"math"

	"Pipewrap/internal/catalog"
)

// Mode selects how fabric is quoted: a continuous area with a waste factor,
// or discrete circumferential bands cut from a standard roll.
type Mode string

const (
	ModeContinuous Mode = "continuous"
	ModeRollPack   Mode = "roll"
)

// WasteFactor inflates the continuous-area quote for cutting losses.
const WasteFactor = 1.15

// Inter-band overlap step for roll packing: each band past the first
// covers 250 mm of new axial length out of its 300 mm width.
const bandStepMM = 250.0

type Input struct {
	Mode           Mode    `json:"mode"`
	System         string  `json:"system"`
	ODMM           float64 `json:"od_mm"`
	RepairLengthMM float64 `json:"repair_length_mm"`
	PlyCount       int     `json:"ply_count"`
}

type Result struct {
	FabricAreaM2        float64 `json:"fabric_area_m2"`
	ResinLiters         float64 `json:"resin_liters"`
	EpoxyKg             float64 `json:"epoxy_kg"`
	BandCount           int     `json:"band_count"`
	ProcurementLengthMM float64 `json:"procurement_length_mm"`
	Notes               string  `json:"notes"`
}

// Estimate converts final repair geometry into procurement quantities.
func Estimate(in Input, m catalog.MaterialProperties) (Result, error) {
	if in.ODMM <= 0 || in.RepairLengthMM <= 0 || in.PlyCount < 1 {
		return Result{}, fmt.Errorf("invalid repair geometry")
	}
	switch in.Mode {
	case "", ModeContinuous:
		return continuous(in, m), nil
	case ModeRollPack:
		return rollPack(in, m), nil
	}
	return Result{}, fmt.Errorf("unknown estimate mode %q", in.Mode)
}

func continuous(in Input, m catalog.MaterialProperties) Result {
	circumferenceM := math.Pi * in.ODMM / 1000
	areaM2 := (in.RepairLengthMM / 1000) * circumferenceM * float64(in.PlyCount)

	// Resin from laminate volume at the certified resin volume fraction,
	// with the same waste allowance as the fabric.
	volumeM3 := areaM2 * (m.PlyThicknessMM / 1000)
	resinL := volumeM3 * m.ResinVolumeFraction * 1000 * WasteFactor

	return Result{
		FabricAreaM2: areaM2 * WasteFactor,
		ResinLiters:  resinL,
		EpoxyKg:      areaM2 * WasteFactor * m.EpoxyKgM2,
		Notes:        fmt.Sprintf("Continuous quote incl. %.0f%% waste.", (WasteFactor-1)*100),
	}
}

func rollPack(in Input, m catalog.MaterialProperties) Result {
	rollMM := m.RollWidthMM
	bands := 1
	if in.RepairLengthMM > rollMM {
		bands = int(math.Ceil((in.RepairLengthMM-rollMM)/bandStepMM)) + 1
	}
	procurementMM := float64(bands) * rollMM

	circumferenceM := math.Pi * in.ODMM / 1000
	areaM2 := (procurementMM / 1000) * circumferenceM * float64(in.PlyCount)

	volumeM3 := areaM2 * (m.PlyThicknessMM / 1000)
	return Result{
		FabricAreaM2:        areaM2,
		ResinLiters:         volumeM3 * m.ResinVolumeFraction * 1000,
		EpoxyKg:             areaM2 * m.EpoxyKgM2,
		BandCount:           bands,
		ProcurementLengthMM: procurementMM,
		Notes:               fmt.Sprintf("Banded quote from %.0f mm roll, %.0f mm effective step.", rollMM, bandStepMM),
	}
}
