package recommend

import (
	"fmt"

	"Pipewrap/internal/calc/strain"
	"Pipewrap/internal/catalog"
)

// Picks the certified wrap system for a service point: the hottest-rated
// system whose temperature limit covers the design temperature, preferring
// the stiffer laminate when several qualify.

type Input struct {
	DesignTempC  float64      `json:"design_temp_c"`
	InstallTempC float64      `json:"install_temp_c"`
	DesignFactor float64      `json:"design_factor"`
	StrainModel  strain.Model `json:"strain_model"`
}

type Result struct {
	System       string  `json:"system"`
	DesignStrain float64 `json:"design_strain"`
	MarginC      float64 `json:"margin_c"`
	Notes        string  `json:"notes"`
}

func System(in Input, cat *catalog.Catalog) (Result, error) {
	if in.DesignFactor <= 0 || in.DesignFactor > 1 {
		return Result{}, fmt.Errorf("design factor must be in (0, 1]")
	}
	if in.InstallTempC == 0 {
		in.InstallTempC = 25
	}

	var best *Result
	var bestStiffness float64
	for _, m := range cat.Systems() {
		eps, err := strain.Derate(m, strain.Input{
			Model:        in.StrainModel,
			DesignTempC:  in.DesignTempC,
			InstallTempC: in.InstallTempC,
			DesignFactor: in.DesignFactor,
		})
		if err != nil {
			continue // system disqualified at this temperature
		}
		if best == nil || m.ECircMPa > bestStiffness {
			best = &Result{
				System:       m.Name,
				DesignStrain: eps,
				MarginC:      m.MaxServiceTempC - in.DesignTempC,
			}
			bestStiffness = m.ECircMPa
		}
	}
	if best == nil {
		return Result{}, fmt.Errorf("no certified system covers %.1f C", in.DesignTempC)
	}
	best.Notes = "Stiffest qualifying system for the given service temperature."
	return *best, nil
}
