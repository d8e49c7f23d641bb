package catalog

import (
	"fmt"
	"sort"
)

// MaterialProperties is the certified property set of one composite wrap
// system, fixed at load time and never mutated afterwards.
type MaterialProperties struct {
	Name                string  `json:"name"`
	PlyThicknessMM      float64 `json:"ply_thickness_mm"`
	ECircMPa            float64 `json:"e_circ_mpa"`
	EAxialMPa           float64 `json:"e_axial_mpa"`
	TensileStrengthMPa  float64 `json:"tensile_strength_mpa"`
	StrainAtFailure     float64 `json:"strain_at_failure"`
	LapShearMPa         float64 `json:"lap_shear_mpa"`
	MaxServiceTempC     float64 `json:"max_service_temp_c"`
	TgC                 float64 `json:"tg_c"`
	MinShoreD           float64 `json:"min_shore_d"`
	RollWidthMM         float64 `json:"roll_width_mm"`
	EpoxyKgM2           float64 `json:"epoxy_kg_m2"`
	ResinVolumeFraction float64 `json:"resin_volume_fraction"`
	LongTermStrain      float64 `json:"long_term_strain"`
	SteelCTE            float64 `json:"steel_cte"`
	CompositeCTE        float64 `json:"composite_cte"`
}

func (m MaterialProperties) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("material name required")
	}
	if m.PlyThicknessMM <= 0 {
		return fmt.Errorf("%s: invalid ply thickness", m.Name)
	}
	if m.ECircMPa <= 0 {
		return fmt.Errorf("%s: invalid circumferential modulus", m.Name)
	}
	if m.StrainAtFailure <= 0 || m.StrainAtFailure >= 1 {
		return fmt.Errorf("%s: invalid strain at failure", m.Name)
	}
	if m.LapShearMPa <= 0 {
		return fmt.Errorf("%s: invalid lap shear strength", m.Name)
	}
	if m.RollWidthMM <= 0 {
		return fmt.Errorf("%s: invalid roll width", m.Name)
	}
	return nil
}

// Catalog is the set of certified wrap systems known to the service.
type Catalog struct {
	systems map[string]MaterialProperties
}

func New(systems ...MaterialProperties) (*Catalog, error) {
	c := &Catalog{systems: make(map[string]MaterialProperties, len(systems))}
	for _, m := range systems {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.systems[m.Name]; exists {
			return nil, fmt.Errorf("duplicate system %q", m.Name)
		}
		c.systems[m.Name] = m
	}
	return c, nil
}

func (c *Catalog) Get(name string) (MaterialProperties, error) {
	m, ok := c.systems[name]
	if !ok {
		return MaterialProperties{}, fmt.Errorf("unknown wrap system %q", name)
	}
	return m, nil
}

func (c *Catalog) Systems() []MaterialProperties {
	out := make([]MaterialProperties, 0, len(c.systems))
	for _, m := range c.systems {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Default returns the built-in catalog with the Prowrap datasheet values.
// The two systems carry the two epoxy coverage figures seen on vendor
// datasheets (1.2 kg/m2 carbon, 1.1 kg/m2 glass).
func Default() *Catalog {
	c, err := New(ProwrapCarbon(), ProwrapGlassHT())
	if err != nil {
		panic(err) // built-in table, cannot fail
	}
	return c
}

// ProwrapCarbon is the standard carbon-fiber system.
func ProwrapCarbon() MaterialProperties {
	return MaterialProperties{
		Name:                "prowrap-c",
		PlyThicknessMM:      0.83,
		ECircMPa:            45460,
		EAxialMPa:           43800,
		TensileStrengthMPa:  574.1,
		StrainAtFailure:     0.0233,
		LapShearMPa:         7.37,
		MaxServiceTempC:     55.5,
		TgC:                 75.5,
		MinShoreD:           79.1,
		RollWidthMM:         300,
		EpoxyKgM2:           1.2,
		ResinVolumeFraction: 0.60,
		LongTermStrain:      0.0025,
		SteelCTE:            1.2e-5,
		CompositeCTE:        0.6e-5,
	}
}

// ProwrapGlassHT is the high-temperature glass-fiber system.
func ProwrapGlassHT() MaterialProperties {
	return MaterialProperties{
		Name:                "prowrap-ght",
		PlyThicknessMM:      1.2,
		ECircMPa:            24500,
		EAxialMPa:           23100,
		TensileStrengthMPa:  412.0,
		StrainAtFailure:     0.0198,
		LapShearMPa:         6.10,
		MaxServiceTempC:     95.0,
		TgC:                 120.0,
		MinShoreD:           70.0,
		RollWidthMM:         300,
		EpoxyKgM2:           1.1,
		ResinVolumeFraction: 0.60,
		LongTermStrain:      0.0022,
		SteelCTE:            1.2e-5,
		CompositeCTE:        0.9e-5,
	}
}
