package catalog

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Workbook column order, one certified system per row, header in row 1:
// name, ply_mm, e_circ_mpa, e_axial_mpa, tensile_mpa, strain_fail,
// lap_shear_mpa, max_temp_c, tg_c, shore_d, roll_mm, epoxy_kg_m2,
// resin_frac, long_term_strain, steel_cte, composite_cte
const workbookColumns = 16

// LoadWorkbook reads a certified property table from an XLSX datasheet.
func LoadWorkbook(r io.Reader) (*Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	var systems []MaterialProperties
	for i := 1; i < len(rows); i++ {
		m, err := parseSystemRow(rows[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		systems = append(systems, m)
	}
	return New(systems...)
}

func parseSystemRow(row []string) (MaterialProperties, error) {
	if len(row) < workbookColumns {
		return MaterialProperties{}, fmt.Errorf("expected %d columns, got %d", workbookColumns, len(row))
	}
	vals := make([]float64, workbookColumns)
	for i := 1; i < workbookColumns; i++ {
		v, err := toFloat(row[i])
		if err != nil {
			return MaterialProperties{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		vals[i] = v
	}
	return MaterialProperties{
		Name:                row[0],
		PlyThicknessMM:      vals[1],
		ECircMPa:            vals[2],
		EAxialMPa:           vals[3],
		TensileStrengthMPa:  vals[4],
		StrainAtFailure:     vals[5],
		LapShearMPa:         vals[6],
		MaxServiceTempC:     vals[7],
		TgC:                 vals[8],
		MinShoreD:           vals[9],
		RollWidthMM:         vals[10],
		EpoxyKgM2:           vals[11],
		ResinVolumeFraction: vals[12],
		LongTermStrain:      vals[13],
		SteelCTE:            vals[14],
		CompositeCTE:        vals[15],
	}, nil
}

func toFloat(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%f", &v)
	return v, err
}
