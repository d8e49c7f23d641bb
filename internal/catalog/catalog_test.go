package catalog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default()
	systems := cat.Systems()
	require.Len(t, systems, 2)
	assert.Equal(t, "prowrap-c", systems[0].Name)
	assert.Equal(t, "prowrap-ght", systems[1].Name)

	m, err := cat.Get("prowrap-c")
	require.NoError(t, err)
	assert.InDelta(t, 0.83, m.PlyThicknessMM, 1e-12)
	assert.InDelta(t, 45460, m.ECircMPa, 1e-12)
	assert.InDelta(t, 0.0233, m.StrainAtFailure, 1e-12)

	_, err = cat.Get("unobtainium")
	assert.Error(t, err)
}

func TestNewRejectsBadSystems(t *testing.T) {
	bad := ProwrapCarbon()
	bad.PlyThicknessMM = 0
	_, err := New(bad)
	assert.Error(t, err)

	a := ProwrapCarbon()
	_, err = New(a, a)
	assert.Error(t, err, "duplicate names must be rejected")
}

func TestLoadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{
		"name", "ply_mm", "e_circ_mpa", "e_axial_mpa", "tensile_mpa", "strain_fail",
		"lap_shear_mpa", "max_temp_c", "tg_c", "shore_d", "roll_mm", "epoxy_kg_m2",
		"resin_frac", "long_term_strain", "steel_cte", "composite_cte",
	}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{
		"fieldwrap-x", 0.9, 40000.0, 38000.0, 520.0, 0.021,
		7.0, 60.0, 80.0, 75.0, 300.0, 1.15,
		0.6, 0.0024, 1.2e-5, 0.7e-5,
	}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	cat, err := LoadWorkbook(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	m, err := cat.Get("fieldwrap-x")
	require.NoError(t, err)
	assert.InDelta(t, 0.9, m.PlyThicknessMM, 1e-9)
	assert.InDelta(t, 40000, m.ECircMPa, 1e-9)
	assert.InDelta(t, 60, m.MaxServiceTempC, 1e-9)
	assert.InDelta(t, 1.15, m.EpoxyKgM2, 1e-9)
}

func TestLoadWorkbookRejectsShortRows(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"name", "ply_mm"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"halfwrap", 0.9}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = LoadWorkbook(bytes.NewReader(buf.Bytes()))
	assert.Error(t, err)
}
