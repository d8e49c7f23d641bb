package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pipewrap/internal/calc/defect"
	"Pipewrap/internal/catalog"
)

// The worked 8-inch external corrosion case: 50% wall loss, 20 bar at 45 C,
// safety factor 3.
func baseCase() Input {
	return Input{
		ODMM:            219.1,
		WallMM:          8.18,
		Mechanism:       "corrosion",
		Location:        "external",
		DefectLengthMM:  150,
		RemainingWallMM: 4.18,
		PressureBar:     20,
		DesignTempC:     45,
		DesignFactor:    1.0 / 3.0,
	}
}

func TestCalculateWorkedCase(t *testing.T) {
	cat := catalog.Default()
	res, err := Calculate(baseCase(), cat)
	require.NoError(t, err)

	assert.Equal(t, "A", res.ThicknessClass)
	assert.Equal(t, "A", res.OverlapClass)
	assert.InDelta(t, 0.489, res.WallLossRatio, 0.001)
	assert.InDelta(t, 0.0233*0.95/3.0, res.DesignStrain, 1e-9)

	// SMYS not supplied, so no substrate credit: composite carries 2.0 MPa.
	assert.Zero(t, res.SteelCapacityMPa)
	assert.InDelta(t, 2.0, res.CompositePressureMPa, 1e-9)
	assert.InDelta(t, 0.653, res.RequiredThicknessMM, 0.005)

	assert.Equal(t, 2, res.PlyCount)
	assert.InDelta(t, 1.66, res.FinalThicknessMM, 1e-9)
	assert.InDelta(t, 50.0, res.OverlapMM, 1e-9)
	assert.InDelta(t, 250.0, res.TotalLengthMM, 1e-9)
	assert.Len(t, res.Checklist, 5)
}

func TestCalculateSubstrateCredit(t *testing.T) {
	cat := catalog.Default()
	in := baseCase()
	in.SMYSMPa = 245

	res, err := Calculate(in, cat)
	require.NoError(t, err)

	// Barlow credit exceeds the design pressure, leaving the ply floor.
	assert.Greater(t, res.SteelCapacityMPa, 2.0)
	assert.Zero(t, res.CompositePressureMPa)
	assert.Zero(t, res.RequiredThicknessMM)
	assert.Equal(t, 2, res.PlyCount)
}

func TestCalculateLeakFloor(t *testing.T) {
	cat := catalog.Default()
	in := baseCase()
	in.Mechanism = "leak"
	in.PressureBar = 0

	res, err := Calculate(in, cat)
	require.NoError(t, err)

	// Zero structural demand still gets the sealing-assurance floor.
	assert.Equal(t, 4, res.PlyCount)
	assert.Equal(t, "B", res.ThicknessClass)
	assert.Equal(t, "B", res.OverlapClass)
	assert.InDelta(t, 4*0.83, res.FinalThicknessMM, 1e-9)
	assert.GreaterOrEqual(t, res.OverlapMM, MinOverlapMM)
}

func TestCalculateSeverityOverride(t *testing.T) {
	cat := catalog.Default()
	in := baseCase()
	in.RemainingWallMM = 2.45 // 70% wall loss

	res, err := Calculate(in, cat)
	require.NoError(t, err)
	assert.Equal(t, "B", res.ThicknessClass)
	assert.Equal(t, "B", res.OverlapClass)
}

func TestCalculateDentAsymmetry(t *testing.T) {
	cat := catalog.Default()
	in := baseCase()
	in.Mechanism = "dent"

	res, err := Calculate(in, cat)
	require.NoError(t, err)
	assert.Equal(t, "A", res.ThicknessClass)
	assert.Equal(t, "B", res.OverlapClass)
}

func TestCalculateThroughWallOverlapBound(t *testing.T) {
	cat := catalog.Default()
	in := baseCase()
	in.Mechanism = "crack"
	in.PressureBar = 0.1
	in.StrainModel = "ratio" // low design strain keeps the shear term small
	in.DesignFactor = 1.0

	res, err := Calculate(in, cat)
	require.NoError(t, err)

	// 2*sqrt(D*t) = 84.67 mm dominates the small shear requirement.
	assert.InDelta(t, 84.67, res.OverlapMM, 0.05)
	assert.InDelta(t, in.DefectLengthMM+2*res.OverlapMM, res.TotalLengthMM, 1e-9)
}

func TestCalculateForcedMinimumReruns(t *testing.T) {
	cat := catalog.Default()
	res2, err := Calculate(baseCase(), cat)
	require.NoError(t, err)
	res3, err := WithMinimumPlies(baseCase(), 3, cat)
	require.NoError(t, err)

	assert.Equal(t, 2, res2.PlyCount)
	assert.Equal(t, 3, res3.PlyCount)
	assert.InDelta(t, 3*0.83, res3.FinalThicknessMM, 1e-9)

	// The whole downstream chain reran: the estimate reflects the extra ply.
	assert.InDelta(t, res2.FabricAreaM2*1.5, res3.FabricAreaM2, 1e-9)
}

func TestCalculateIdempotent(t *testing.T) {
	cat := catalog.Default()
	a, err := Calculate(baseCase(), cat)
	require.NoError(t, err)
	b, err := Calculate(baseCase(), cat)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCalculatePressureMonotonic(t *testing.T) {
	cat := catalog.Default()
	prevPlies := 0
	prevRequired := 0.0
	for _, bar := range []float64{5, 20, 60, 120, 200} {
		in := baseCase()
		in.PressureBar = bar
		res, err := Calculate(in, cat)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.PlyCount, prevPlies, "pressure %.0f bar", bar)
		assert.GreaterOrEqual(t, res.RequiredThicknessMM, prevRequired, "pressure %.0f bar", bar)
		prevPlies = res.PlyCount
		prevRequired = res.RequiredThicknessMM
	}
}

func TestCalculateInvariants(t *testing.T) {
	cat := catalog.Default()
	cases := []Input{baseCase()}

	leak := baseCase()
	leak.Mechanism = "leak"
	dent := baseCase()
	dent.Mechanism = "dent"
	hot := baseCase()
	hot.DesignTempC = 55
	cases = append(cases, leak, dent, hot)

	for _, in := range cases {
		res, err := Calculate(in, cat)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.PlyCount, 2)
		assert.InDelta(t, float64(res.PlyCount)*0.83, res.FinalThicknessMM, 1e-9)
		assert.GreaterOrEqual(t, res.OverlapMM, MinOverlapMM)
		assert.InDelta(t, in.DefectLengthMM+2*res.OverlapMM, res.TotalLengthMM, 1e-9)
	}
}

func TestCalculateRollPackMode(t *testing.T) {
	cat := catalog.Default()
	in := baseCase()
	in.EstimateMode = "roll"

	res, err := Calculate(in, cat)
	require.NoError(t, err)
	// 250 mm total fits one 300 mm band.
	assert.Equal(t, 1, res.BandCount)
	assert.InDelta(t, 300.0, res.ProcurementLengthMM, 1e-9)
}

func TestCalculateValidation(t *testing.T) {
	cat := catalog.Default()

	t.Run("temperature just over the limit aborts", func(t *testing.T) {
		in := baseCase()
		in.DesignTempC = catalog.ProwrapCarbon().MaxServiceTempC + 0.1
		_, err := Calculate(in, cat)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds")
	})

	t.Run("all violations reported together", func(t *testing.T) {
		in := baseCase()
		in.DesignTempC = 90
		in.RemainingWallMM = 9.0 // above nominal wall
		in.DesignFactor = 0

		_, err := Calculate(in, cat)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "remaining wall")
		assert.Contains(t, err.Error(), "design factor")
		assert.Contains(t, err.Error(), "design temperature")
	})

	t.Run("negative remaining wall aborts", func(t *testing.T) {
		in := baseCase()
		in.RemainingWallMM = -1
		_, err := Calculate(in, cat)
		assert.Error(t, err)
	})

	t.Run("unknown mechanism aborts", func(t *testing.T) {
		in := baseCase()
		in.Mechanism = "pitting"
		_, err := Calculate(in, cat)
		assert.Error(t, err)
	})

	t.Run("unknown system aborts", func(t *testing.T) {
		in := baseCase()
		in.System = "ducttape"
		_, err := Calculate(in, cat)
		assert.Error(t, err)
	})
}

func TestCalculateRatioModel(t *testing.T) {
	cat := catalog.Default()
	in := baseCase()
	in.StrainModel = "ratio"
	in.InstallTempC = 25

	res, err := Calculate(in, cat)
	require.NoError(t, err)
	// Long-term allowance derated by f_T and thermal mismatch; far below
	// the short-term step model.
	assert.Greater(t, res.DesignStrain, 0.0)
	assert.Less(t, res.DesignStrain, 0.0233*0.95/3.0)
	assert.GreaterOrEqual(t, res.PlyCount, 2)
}

func TestClassTagsComeFromClassifier(t *testing.T) {
	cat := catalog.Default()
	in := baseCase()
	in.Location = "internal"
	res, err := Calculate(in, cat)
	require.NoError(t, err)
	assert.Equal(t, string(defect.TypeB), res.ThicknessClass)
	assert.Equal(t, string(defect.TypeB), res.OverlapClass)
}
