package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pipewrap/internal/calc/repair"
	"Pipewrap/internal/catalog"
)

func validCase() repair.Input {
	return repair.Input{
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

func TestCalculate(t *testing.T) {
	cat := catalog.Default()

	t.Run("each case sized independently", func(t *testing.T) {
		second := validCase()
		second.Mechanism = "leak"
		res, err := Calculate(Input{Items: []repair.Input{validCase(), second}}, cat)
		require.NoError(t, err)
		require.Len(t, res.Results, 2)
		assert.Equal(t, 2, res.Results[0].PlyCount)
		assert.Equal(t, 4, res.Results[1].PlyCount)
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		_, err := Calculate(Input{}, cat)
		assert.Error(t, err)
	})

	t.Run("bad case fails the batch with its index", func(t *testing.T) {
		bad := validCase()
		bad.DesignFactor = 0
		_, err := Calculate(Input{Items: []repair.Input{validCase(), bad}}, cat)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "item 2")
	})
}
