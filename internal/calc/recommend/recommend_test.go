package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pipewrap/internal/catalog"
)

func TestSystem(t *testing.T) {
	cat := catalog.Default()

	t.Run("moderate service gets the stiff carbon system", func(t *testing.T) {
		res, err := System(Input{DesignTempC: 45, DesignFactor: 1.0 / 3.0}, cat)
		require.NoError(t, err)
		assert.Equal(t, "prowrap-c", res.System)
		assert.Greater(t, res.DesignStrain, 0.0)
		assert.InDelta(t, 55.5-45, res.MarginC, 1e-9)
	})

	t.Run("hot service falls back to the HT system", func(t *testing.T) {
		res, err := System(Input{DesignTempC: 70, DesignFactor: 1.0 / 3.0}, cat)
		require.NoError(t, err)
		assert.Equal(t, "prowrap-ght", res.System)
	})

	t.Run("no system covers extreme temperature", func(t *testing.T) {
		_, err := System(Input{DesignTempC: 130, DesignFactor: 1.0 / 3.0}, cat)
		assert.Error(t, err)
	})

	t.Run("bad design factor rejected", func(t *testing.T) {
		_, err := System(Input{DesignTempC: 45, DesignFactor: 0}, cat)
		assert.Error(t, err)
	})
}
