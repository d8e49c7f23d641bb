package strain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pipewrap/internal/catalog"
)

func TestDerateStep(t *testing.T) {
	m := catalog.ProwrapCarbon()

	t.Run("hot service applies the 0.95 step", func(t *testing.T) {
		eps, err := Derate(m, Input{Model: ModelStep, DesignTempC: 45, DesignFactor: 1.0 / 3.0})
		require.NoError(t, err)
		assert.InDelta(t, 0.0233*0.95/3.0, eps, 1e-9)
	})

	t.Run("no step at or below 40 C", func(t *testing.T) {
		eps, err := Derate(m, Input{Model: ModelStep, DesignTempC: 40, DesignFactor: 1.0 / 3.0})
		require.NoError(t, err)
		assert.InDelta(t, 0.0233/3.0, eps, 1e-9)
	})

	t.Run("empty model defaults to step", func(t *testing.T) {
		eps, err := Derate(m, Input{DesignTempC: 25, DesignFactor: 0.5})
		require.NoError(t, err)
		assert.InDelta(t, 0.0233/2.0, eps, 1e-9)
	})

	t.Run("temperature just over the certified limit fails", func(t *testing.T) {
		_, err := Derate(m, Input{Model: ModelStep, DesignTempC: m.MaxServiceTempC + 0.1, DesignFactor: 0.5})
		assert.Error(t, err)
	})

	t.Run("design factor outside (0,1] fails", func(t *testing.T) {
		_, err := Derate(m, Input{Model: ModelStep, DesignTempC: 25, DesignFactor: 0})
		assert.Error(t, err)
		_, err = Derate(m, Input{Model: ModelStep, DesignTempC: 25, DesignFactor: 1.5})
		assert.Error(t, err)
	})
}

func TestDerateRatio(t *testing.T) {
	m := catalog.ProwrapCarbon()

	t.Run("cold service keeps the full allowance", func(t *testing.T) {
		eps, err := Derate(m, Input{Model: ModelRatio, DesignTempC: 20, InstallTempC: 20, DesignFactor: 0.5})
		require.NoError(t, err)
		assert.InDelta(t, m.LongTermStrain, eps, 1e-9)
	})

	t.Run("thermal excursion reduces the allowance", func(t *testing.T) {
		warm, err := Derate(m, Input{Model: ModelRatio, DesignTempC: 50, InstallTempC: 25, DesignFactor: 0.5})
		require.NoError(t, err)
		cool, err := Derate(m, Input{Model: ModelRatio, DesignTempC: 25, InstallTempC: 25, DesignFactor: 0.5})
		require.NoError(t, err)
		assert.Less(t, warm, cool)
	})

	t.Run("design temperature at Tg fails", func(t *testing.T) {
		_, err := Derate(m, Input{Model: ModelRatio, DesignTempC: m.TgC, InstallTempC: 25, DesignFactor: 0.5})
		assert.Error(t, err)
	})
}

func TestDerateUnknownModel(t *testing.T) {
	_, err := Derate(catalog.ProwrapCarbon(), Input{Model: "parabolic", DesignTempC: 25, DesignFactor: 0.5})
	assert.Error(t, err)
}
