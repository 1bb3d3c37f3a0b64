package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineConfig_DefaultsAreValid(t *testing.T) {
	require.NoError(t, DefaultEngineConfig().Validate())
}

func TestEngineConfig_ValidateRejectsInputViolations(t *testing.T) {
	cases := map[string]func(*EngineConfig){
		"KFinal":         func(c *EngineConfig) { c.KFinal = 0 },
		"LookbackMonths": func(c *EngineConfig) { c.LookbackMonths = 0 },
		"WMin/WMax":      func(c *EngineConfig) { c.WMin, c.WMax = 0.9, 0.1 },
		"TopN":           func(c *EngineConfig) { c.TopN = 1; c.KFinal = 45 },
	}
	for name, mutate := range cases {
		cfg := DefaultEngineConfig()
		mutate(&cfg)
		err := cfg.Validate()
		require.Error(t, err, name)
		var cfgErr *ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	}
}
