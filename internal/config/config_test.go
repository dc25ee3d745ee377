package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Study.GroupSize)
	assert.Equal(t, 3, cfg.Study.Topics)
	assert.Equal(t, 4, cfg.Study.Repetitions)
	assert.Equal(t, []float64{-0.4, -0.2, -0.2, 0}, cfg.Study.Effects)
	assert.Equal(t, 1.0, cfg.Study.SD)
	assert.Equal(t, 0.05, cfg.Study.Alpha)
	assert.Equal(t, 1000, cfg.Driver.Simulations)
	assert.Equal(t, 1, cfg.Driver.Workers)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("POWERSIM_GROUPSIZE", "40")
	t.Setenv("POWERSIM_EFFECTS", "0.1, 0.2, 0.3, 0.4")
	t.Setenv("POWERSIM_NSIM", "250")
	t.Setenv("POWERSIM_WORKERS", "8")
	t.Setenv("DATABASE_URL", "postgres://localhost/powersim")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Study.GroupSize)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, cfg.Study.Effects)
	assert.Equal(t, 250, cfg.Driver.Simulations)
	assert.Equal(t, 8, cfg.Driver.Workers)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "postgres://localhost/powersim", cfg.Database.URL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "malformed effects", key: "POWERSIM_EFFECTS", value: "a,b,c,d"},
		{name: "zero simulations", key: "POWERSIM_NSIM", value: "0"},
		{name: "zero workers", key: "POWERSIM_WORKERS", value: "0"},
		{name: "alpha at one", key: "POWERSIM_ALPHA", value: "1"},
		{name: "negative alpha", key: "POWERSIM_ALPHA", value: "-0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
