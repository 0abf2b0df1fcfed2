package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelab/xraypipe/pkg/xraypipe/config"
)

func TestConfigAccessors(t *testing.T) {
	c := config.New(map[string]any{
		"name":    "pipeline",
		"enabled": true,
		"count":   int64(7),
		"ratio":   0.25,
		"list":    []any{1.0, 2.0, 3.0},
	})

	assert.Equal(t, "pipeline", c.String("name", "x"))
	assert.Equal(t, "x", c.String("missing", "x"))
	assert.True(t, c.Bool("enabled", false))
	assert.Equal(t, 7, c.Int("count", 0))
	assert.Equal(t, int64(7), c.Int64("count", 0))
	assert.InDelta(t, 0.25, c.Float("ratio", 0), 1e-15)
	assert.Equal(t, []float64{1, 2, 3}, c.Floats("list", nil))

	// Wrong types fall back to defaults.
	assert.Equal(t, 3, c.Int("name", 3))
	assert.Nil(t, c.Floats("name", nil))
}

func TestConfigNil(t *testing.T) {
	c := config.New(nil)
	assert.Equal(t, "d", c.String("k", "d"))
}

func TestFromYAML(t *testing.T) {
	c, err := config.FromYAML([]byte("seed: 12\nfluorescence_fraction: 0.5\ndetector: [0, 0, -0.04]\n"))
	require.NoError(t, err)

	p := config.PipelineFrom(c)
	assert.Equal(t, int64(12), p.Seed)
	assert.InDelta(t, 0.5, p.FluorescenceFraction, 1e-15)
	assert.Equal(t, [3]float64{0, 0, -0.04}, p.Detector)
}

func TestFromJSON(t *testing.T) {
	c, err := config.FromJSON([]byte(`{"compton_fraction": 0.2}`))
	require.NoError(t, err)

	p := config.PipelineFrom(c)
	assert.InDelta(t, 0.2, p.ComptonFraction, 1e-15)
}

func TestFromTOML(t *testing.T) {
	c, err := config.FromTOML([]byte("seed = 99\nmax_march_radius = 0.02\n"))
	require.NoError(t, err)

	p := config.PipelineFrom(c)
	assert.Equal(t, int64(99), p.Seed)
	assert.InDelta(t, 0.02, p.MaxMarchRadius, 1e-15)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "pipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 5\n"), 0o644))
	c, err := config.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), c.Int64("seed", 0))

	path = filepath.Join(dir, "pipe.toml")
	require.NoError(t, os.WriteFile(path, []byte("seed = 6\n"), 0o644))
	c, err = config.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(6), c.Int64("seed", 0))

	_, err = config.FromFile(filepath.Join(dir, "pipe.ini"))
	assert.Error(t, err)

	_, err = config.FromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFromYAMLInvalid(t *testing.T) {
	_, err := config.FromYAML([]byte("{{"))
	assert.Error(t, err)

	_, err = config.FromJSON([]byte("{"))
	assert.Error(t, err)

	_, err = config.FromTOML([]byte("=bad"))
	assert.Error(t, err)
}

func TestPipelineClamping(t *testing.T) {
	c := config.New(map[string]any{
		"fluorescence_fraction": 0.001,
		"compton_fraction":      5.0,
	})
	p := config.PipelineFrom(c)

	// Out-of-range fractions are clamped, never rejected.
	assert.Equal(t, config.MinModelFraction, p.FluorescenceFraction)
	assert.Equal(t, config.MaxModelFraction, p.ComptonFraction)
}

func TestPipelineDefaults(t *testing.T) {
	p := config.PipelineFrom(config.New(nil))
	def := config.DefaultPipeline()

	assert.Equal(t, def.FluorescenceFraction, p.FluorescenceFraction)
	assert.Equal(t, def.Detector, p.Detector)
	assert.Equal(t, def.MaxMarchRadius, p.MaxMarchRadius)
	assert.Greater(t, p.BoundaryNudge, 0.0)
}

func TestNormalizedFillsZeroValues(t *testing.T) {
	// A hand-built struct literal must end up as safe as a loaded one: a
	// zero nudge or radius would stall or abort every march.
	p := config.Pipeline{Seed: 42}.Normalized()
	def := config.DefaultPipeline()

	assert.Equal(t, def.FluorescenceFraction, p.FluorescenceFraction)
	assert.Equal(t, def.ComptonFraction, p.ComptonFraction)
	assert.Equal(t, def.BoundaryNudge, p.BoundaryNudge)
	assert.Equal(t, def.MaxMarchRadius, p.MaxMarchRadius)
	assert.Equal(t, int64(42), p.Seed)
}

func TestNormalizedKeepsExplicitValues(t *testing.T) {
	p := config.Pipeline{
		FluorescenceFraction: 0.5,
		ComptonFraction:      0.2,
		BoundaryNudge:        2e-9,
		MaxMarchRadius:       5e-3,
	}.Normalized()

	assert.Equal(t, 0.5, p.FluorescenceFraction)
	assert.Equal(t, 0.2, p.ComptonFraction)
	assert.Equal(t, 2e-9, p.BoundaryNudge)
	assert.Equal(t, 5e-3, p.MaxMarchRadius)
}
