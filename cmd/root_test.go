package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/hospital-sim/hospital-sim/sim"
)

// resetRunFlags restores the run command's package-level flag variables and
// returns a throwaway command whose --horizon flag is bound to them.
func resetRunFlags(t *testing.T) *cobra.Command {
	t.Helper()
	configPath, beds, arrivalRates, stayMeans, noRelocation = "", nil, nil, nil, false
	horizon = sim.DefaultHorizon
	t.Cleanup(func() {
		configPath, beds, arrivalRates, stayMeans, noRelocation = "", nil, nil, nil, false
		horizon = sim.DefaultHorizon
	})
	c := &cobra.Command{Use: "run"}
	c.Flags().Float64Var(&horizon, "horizon", sim.DefaultHorizon, "")
	return c
}

func TestBuildConfig_NoFlags_EqualsDefaults(t *testing.T) {
	c := resetRunFlags(t)

	cfg, err := buildConfig(c)

	require.NoError(t, err)
	assert.Equal(t, sim.DefaultConfig(), cfg)
}

func TestBuildConfig_FlagOverridesBeatConfigFile(t *testing.T) {
	c := resetRunFlags(t)
	path := filepath.Join(t.TempDir(), "h.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bed_distribution: {A: 10, B: 11}\nhorizon: 30\n"), 0644))
	configPath = path
	beds = map[string]int{"A": 3}
	arrivalRates = map[string]string{"F": "1.25"}

	cfg, err := buildConfig(c)

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Beds["A"], "flag wins over file")
	assert.Equal(t, 11, cfg.Beds["B"], "file wins over default")
	assert.Equal(t, 30, cfg.Beds["C"], "default fills the rest")
	assert.Equal(t, 1.25, cfg.ArrivalRates["F"])
	assert.Equal(t, 30.0, cfg.Horizon)
}

func TestBuildConfig_ExplicitZeroHorizon(t *testing.T) {
	c := resetRunFlags(t)
	require.NoError(t, c.Flags().Set("horizon", "0"))

	cfg, err := buildConfig(c)

	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Horizon)
}

func TestBuildConfig_ConfigFileZeroHorizon(t *testing.T) {
	c := resetRunFlags(t)
	path := filepath.Join(t.TempDir(), "h.yaml")
	require.NoError(t, os.WriteFile(path, []byte("horizon: 0\n"), 0644))
	configPath = path

	cfg, err := buildConfig(c)

	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Horizon)
}

func TestBuildConfig_NoRelocation(t *testing.T) {
	c := resetRunFlags(t)
	noRelocation = true

	cfg, err := buildConfig(c)

	require.NoError(t, err)
	assert.Empty(t, cfg.Relocation)
	s, err := sim.NewSimulator(cfg, 1)
	require.NoError(t, err)
	assert.False(t, s.Hospital.HasRelocation())
}

func TestBuildConfig_InvalidOverride(t *testing.T) {
	c := resetRunFlags(t)
	stayMeans = map[string]string{"A": "-1"}

	_, err := buildConfig(c)

	assert.ErrorIs(t, err, sim.ErrInvalidConfig)
}

func TestBuildConfig_UnparsableRate(t *testing.T) {
	c := resetRunFlags(t)
	arrivalRates = map[string]string{"A": "lots"}

	_, err := buildConfig(c)

	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	prev := logrus.GetLevel()
	t.Cleanup(func() {
		logrus.SetLevel(prev)
		logrus.SetOutput(os.Stderr)
	})

	require.NoError(t, setupLogging("debug", ""))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	assert.Error(t, setupLogging("chatty", ""))

	path := filepath.Join(t.TempDir(), "sim.log")
	require.NoError(t, setupLogging("info", path))
	logrus.Info("hello rotation")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello rotation")
}

func TestDefaultsCommand_PrintsLoadableYAML(t *testing.T) {
	t.Cleanup(func() { defaultsJSON = false })
	defaultsJSON = false
	var buf bytes.Buffer
	defaultsCmd.SetOut(&buf)
	t.Cleanup(func() { defaultsCmd.SetOut(nil) })

	require.NoError(t, defaultsCmd.RunE(defaultsCmd, nil))

	cfg, err := parseConfig(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultConfig(), cfg.Config)
}
