package fdplan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSearchConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "search.yaml")
	contents := `
driver: astar
openList: bucket
maxBucketCost: 500
progressFreq: 200
preferred: only
pathmax: true
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadSearchConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "astar", cfg.Driver)
	assert.Equal(t, "bucket", cfg.OpenList)
	assert.Equal(t, 500, cfg.MaxBucket)
	assert.Equal(t, 200, cfg.ProgressFreq)
	assert.Equal(t, "only", cfg.Preferred)
	assert.True(t, cfg.Pathmax)

	assert.Equal(t, DriverAStar, cfg.DriverNameTyped())
	assert.Equal(t, OpenListBucket, cfg.OpenListNameTyped())
}

func TestLoadSearchConfigMissingFileReturnsConfigError(t *testing.T) {
	_, err := LoadSearchConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestSearchConfigToDriverConfigPreferredModes(t *testing.T) {
	cases := []struct {
		preferred string
		want      PreferredMode
	}{
		{"none", PreferredModeNone},
		{"only", PreferredModeOnly},
		{"prefer", PreferredModePrefer},
		{"", PreferredModePrefer},
		{"bogus", PreferredModePrefer},
	}
	for _, tc := range cases {
		cfg := SearchConfig{Preferred: tc.preferred}
		got := cfg.ToDriverConfig()
		assert.Equalf(t, tc.want, got.Preferred, "preferred=%q", tc.preferred)
	}
}
