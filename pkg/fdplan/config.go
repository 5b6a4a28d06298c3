package fdplan

import (
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// SearchConfig is the on-disk description of a search run: which
// driver and open list to use, and the tuning knobs DriverConfig
// exposes. Loaded with viper (mirroring the pack's established
// pattern for training-style config) rather than hand-rolled flag
// parsing.
//
// Tags are lowercase, not camelCase: LoadSearchConfig round-trips
// through viper.AllSettings(), which lowercases every key, before
// handing the result to yaml.Unmarshal, and yaml.v3 matches tags
// case-sensitively.
type SearchConfig struct {
	Driver       string `yaml:"driver"`
	OpenList     string `yaml:"openlist"`
	MaxBucket    int    `yaml:"maxbucketcost"`
	ProgressFreq int    `yaml:"progressfreq"`
	Preferred    string `yaml:"preferred"` // "none" | "prefer" | "only"
	Pathmax      bool   `yaml:"pathmax"`
}

// DefaultSearchConfig matches DefaultDriverConfig's values.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Driver:       string(DriverLazyBFS),
		OpenList:     string(OpenListHeap),
		MaxBucket:    0,
		ProgressFreq: 1000,
		Preferred:    "prefer",
	}
}

// LoadSearchConfig reads a YAML search config from path via viper.
func LoadSearchConfig(path string) (SearchConfig, error) {
	cfg := DefaultSearchConfig()

	vp := viper.New()
	vp.SetConfigFile(filepath.Base(path))
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return cfg, NewConfigError("reading search config %s: %v", path, err)
	}

	raw, err := yaml.Marshal(vp.AllSettings())
	if err != nil {
		return cfg, NewConfigError("remarshaling search config %s: %v", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, NewConfigError("decoding search config %s: %v", path, err)
	}
	return cfg, nil
}

// ToDriverConfig translates the on-disk preferred-mode string into a
// PreferredMode, defaulting to PreferredModePrefer for an empty or
// unrecognized value.
func (c SearchConfig) ToDriverConfig() DriverConfig {
	cfg := DefaultDriverConfig()
	cfg.ProgressFreq = c.ProgressFreq
	cfg.Pathmax = c.Pathmax
	switch c.Preferred {
	case "none":
		cfg.Preferred = PreferredModeNone
	case "only":
		cfg.Preferred = PreferredModeOnly
	default:
		cfg.Preferred = PreferredModePrefer
	}
	return cfg
}

// DriverNameTyped returns the configured driver as a typed DriverName.
func (c SearchConfig) DriverNameTyped() DriverName { return DriverName(c.Driver) }

// OpenListNameTyped returns the configured open list as a typed OpenListName.
func (c SearchConfig) OpenListNameTyped() OpenListName { return OpenListName(c.OpenList) }
