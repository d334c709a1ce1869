package tableau

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// EngineConfig holds the tunables an operator would otherwise pass as a
// long Option list, loadable from a YAML file so a deployment can fix
// resource bounds without a recompile.
type EngineConfig struct {
	Logic            string `yaml:"logic"`
	MaxBranches      int    `yaml:"max_branches"`
	StopAtFirstOpen  bool   `yaml:"stop_at_first_open"`
	ParallelBeta     bool   `yaml:"parallel_beta"`
	ParallelWorkers  int    `yaml:"parallel_workers"`
}

// LoadEngineConfig reads and decodes an EngineConfig from a YAML file.
func LoadEngineConfig(path string) (EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, errors.Wrapf(err, "reading engine config %s", path)
	}
	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, errors.Wrapf(err, "parsing engine config %s", path)
	}
	return cfg, nil
}

// Options converts the config into the Option list NewEngine expects and
// the BuildOption list Engine.Build expects, so every field the config
// carries actually reaches the engine it configures.
func (c EngineConfig) Options() ([]Option, []BuildOption) {
	var opts []Option
	if c.MaxBranches > 0 {
		opts = append(opts, WithMaxBranches(c.MaxBranches))
	}
	if c.ParallelBeta {
		workers := c.ParallelWorkers
		if workers <= 0 {
			workers = 4
		}
		opts = append(opts, WithParallelBeta(workers))
	}

	var buildOpts []BuildOption
	if c.StopAtFirstOpen {
		buildOpts = append(buildOpts, WithStopAtFirstOpen())
	}
	return opts, buildOpts
}
