package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/m-aleem/eVTOL-sim/core/sim"
	"github.com/m-aleem/eVTOL-sim/infra/metrics"
	"github.com/m-aleem/eVTOL-sim/infra/mqtt"
	"github.com/m-aleem/eVTOL-sim/infra/report"
)

// Config is the root configuration for a simulation run.
type Config struct {
	Simulation sim.Config     `json:"simulation"`
	Metrics    metrics.Config `json:"metrics"`
	Telemetry  mqtt.Config    `json:"telemetry"`
	Report     report.Config  `json:"report"`
	// Progress enables the console progress bar.
	Progress bool `json:"progress"`
}

// Default returns a configuration with all defaults applied and the report
// enabled, matching a plain run with no config file.
func Default() *Config {
	cfg := &Config{Progress: true}
	cfg.Report.Enabled = true
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration from path (yaml or json by extension) and
// applies environment overrides with the EVTOL_ prefix, where double
// underscores map to nesting: EVTOL_SIMULATION__VEHICLES=40.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("EVTOL_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "evtol_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	c.Simulation.SetDefaults()
	c.Metrics.SetDefaults()
	c.Telemetry.SetDefaults()
	c.Report.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Simulation.Validate(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	return nil
}
