package sepal

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Scenario is an optional TOML override file: only the keys actually
// present replace the environment-sourced values.
type Scenario struct {
	Start   float64 `toml:"start"`
	End     float64 `toml:"end"`
	Steps   int     `toml:"steps"`
	Samples int     `toml:"samples"`
	Spread  float64 `toml:"spread"`
	Seed    uint64  `toml:"seed"`
	Dir     string  `toml:"dir"`

	md toml.MetaData
}

func LoadScenario(path string) (*Scenario, error) {
	var s Scenario
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	s.md = md
	return &s, nil
}

func (s *Scenario) defined(key string) bool {
	return s.md.IsDefined(key)
}

// ApplyScenario overlays the defined scenario keys onto the config.
func (c *Config) ApplyScenario(s *Scenario) {
	if s == nil {
		return
	}

	if s.defined("start") {
		c.Sweep.Start = s.Start
	}
	if s.defined("end") {
		c.Sweep.End = s.End
	}
	if s.defined("steps") {
		c.Sweep.Steps = s.Steps
	}
	if s.defined("samples") {
		c.Generator.Samples = s.Samples
	}
	if s.defined("spread") {
		c.Generator.Spread = s.Spread
	}
	if s.defined("seed") {
		c.Generator.Seed = s.Seed
	}
	if s.defined("dir") {
		c.Render.Dir = s.Dir
	}
}

func (c *Config) ApplyScenarioFile(path string) error {
	s, err := LoadScenario(path)
	if err != nil {
		return err
	}
	c.ApplyScenario(s)
	return nil
}
