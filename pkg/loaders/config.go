package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/df07/literal-raytracer/pkg/renderer"
)

// LoadConfig overlays a JSON config file onto base. Fields missing from
// the file keep their base values. The result is validated.
func LoadConfig(path string, base renderer.Config) (renderer.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data, base)
}

// ParseConfig overlays JSON data onto base and validates the result
func ParseConfig(data []byte, base renderer.Config) (renderer.Config, error) {
	cfg := base
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return base, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}
