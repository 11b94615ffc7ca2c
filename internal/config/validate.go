// CUE schema validation code
package config

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"

	"vacuum-sim/internal/command"
	"vacuum-sim/internal/compass"
	"vacuum-sim/internal/rules"
)

// ErrInvalidConfig is returned for configurations that fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidateWithCue validates a YAML configuration file against the
// #Simulation definition of a CUE schema file.
func ValidateWithCue(configFile, cueFile string) error {
	ctx := cuecontext.New()

	// Read YAML config
	yamlBytes, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML config: %w", err)
	}
	file, err := yaml.Extract(configFile, yamlBytes)
	if err != nil {
		return fmt.Errorf("%w: cannot parse YAML config: %w", ErrInvalidConfig, err)
	}
	configVal := ctx.BuildFile(file)

	// Read CUE schema
	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}
	schemaVal := ctx.CompileBytes(schemaBytes, cue.Filename(cueFile))
	if schemaVal.Err() != nil {
		return fmt.Errorf("cannot compile CUE schema: %w", schemaVal.Err())
	}
	def := schemaVal.LookupPath(cue.ParsePath("#Simulation"))
	if !def.Exists() {
		return fmt.Errorf("CUE schema %s has no #Simulation definition", cueFile)
	}

	final := def.Unify(configVal)
	if err := final.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: schema validation failed: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks policies and robot declarations. Layout geometry is
// checked when the grid is built.
func (c *SimulationConfig) Validate() error {
	var errs []error
	if _, err := rules.Lookup(c.Rules); err != nil {
		errs = append(errs, err)
	}
	if _, err := command.ParseOrder(c.Order); err != nil {
		errs = append(errs, err)
	}
	switch c.OnInvalid {
	case OnInvalidHalt, OnInvalidSkip:
	default:
		errs = append(errs, fmt.Errorf("unknown on_invalid policy %q", c.OnInvalid))
	}
	switch c.Render {
	case RenderInitial, RenderEvery:
	default:
		errs = append(errs, fmt.Errorf("unknown render mode %q", c.Render))
	}
	if len(c.Terrain) == 0 {
		errs = append(errs, errors.New("no terrain defined"))
	}
	if len(c.Robots) == 0 {
		errs = append(errs, errors.New("no robots defined"))
	}
	seen := map[int]bool{}
	for _, r := range c.Robots {
		if seen[r.ID] {
			errs = append(errs, fmt.Errorf("duplicate robot id %d", r.ID))
		}
		seen[r.ID] = true
		if _, err := compass.Parse(r.Direction); err != nil {
			errs = append(errs, fmt.Errorf("robot %d: %w", r.ID, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
