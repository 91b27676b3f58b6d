package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/twoparton/epagrid/epa"
)

// RunCard is the YAML description of a run.
// Unknown top-level and beam fields are rejected; module sections accept any
// parameter and leave checking to the module constructors.
type RunCard struct {
	Beams       epa.Beams   `yaml:"beams"`
	Flux        epa.Module  `yaml:"flux"`
	Process     epa.Module  `yaml:"process"`
	Integration Integration `yaml:"integration"`
}

// Integration configures the cross-section integral.
type Integration struct {
	WRange []float64 `yaml:"wRange"`
	Points int       `yaml:"points"`
}

// DefaultIntegrationPoints is used when the card does not set integration.points.
const DefaultIntegrationPoints = 200

// LoadRunCard reads and validates the run card at path.
func LoadRunCard(path string) (*RunCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading run card: %v", epa.ErrIO, err)
	}
	return ParseRunCard(data)
}

// ParseRunCard decodes a run card with strict field checking.
func ParseRunCard(data []byte) (*RunCard, error) {
	var card RunCard
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&card); err != nil {
		return nil, fmt.Errorf("%w: parsing run card: %v", epa.ErrConfiguration, err)
	}
	if card.Flux.Params == nil {
		card.Flux.Params = map[string]any{}
	}
	if card.Process.Params == nil {
		card.Process.Params = map[string]any{}
	}
	if card.Integration.Points == 0 {
		card.Integration.Points = DefaultIntegrationPoints
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}
	return &card, nil
}

// Validate checks the parts of the card every command needs.
func (c *RunCard) Validate() error {
	if err := c.Beams.Validate(); err != nil {
		return err
	}
	if c.Flux.Name == "" {
		return fmt.Errorf("%w: run card has no flux name", epa.ErrConfiguration)
	}
	if c.Integration.WRange != nil && len(c.Integration.WRange) != 2 {
		return fmt.Errorf("%w: integration.wRange needs two limits, got %v", epa.ErrConfiguration, c.Integration.WRange)
	}
	if c.Integration.Points < 1 {
		return fmt.Errorf("%w: integration.points must be positive, got %d", epa.ErrConfiguration, c.Integration.Points)
	}
	return nil
}

// FluxModule returns the flux module with the beam kinematics injected.
func (c *RunCard) FluxModule() epa.Module { return c.Beams.Apply(c.Flux) }

// IntegrationRange returns the cross-section integration range.
func (c *RunCard) IntegrationRange() (epa.Range, error) {
	if c.Integration.WRange == nil {
		return epa.Range{}, fmt.Errorf("%w: run card has no integration.wRange", epa.ErrConfiguration)
	}
	return epa.Range{Lo: c.Integration.WRange[0], Hi: c.Integration.WRange[1]}, nil
}
