package sim

import "fmt"

// AssignmentMode selects how manufacturers are assigned to the fleet.
type AssignmentMode string

const (
	// AssignRandom draws each vehicle's manufacturer uniformly at random.
	AssignRandom AssignmentMode = "random"
	// AssignEqual distributes manufacturers round-robin across the fleet.
	AssignEqual AssignmentMode = "equal"
)

// Config holds the simulation parameters.
type Config struct {
	Vehicles    int            `json:"vehicles"`
	Hours       float64        `json:"hours"`
	Chargers    int            `json:"chargers"`
	TickSeconds float64        `json:"tick_seconds"`
	Assignment  AssignmentMode `json:"assignment"`
	// Seed drives the run's random source. Zero means seed from the clock;
	// any other value makes the run reproducible.
	Seed int64 `json:"seed"`
}

// SetDefaults fills unset parameters with the default run values.
func (c *Config) SetDefaults() {
	if c.Vehicles == 0 {
		c.Vehicles = 20
	}
	if c.Hours == 0 {
		c.Hours = 3
	}
	if c.Chargers == 0 {
		c.Chargers = 3
	}
	if c.TickSeconds == 0 {
		c.TickSeconds = 1
	}
	if c.Assignment == "" {
		c.Assignment = AssignRandom
	}
}

// Validate checks the parameters are usable.
func (c Config) Validate() error {
	if c.Vehicles <= 0 {
		return fmt.Errorf("vehicles must be positive, got %d", c.Vehicles)
	}
	if c.Hours <= 0 {
		return fmt.Errorf("hours must be positive, got %v", c.Hours)
	}
	if c.Chargers <= 0 {
		return fmt.Errorf("chargers must be positive, got %d", c.Chargers)
	}
	if c.TickSeconds <= 0 {
		return fmt.Errorf("tick_seconds must be positive, got %v", c.TickSeconds)
	}
	if c.Assignment != AssignRandom && c.Assignment != AssignEqual {
		return fmt.Errorf("unknown assignment mode %q", c.Assignment)
	}
	return nil
}
