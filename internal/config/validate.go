package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/leapstack-labs/shardsql/pkg/dialect"
)

// OutputModes lists the accepted values of the output key.
var OutputModes = []string{"auto", "text", "json", "yaml"}

// Validate checks if the configuration is valid.
// Dialect packages must be registered before calling it.
func (c *Config) Validate() error {
	var errs []error

	if _, err := dialect.Lookup(c.Dialect); err != nil {
		errs = append(errs, err)
	}
	if c.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth))
	}
	if !slices.Contains(OutputModes, c.Output) {
		errs = append(errs, fmt.Errorf("unknown output %q (want one of %v)", c.Output, OutputModes))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Severity(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
