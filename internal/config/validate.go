package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database.max_conns (%d) must be >= database.min_conns (%d)",
			c.Database.MaxConns, c.Database.MinConns)
	}
	if c.Register.MaxStepsPerDocument <= 0 {
		return fmt.Errorf("register.max_steps_per_document must be > 0 (got %d)", c.Register.MaxStepsPerDocument)
	}
	if c.Register.ListDefaultLimit <= 0 {
		return fmt.Errorf("register.list_default_limit must be > 0 (got %d)", c.Register.ListDefaultLimit)
	}
	if c.Register.DeletedRetentionDays <= 0 {
		return fmt.Errorf("register.deleted_retention_days must be > 0 (got %d)", c.Register.DeletedRetentionDays)
	}
	return nil
}
