// internal/config/validator.go
//
// Thin wrapper around go-playground/validator, called immediately after
// the merged Koanf tree is unmarshalled.  A tag failure aborts startup so
// the binary never runs with partial configuration.  Custom rules (DSN
// shape checks, say) register here as the surface grows.
package config

import "github.com/go-playground/validator/v10"

var v = validator.New()

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
