// Package config loads the application configuration from defaults, an
// optional YAML file, and SALES_* environment variables, in that order
// of precedence from lowest to highest.
package config
