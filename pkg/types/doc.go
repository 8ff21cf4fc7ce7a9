// Package types defines the pipeline configuration, the tidy-table data
// model, and the parsed stimulus identifier used by every analysis stage.
package types
