// Package datasets registers the dashboard datasets with the core registry.
// Import this package to ensure all datasets are registered.
package datasets

// This file exists to provide a single import point.
// Each dataset file uses init() to register itself.

// Dataset keys.
const (
	Enrolment = "enrolment"
	Density   = "density"
	Distance  = "distance"
)
