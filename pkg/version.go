// Package gnclimate holds build information for the gnclimate application.
package gnclimate

var (
	// Version of gnclimate, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)
