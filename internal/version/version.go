// Package version holds build version information, overridable at link time.
package version

// Version is the application version, set via -ldflags at build time.
var Version = "dev"
