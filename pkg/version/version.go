// Package version holds the build version of bundlekit.
package version

// Version is overridden at link time with -ldflags "-X bundlekit/pkg/version.Version=...".
var Version = "dev"
