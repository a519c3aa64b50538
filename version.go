package bevtree

// Version is the release of the library and CLI. Overridden at build time with -ldflags.
var Version = "v0.1.0-dev"
