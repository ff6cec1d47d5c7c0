package version

// Version and Date are injected at build time via -ldflags.
var (
	Version = "dev"
	Date    = ""
)
