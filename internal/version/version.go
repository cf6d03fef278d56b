package version

// Version is set at build time with -ldflags "-X meetsched/internal/version.Version=..."
var Version = "dev"
