package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/shadow53/hoard-go/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/shadow53/hoard-go/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/shadow53/hoard-go/internal/version.Date={{.Date}}
)
