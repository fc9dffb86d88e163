package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/fastgen/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/fastgen/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/fastgen/internal/version.Date={{.Date}}
)

// Short returns "version (commit)" for banners and man page headers
func Short() string {
	if Commit == "unknown" || Commit == "" {
		return Version
	}
	c := Commit
	if len(c) > 7 {
		c = c[:7]
	}
	return Version + " (" + c + ")"
}
