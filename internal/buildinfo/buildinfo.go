// Package buildinfo holds build-time variables injected via ldflags, e.g.
//
//	go build -ldflags "-X github.com/go-ports/todo/internal/buildinfo.Version=v1.2.0" ./cmd/todo
package buildinfo

// Defaults are used for local builds.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)
