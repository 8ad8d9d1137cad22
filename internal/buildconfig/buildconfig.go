// Package buildconfig exposes values injected at link time:
//
//	go build -ldflags "-X github.com/Harshitk-cp/wolfmind/internal/buildconfig.version=v1.2.0"
package buildconfig

var (
	version = "dev"
	commit  = "unknown"
)

func Version() string {
	return version
}

func Commit() string {
	return commit
}

// VersionInfo is reported by the agent host's health endpoint.
func VersionInfo() map[string]string {
	return map[string]string{
		"version": version,
		"commit":  commit,
	}
}
