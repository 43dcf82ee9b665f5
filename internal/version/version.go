package version

// Version is the current cronista release, injected at build time for
// tagged builds.
var Version = "0.3.0"

func FullVersion() string {
	return "v" + Version
}
