// Package misc keeps program identity values which are set at build time.
package misc

// Set with -ldflags "-X ksefpdf/misc.version=... -X ksefpdf/misc.githash=...".
var (
	version = "dev"
	githash = "unknown"
)

const appName = "ksefpdf"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return githash
}
